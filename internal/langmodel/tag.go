package langmodel

import "golang.org/x/text/language"

// CanonicalTag normalizes a language tag to its canonical BCP 47 form
// ("FR" -> "fr", "en-us" -> "en-US"). Tags that do not parse are returned
// unchanged; the tag is an opaque label as far as the model is concerned.
func CanonicalTag(tag string) string {
	if tag == "" {
		return ""
	}
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	return t.String()
}
