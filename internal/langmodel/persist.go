package langmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// contextSep joins context tokens into a single document key. Tokens are
// single runes, so the ASCII unit separator can never occur inside one; a
// printable delimiter such as a space would be ambiguous because spaces are
// ordinary tokens in natural text.
const contextSep = "\x1f"

// Extension is the filename extension of serialized model documents.
const Extension = ".json"

// Metadata keys in the serialized document. Context keys cannot collide with
// them: a context is either a single rune or contains contextSep.
const (
	keyLanguage      = "language"
	keyPadUtterances = "pad_utterances"
	keyDenomSmoother = "denominator_smoother"
	keySmooth        = "smooth"
	keyNgramSize     = "ngram_size"
)

// Errors distinguishing malformed documents from plain I/O failures.
var (
	ErrMissingField     = errors.New("missing metadata field")
	ErrMalformedContext = errors.New("malformed context key")
)

// contextKey joins context tokens into the canonical map/document key.
func contextKey(tokens []string) string {
	return strings.Join(tokens, contextSep)
}

// splitContextKey validates and splits a document context key for a model of
// the given n-gram size.
func splitContextKey(key string, ngramSize int) ([]string, error) {
	want := ngramSize - 1
	if want == 0 {
		if key != "" {
			return nil, fmt.Errorf("%w: %q (expected empty context)", ErrMalformedContext, key)
		}
		return nil, nil
	}
	tokens := strings.Split(key, contextSep)
	if len(tokens) != want {
		return nil, fmt.Errorf("%w: %q (expected %d tokens, got %d)", ErrMalformedContext, key, want, len(tokens))
	}
	for _, tok := range tokens {
		if tok == "" {
			return nil, fmt.Errorf("%w: %q (empty token)", ErrMalformedContext, key)
		}
	}
	return tokens, nil
}

// Save writes the model as a JSON document to dir/name.json, creating the
// directory if needed. The document holds one key per observed context plus
// the five metadata fields. Key order is not significant.
func (m *Model) Save(dir, name string) error {
	doc := make(map[string]any, len(m.counts)+5)
	for ctx, tokens := range m.counts {
		doc[ctx] = tokens
	}
	if m.language != "" {
		doc[keyLanguage] = m.language
	} else {
		doc[keyLanguage] = nil
	}
	doc[keyPadUtterances] = m.padUtterances
	doc[keyDenomSmoother] = m.denomSmoother
	doc[keySmooth] = m.smooth
	doc[keyNgramSize] = m.ngramSize

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	path := filepath.Join(dir, name+Extension)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// Load reads a serialized model document and reconstructs a scoring-identical
// model. Documents missing a metadata field or containing a context key that
// does not split into exactly NgramSize-1 tokens are rejected.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}

	var (
		language      *string
		padUtterances bool
		denomSmoother float64
		smooth        float64
		ngramSize     int
	)
	meta := []struct {
		key  string
		dest any
	}{
		{keyLanguage, &language},
		{keyPadUtterances, &padUtterances},
		{keyDenomSmoother, &denomSmoother},
		{keySmooth, &smooth},
		{keyNgramSize, &ngramSize},
	}
	for _, f := range meta {
		raw, ok := doc[f.key]
		if !ok {
			return nil, fmt.Errorf("model %s: %q: %w", path, f.key, ErrMissingField)
		}
		if err := json.Unmarshal(raw, f.dest); err != nil {
			return nil, fmt.Errorf("model %s: decode %q: %w", path, f.key, err)
		}
		delete(doc, f.key)
	}

	// New defaults zero hyperparameters; a document carrying them is
	// corrupt, not unset.
	if ngramSize < 1 {
		return nil, fmt.Errorf("model %s: invalid ngram size %d (must be >= 1)", path, ngramSize)
	}
	if smooth <= 0 {
		return nil, fmt.Errorf("model %s: invalid smoothing constant %g (must be > 0)", path, smooth)
	}

	var tag string
	if language != nil {
		tag = *language
	}
	m, err := New(Params{
		Language:      tag,
		PadUtterances: padUtterances,
		NgramSize:     ngramSize,
		Smooth:        smooth,
	})
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}

	for key, raw := range doc {
		if _, err := splitContextKey(key, ngramSize); err != nil {
			return nil, fmt.Errorf("model %s: %w", path, err)
		}
		var tokens map[string]int
		if err := json.Unmarshal(raw, &tokens); err != nil {
			return nil, fmt.Errorf("model %s: decode counts for context %q: %w", path, key, err)
		}
		m.counts[key] = tokens
	}

	// Restored verbatim, never recomputed: the vocabulary behind it is
	// gone.
	m.denomSmoother = denomSmoother
	return m, nil
}
