package langmodel

import "iter"

// Boundary tokens inserted when padding is enabled. They take part in counts
// and probabilities like ordinary vocabulary tokens.
const (
	StartToken = "<"
	EndToken   = ">"
)

// Ngrams returns a lazy, restartable sequence of overlapping token windows of
// length NgramSize over the utterance. Tokens are single runes. With padding
// enabled the utterance is framed by NgramSize-1 start and end boundary
// tokens. If the (padded) utterance is shorter than the window size the
// sequence is empty; that is a defined outcome, not an error.
func (m *Model) Ngrams(utterance string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		tokens := m.tokenize(utterance)
		for i := 0; i+m.ngramSize <= len(tokens); i++ {
			window := make([]string, m.ngramSize)
			copy(window, tokens[i:i+m.ngramSize])
			if !yield(window) {
				return
			}
		}
	}
}

// tokenize splits an utterance into rune tokens, applying boundary padding
// when enabled.
func (m *Model) tokenize(utterance string) []string {
	pad := 0
	if m.padUtterances {
		pad = m.ngramSize - 1
	}
	runes := []rune(utterance)
	tokens := make([]string, 0, len(runes)+2*pad)
	for range pad {
		tokens = append(tokens, StartToken)
	}
	for _, r := range runes {
		tokens = append(tokens, string(r))
	}
	for range pad {
		tokens = append(tokens, EndToken)
	}
	return tokens
}
