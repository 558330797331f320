package langmodel

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NgramProbability returns the smoothed conditional probability of the final
// token of the n-gram given its context. An unseen context falls back to
// smooth / denominatorSmoother; a seen context with an unseen next-token gets
// the additive-smoothing mass. Every returned probability is strictly
// positive.
//
// Precondition: the model was trained on a non-empty corpus (or loaded from
// one). With a zero denominator smoother the unseen-context branch divides by
// zero.
func (m *Model) NgramProbability(ngram []string) float64 {
	ctx := contextKey(ngram[:len(ngram)-1])
	next := ngram[len(ngram)-1]

	seen, ok := m.counts[ctx]
	if !ok {
		return m.smooth / m.denomSmoother
	}
	total := 0
	for _, c := range seen {
		total += c
	}
	numerator := float64(seen[next]) + m.smooth
	denominator := float64(total) + m.denomSmoother
	return numerator / denominator
}

// Score returns the length-normalized log-probability of the utterance: the
// sum of the natural logs of every window's probability divided by the number
// of windows. The normalization makes scores comparable across utterances and
// across independently trained models.
//
// When the utterance yields no windows (too short with padding disabled)
// Score returns (0, false); that is a defined "cannot score" outcome, not a
// failure. The precondition of NgramProbability applies.
func (m *Model) Score(utterance string) (float64, bool) {
	var logProbs []float64
	for ngram := range m.Ngrams(utterance) {
		logProbs = append(logProbs, math.Log(m.NgramProbability(ngram)))
	}
	if len(logProbs) == 0 {
		return 0, false
	}
	return floats.Sum(logProbs) / float64(len(logProbs)), true
}
