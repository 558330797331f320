// Package langmodel implements a character n-gram language model with
// add-delta (Lidstone) smoothing. A model is trained once over a corpus of
// utterances, can be persisted to a JSON document, and scores arbitrary text
// with a length-normalized log-probability. Trained models are immutable and
// safe for concurrent scoring.
package langmodel

import (
	"fmt"
)

// Default hyperparameters used when a Params field is left unset.
const (
	DefaultNgramSize = 3
	DefaultSmooth    = 1e-3
)

// Params holds the hyperparameters of a model. They are fixed once training
// starts.
type Params struct {
	// Language is an opaque label for the modeled language (e.g. "fr").
	// It may be empty.
	Language string
	// PadUtterances controls whether utterances are padded with boundary
	// tokens before windowing.
	PadUtterances bool
	// NgramSize is the window size; must be >= 1.
	NgramSize int
	// Smooth is the additive smoothing constant; must be > 0.
	Smooth float64
}

// DefaultParams returns the default hyperparameters: trigrams, padding
// enabled, smoothing constant 1e-3.
func DefaultParams() Params {
	return Params{
		PadUtterances: true,
		NgramSize:     DefaultNgramSize,
		Smooth:        DefaultSmooth,
	}
}

// Model is a character n-gram language model. The zero value is not usable;
// construct with New and populate with Train or Load.
type Model struct {
	language      string
	padUtterances bool
	ngramSize     int
	smooth        float64

	// counts maps a context key (tokens joined with contextSep) to the
	// observed next-token counts. An absent context is distinct from a
	// present context with unseen next-tokens; the two take different
	// smoothing branches.
	counts map[string]map[string]int

	// vocab is only needed during training to size the denominator
	// smoother. It is not persisted.
	vocab map[string]struct{}

	// denomSmoother is |vocabulary| * smooth, frozen at the end of
	// training and stored verbatim on save. It is never recomputed from a
	// loaded model because the vocabulary does not survive persistence.
	denomSmoother float64
}

// New creates an empty model with the given hyperparameters. Zero values for
// NgramSize and Smooth fall back to the defaults. Invalid hyperparameters
// (NgramSize < 1 or Smooth <= 0) are rejected.
func New(p Params) (*Model, error) {
	if p.NgramSize == 0 {
		p.NgramSize = DefaultNgramSize
	}
	if p.Smooth == 0 {
		p.Smooth = DefaultSmooth
	}
	if p.NgramSize < 1 {
		return nil, fmt.Errorf("invalid ngram size %d (must be >= 1)", p.NgramSize)
	}
	if p.Smooth <= 0 {
		return nil, fmt.Errorf("invalid smoothing constant %g (must be > 0)", p.Smooth)
	}
	return &Model{
		language:      p.Language,
		padUtterances: p.PadUtterances,
		ngramSize:     p.NgramSize,
		smooth:        p.Smooth,
		counts:        make(map[string]map[string]int),
		vocab:         make(map[string]struct{}),
	}, nil
}

// reset clears all learned state so a model can be re-trained from scratch.
func (m *Model) reset() {
	m.counts = make(map[string]map[string]int)
	m.vocab = make(map[string]struct{})
	m.denomSmoother = 0
}

// Language returns the model's language tag ("" if unset).
func (m *Model) Language() string { return m.language }

// NgramSize returns the window size.
func (m *Model) NgramSize() int { return m.ngramSize }

// Smooth returns the additive smoothing constant.
func (m *Model) Smooth() float64 { return m.smooth }

// PadUtterances reports whether utterances are padded with boundary tokens.
func (m *Model) PadUtterances() bool { return m.padUtterances }

// DenominatorSmoother returns the frozen smoothing denominator term. It is 0
// for an untrained model or one trained on an empty corpus.
func (m *Model) DenominatorSmoother() float64 { return m.denomSmoother }

// ContextCount returns the number of distinct contexts observed in training.
func (m *Model) ContextCount() int { return len(m.counts) }

// Trained reports whether the model carries a usable probability
// distribution. Scoring an untrained model divides by zero.
func (m *Model) Trained() bool { return m.denomSmoother > 0 }
