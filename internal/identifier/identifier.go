// Package identifier picks the most likely language for a text by scoring it
// under a fixed set of independently trained language models and taking the
// arg-max. Models are read-only after loading, so candidates are scored
// concurrently without locking.
package identifier

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/MeKo-Tech/langid/internal/langmodel"
	"github.com/MeKo-Tech/langid/internal/models"
)

// Scorer is the single capability the identifier needs from a language model.
// *langmodel.Model implements it.
type Scorer interface {
	// Score returns the length-normalized log-probability of the text and
	// whether the text was scoreable at all.
	Score(text string) (float64, bool)
	// Language returns the model's language tag.
	Language() string
}

// LanguageScore is one candidate model's verdict on a text.
type LanguageScore struct {
	Language string  `json:"language"`
	Score    float64 `json:"score"`
	// OK is false when the model could not extract any n-grams from the
	// text.
	OK bool `json:"ok"`
}

// Identifier holds an ordered, immutable collection of candidate scorers.
// Order is the tie-break priority: on equal scores the earlier scorer wins.
type Identifier struct {
	scorers []Scorer
	workers int
}

// New builds an identifier over the given scorers, in priority order.
func New(scorers ...Scorer) (*Identifier, error) {
	if len(scorers) == 0 {
		return nil, errors.New("no scorers provided")
	}
	return &Identifier{scorers: scorers, workers: runtime.NumCPU()}, nil
}

// LoadDirectory builds an identifier from every serialized model document
// (*.json) in dir. Files are loaded in lexical filename order, which fixes
// the tie-break priority deterministically.
func LoadDirectory(dir string) (*Identifier, error) {
	paths, err := models.ListModelFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no model documents found in %s", dir)
	}
	scorers := make([]Scorer, 0, len(paths))
	for _, path := range paths {
		m, err := langmodel.Load(path)
		if err != nil {
			return nil, err
		}
		if !m.Trained() {
			return nil, fmt.Errorf("model %s has an empty vocabulary and cannot score", path)
		}
		scorers = append(scorers, m)
		slog.Debug("model loaded", "path", path, "language", m.Language())
	}
	return New(scorers...)
}

// SetWorkers bounds the number of concurrent scoring goroutines. Values < 1
// restore the default (number of CPUs).
func (id *Identifier) SetWorkers(n int) {
	if n < 1 {
		n = runtime.NumCPU()
	}
	id.workers = n
}

// Languages returns the candidate language tags in priority order.
func (id *Identifier) Languages() []string {
	langs := make([]string, len(id.scorers))
	for i, s := range id.scorers {
		langs[i] = s.Language()
	}
	return langs
}

// Scorer returns the scorer for the given language tag.
func (id *Identifier) Scorer(language string) (Scorer, bool) {
	for _, s := range id.scorers {
		if s.Language() == language {
			return s, true
		}
	}
	return nil, false
}

// Scores scores the text under every candidate model and returns the results
// in priority order. Scoring runs on a bounded worker pool; each model is
// immutable so no synchronization beyond the pool is needed.
func (id *Identifier) Scores(text string) []LanguageScore {
	out := make([]LanguageScore, len(id.scorers))

	workers := min(id.workers, len(id.scorers))
	if workers <= 1 {
		for i, s := range id.scorers {
			val, ok := s.Score(text)
			out[i] = LanguageScore{Language: s.Language(), Score: val, OK: ok}
		}
		return out
	}

	jobs := make(chan int, len(id.scorers))
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				s := id.scorers[i]
				val, ok := s.Score(text)
				out[i] = LanguageScore{Language: s.Language(), Score: val, OK: ok}
			}
		}()
	}
	for i := range id.scorers {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return out
}

// Identify returns the language tag of the model assigning the text the
// highest normalized log-probability. Ties go to the first-loaded model. The
// second result is false when no candidate could score the text (degenerate
// input).
func (id *Identifier) Identify(text string) (string, bool) {
	return PickBest(id.Scores(text))
}

// PickBest returns the language of the highest scoreable entry. It scans in
// priority order; a strict greater-than keeps the earliest entry on ties.
func PickBest(scores []LanguageScore) (string, bool) {
	bestIdx := -1
	for i, s := range scores {
		if !s.OK {
			continue
		}
		if bestIdx == -1 || s.Score > scores[bestIdx].Score {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return "", false
	}
	return scores[bestIdx].Language, true
}
