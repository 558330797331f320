package langmodel

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// maxUtteranceBytes bounds a single corpus line.
const maxUtteranceBytes = 1 << 20

// Train estimates the model from a corpus file containing one UTF-8 utterance
// per line. Trailing whitespace on each line is ignored. Training replaces
// any previously learned state ("reset on re-train"). An empty corpus is
// legal and leaves the model with an empty count table and a zero denominator
// smoother; such a model must not be scored.
func (m *Model) Train(corpusPath string) error {
	f, err := os.Open(corpusPath)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := m.TrainReader(f); err != nil {
		return fmt.Errorf("train from %s: %w", corpusPath, err)
	}
	return nil
}

// TrainReader is Train over an arbitrary reader, so callers can interpose
// progress reporting or decompression on the corpus stream.
func (m *Model) TrainReader(r io.Reader) error {
	m.reset()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxUtteranceBytes)
	utterances := 0
	for scanner.Scan() {
		m.addUtterance(strings.TrimRight(scanner.Text(), " \t\r"))
		utterances++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}

	// Frozen here, once, and persisted verbatim: the vocabulary is not
	// saved, so a reloaded model depends on this exact value.
	m.denomSmoother = float64(len(m.vocab)) * m.smooth

	slog.Debug("model trained",
		"language", m.language,
		"utterances", utterances,
		"contexts", len(m.counts),
		"vocabulary", len(m.vocab))
	return nil
}

// addUtterance counts every n-gram window of one utterance.
func (m *Model) addUtterance(utterance string) {
	for ngram := range m.Ngrams(utterance) {
		ctx := contextKey(ngram[:len(ngram)-1])
		next := ngram[len(ngram)-1]
		tokens, ok := m.counts[ctx]
		if !ok {
			tokens = make(map[string]int)
			m.counts[ctx] = tokens
		}
		tokens[next]++
		m.vocab[next] = struct{}{}
	}
}
