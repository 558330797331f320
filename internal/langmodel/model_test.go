package langmodel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600))
	return path
}

func trainedModel(t *testing.T, p Params, lines ...string) *Model {
	t.Helper()
	m, err := New(p)
	require.NoError(t, err)
	require.NoError(t, m.Train(writeCorpus(t, lines...)))
	return m
}

func TestNewRejectsInvalidHyperparameters(t *testing.T) {
	_, err := New(Params{NgramSize: -1, Smooth: 1e-3})
	assert.Error(t, err)

	_, err = New(Params{NgramSize: 3, Smooth: -0.5})
	assert.Error(t, err)
}

func TestNewAppliesDefaults(t *testing.T) {
	m, err := New(Params{})
	require.NoError(t, err)
	assert.Equal(t, DefaultNgramSize, m.NgramSize())
	assert.InDelta(t, DefaultSmooth, m.Smooth(), 0)
}

func TestTrainCountsAndSmoother(t *testing.T) {
	m := trainedModel(t, Params{PadUtterances: false, NgramSize: 2, Smooth: 0.5}, "aab")

	// "aab" -> windows (a,a), (a,b); vocabulary of next-tokens {a, b}.
	assert.Equal(t, 1, m.ContextCount())
	assert.InDelta(t, 2*0.5, m.DenominatorSmoother(), 1e-12)
	assert.True(t, m.Trained())
}

func TestTrainMissingCorpus(t *testing.T) {
	m, err := New(DefaultParams())
	require.NoError(t, err)
	assert.Error(t, m.Train(filepath.Join(t.TempDir(), "nope.txt")))
}

func TestTrainEmptyCorpus(t *testing.T) {
	m := trainedModel(t, DefaultParams())

	assert.Equal(t, 0, m.ContextCount())
	assert.InDelta(t, 0, m.DenominatorSmoother(), 0)
	assert.False(t, m.Trained())
}

func TestTrainResetsPreviousState(t *testing.T) {
	m, err := New(Params{PadUtterances: false, NgramSize: 2, Smooth: 1e-3})
	require.NoError(t, err)

	require.NoError(t, m.Train(writeCorpus(t, "abc")))
	firstContexts := m.ContextCount()
	firstSmoother := m.DenominatorSmoother()

	// Re-training on the same corpus must not accumulate counts.
	require.NoError(t, m.Train(writeCorpus(t, "abc")))
	assert.Equal(t, firstContexts, m.ContextCount())
	assert.InDelta(t, firstSmoother, m.DenominatorSmoother(), 1e-12)

	p, _ := m.Score("abc")
	require.NoError(t, m.Train(writeCorpus(t, "abc")))
	p2, _ := m.Score("abc")
	assert.InDelta(t, p, p2, 1e-12)
}

func TestNgramProbabilityStrictlyPositive(t *testing.T) {
	m := trainedModel(t, Params{PadUtterances: true, NgramSize: 3, Smooth: 1e-3},
		"hello world", "hold the door")

	for _, ngram := range [][]string{
		{"h", "e", "l"}, // seen
		{"h", "e", "z"}, // seen context, unseen next-token
		{"z", "z", "z"}, // unseen context
	} {
		p := m.NgramProbability(ngram)
		assert.Greater(t, p, 0.0, "ngram %v", ngram)
		assert.LessOrEqual(t, p, 1.0, "ngram %v", ngram)
	}
}

func TestNgramProbabilityUnseenContextFallback(t *testing.T) {
	m := trainedModel(t, Params{PadUtterances: false, NgramSize: 2, Smooth: 0.01}, "ab")

	want := m.Smooth() / m.DenominatorSmoother()
	assert.InDelta(t, want, m.NgramProbability([]string{"z", "q"}), 1e-12)
}

func TestConditionalDistributionNormalizes(t *testing.T) {
	// For a fixed context, probabilities over the full vocabulary must sum
	// to (c + d*|V|) / (c + d) scaled terms that total exactly 1 when d is
	// the vocabulary-sized smoother.
	m := trainedModel(t, Params{PadUtterances: false, NgramSize: 2, Smooth: 0.25},
		"aab", "aac")

	// Vocabulary of next-tokens: a, b, c.
	vocab := []string{"a", "b", "c"}
	sum := 0.0
	for _, tok := range vocab {
		sum += m.NgramProbability([]string{"a", tok})
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}

func TestScoreDegenerateUtterance(t *testing.T) {
	m := trainedModel(t, Params{PadUtterances: false, NgramSize: 3, Smooth: 1e-3},
		"hello world")

	_, ok := m.Score("ab")
	assert.False(t, ok)
}

func TestScoreIsLengthNormalized(t *testing.T) {
	m := trainedModel(t, Params{PadUtterances: false, NgramSize: 2, Smooth: 1e-3},
		"aaab")

	// Every window of "aaa..." has the same probability, so the normalized
	// score is independent of utterance length.
	s1, ok := m.Score("aaa")
	require.True(t, ok)
	s2, ok := m.Score("aaaaaaaa")
	require.True(t, ok)
	assert.InDelta(t, s1, s2, 1e-12)
}

func TestScoreNegativeLogProbability(t *testing.T) {
	m := trainedModel(t, DefaultParams(), "hello world", "hold the door")

	s, ok := m.Score("hello")
	require.True(t, ok)
	assert.Less(t, s, 0.0)
}

func TestSmoothingFlattensDistribution(t *testing.T) {
	// Increasing the smoothing constant must monotonically shrink the gap
	// between a frequent next-token and an unseen one for the same context.
	corpus := []string{"aaab"}
	var prevGap float64
	for i, smooth := range []float64{1e-6, 1e-3, 1e-1, 1.0} {
		m := trainedModel(t, Params{PadUtterances: false, NgramSize: 2, Smooth: smooth}, corpus...)
		frequent := m.NgramProbability([]string{"a", "a"})
		unseen := m.NgramProbability([]string{"a", "z"})
		gap := frequent - unseen
		assert.Greater(t, gap, 0.0, "smooth=%g", smooth)
		if i > 0 {
			assert.Less(t, gap, prevGap, "smooth=%g should flatten more", smooth)
		}
		prevGap = gap
	}
}

func TestBoundaryTokensAreCounted(t *testing.T) {
	m := trainedModel(t, Params{PadUtterances: true, NgramSize: 2, Smooth: 1e-3}, "a")

	// "a" padded to [<, a, >] -> windows (<,a), (a,>): both contexts seen.
	assert.Equal(t, 2, m.ContextCount())
	p := m.NgramProbability([]string{StartToken, "a"})
	assert.Greater(t, p, 0.5)
}
