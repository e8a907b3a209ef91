// internal/personality/scoring/scorer_test.go
package scoring

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"personality-workers/internal/common/logger"
	"personality-workers/internal/personality/bigfive"
	"personality-workers/internal/personality/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Heuristic Scorer Tests
// ==========================

func TestHeuristicScorer_Score(t *testing.T) {
	tests := []struct {
		name     string
		features features.Vector
		text     string
		expected bigfive.Vector
	}{
		{
			name:     "empty features give neutral vector",
			features: features.Vector{},
			text:     "creative plan team help stress",
			expected: bigfive.Neutral(),
		},
		{
			name: "positive signals raise four dimensions and lower neuroticism",
			features: features.Vector{
				WordCount:            10,
				AvgWordLength:        6,
				QuestionRatio:        0.03,
				CertaintyRatio:       0.04,
				ExclamationRatio:     0.02,
				SecondPersonRatio:    0.06,
				PositiveEmotionRatio: 0.06,
			},
			text: "Creative team plan help",
			expected: bigfive.Vector{
				Openness:          0.95,
				Conscientiousness: 0.85,
				Extraversion:      0.95,
				Agreeableness:     0.85,
				Neuroticism:       0.3,
			},
		},
		{
			name: "negative signals",
			features: features.Vector{
				WordCount:            5,
				UncertaintyRatio:     0.1,
				FirstPersonRatio:     0.2,
				NegativeEmotionRatio: 0.06,
			},
			text: "so much stress and worry",
			expected: bigfive.Vector{
				Openness:          0.5,
				Conscientiousness: 0.4,
				Extraversion:      0.4,
				Agreeableness:     0.4,
				Neuroticism:       0.85,
			},
		},
		{
			name:     "keyword checks are case-insensitive substrings",
			features: features.Vector{WordCount: 3},
			text:     "INNOVATIVE planet PEOPLE",
			expected: bigfive.Neutral().
				With(bigfive.Openness, 0.6).
				With(bigfive.Conscientiousness, 0.65).
				With(bigfive.Extraversion, 0.6),
		},
	}

	scorer := NewHeuristicScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scorer.Score(context.Background(), tt.features, tt.text)
			require.NoError(t, err)
			assertVectorInDelta(t, tt.expected, got)
		})
	}
}

func TestHeuristicScorer_OutputInRange(t *testing.T) {
	scorer := NewHeuristicScorer()
	texts := []string{"", "creative plan team help stress", "nothing relevant"}
	ratios := []float64{0, 0.02, 0.1, 1}

	for _, text := range texts {
		for _, r := range ratios {
			f := features.Vector{
				WordCount:            4,
				AvgWordLength:        r * 10,
				ExclamationRatio:     r,
				QuestionRatio:        r,
				FirstPersonRatio:     r,
				SecondPersonRatio:    r,
				PositiveEmotionRatio: r,
				NegativeEmotionRatio: r,
				CertaintyRatio:       r,
				UncertaintyRatio:     r,
			}
			v, err := scorer.Score(context.Background(), f, text)
			require.NoError(t, err)
			for _, x := range v.Slice() {
				assert.GreaterOrEqual(t, x, 0.0)
				assert.LessOrEqual(t, x, 1.0)
			}
		}
	}
}

func TestHeuristicScorer_Name(t *testing.T) {
	assert.Equal(t, "Rule-Based Personality Analyzer v1.0", NewHeuristicScorer().Name())
}

// ==========================
// Model Scorer Tests
// ==========================

const zeroModel = `
name: Linear Personality Model
version: v2
traits:
  Openness: {bias: 0}
  Conscientiousness: {bias: 0}
  Extraversion: {bias: 0}
  Agreeableness:
    bias: 0
    weights:
      positive_emotion_ratio: 10
  Neuroticism: {bias: 0}
`

func TestParseModel(t *testing.T) {
	m, err := ParseModel([]byte(zeroModel))
	require.NoError(t, err)
	assert.Equal(t, "Linear Personality Model v2", m.Name())

	v, err := m.Score(context.Background(), features.Vector{WordCount: 2, PositiveEmotionRatio: 0.5}, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v.Openness, 1e-9)
	assert.Greater(t, v.Agreeableness, 0.99)
}

func TestParseModel_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing trait", "traits:\n  Openness: {bias: 0}\n"},
		{"unknown trait", "traits:\n  Humor: {bias: 0}\n"},
		{"bad yaml", "traits: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModel([]byte(tt.yaml))
			assert.True(t, errors.Is(err, ErrModelInvalid))
		})
	}
}

const mixedModel = `
traits:
  Openness:
    bias: 0.1
    weights:
      avg_word_length: 0.3
      exclamation_ratio: -0.7
      question_ratio: 0.1
      certainty_ratio: 0.2
      uncertainty_ratio: -0.3
  Conscientiousness: {bias: 0}
  Extraversion: {bias: 0}
  Agreeableness: {bias: 0}
  Neuroticism: {bias: 0}
`

func TestModelScorer_Deterministic(t *testing.T) {
	m, err := ParseModel([]byte(mixedModel))
	require.NoError(t, err)
	f := features.Vector{
		WordCount:        12,
		AvgWordLength:    4.1,
		ExclamationRatio: 0.3,
		QuestionRatio:    0.7,
		CertaintyRatio:   0.1,
		UncertaintyRatio: 0.2,
	}

	first, err := m.Score(context.Background(), f, "")
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		got, err := m.Score(context.Background(), f, "")
		require.NoError(t, err)
		assert.Equal(t, first, got, "run %d", i)
	}
}

func TestModelScorer_EmptyFeaturesGiveNeutral(t *testing.T) {
	m, err := ParseModel([]byte(zeroModel))
	require.NoError(t, err)

	v, err := m.Score(context.Background(), features.Vector{}, "anything")
	require.NoError(t, err)
	assert.Equal(t, bigfive.Neutral(), v)
}

func TestModelScorer_CancelledContext(t *testing.T) {
	m, err := ParseModel([]byte(zeroModel))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := m.Score(ctx, features.Vector{WordCount: 1}, "")
	assert.Error(t, err)
	assert.Equal(t, bigfive.Neutral(), v)
}

// ==========================
// Strategy Selection Tests
// ==========================

func TestNew(t *testing.T) {
	log := logger.NewTestLogger(t)

	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(zeroModel), 0o600))

	s, err := New(StrategyHeuristic, "", log)
	require.NoError(t, err)
	assert.IsType(t, &HeuristicScorer{}, s)

	s, err = New("", "", log)
	require.NoError(t, err)
	assert.IsType(t, &HeuristicScorer{}, s)

	s, err = New(StrategyModel, path, log)
	require.NoError(t, err)
	require.IsType(t, &ModelScorer{}, s)
	assert.Equal(t, path, s.(*ModelScorer).Path())

	s, err = New(StrategyModel, filepath.Join(t.TempDir(), "missing.yaml"), log)
	require.NoError(t, err)
	assert.IsType(t, &HeuristicScorer{}, s, "missing model falls back to heuristic")

	_, err = New("neural", "", log)
	assert.Error(t, err)
}

func assertVectorInDelta(t *testing.T, expected, actual bigfive.Vector) {
	t.Helper()
	for _, tr := range bigfive.Traits {
		assert.InDelta(t, expected.Get(tr), actual.Get(tr), 1e-9, string(tr))
	}
}

func TestLoadModel_SampleWeights(t *testing.T) {
	m, err := LoadModel(filepath.Join("..", "..", "..", "configs", "model.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Linear Personality Model 1.0", m.Name())

	v, err := m.Score(context.Background(), features.Extract("I am so happy to help you today!", features.ModeGeneral).Features, "")
	require.NoError(t, err)
	for _, x := range v.Slice() {
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, 1.0)
	}
}
