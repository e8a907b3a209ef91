// internal/workers/personality/match-character/handler_test.go
package matchcharacter

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"personality-workers/internal/common/errors"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/common/validation"
	"personality-workers/internal/personality/analyzer"
	"personality-workers/internal/personality/characters"
	"personality-workers/internal/personality/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	catalog, err := characters.LoadDefault()
	require.NoError(t, err)
	a, err := analyzer.New(scoring.NewHeuristicScorer(), catalog, logger.NewNoOpLogger())
	require.NoError(t, err)
	return NewHandler(&Config{Timeout: time.Second}, a, validation.MustNew(), nil, logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name       string
		input      *Input
		wantSource string
		check      func(t *testing.T, out *Output)
	}{
		{
			name: "detective profile from scores",
			input: &Input{PersonalityScores: map[string]float64{
				"Openness": 0.75, "Conscientiousness": 1, "Extraversion": 0.25, "Agreeableness": 0.25, "Neuroticism": 0.5,
			}},
			wantSource: SourceScores,
			check: func(t *testing.T, out *Output) {
				assert.Equal(t, "TheDetective", out.Match.CharacterName)
				assert.Equal(t, characters.ConfidenceHigh, out.Match.Confidence)
				assert.InDelta(t, 1.0, out.Match.Similarity, 1e-9)
			},
		},
		{
			name:       "scores win over traits",
			input:      &Input{PersonalityScores: map[string]float64{}, SelectedTraits: map[string]bool{"creative": true}},
			wantSource: SourceScores,
			check: func(t *testing.T, out *Output) {
				assert.Equal(t, 0.5, out.Vector.Openness)
			},
		},
		{
			name:       "ui traits are mapped first",
			input:      &Input{SelectedTraits: map[string]bool{"creative": true, "energy": true}},
			wantSource: SourceUITraits,
			check: func(t *testing.T, out *Output) {
				assert.InDelta(t, 0.85, out.Vector.Openness, 1e-9)
				assert.InDelta(t, 0.8, out.Vector.Extraversion, 1e-9)
				assert.NotEmpty(t, out.Match.CharacterName)
			},
		},
	}

	h := newHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, out.Source)
			tt.check(t, out)
		})
	}
}

func TestHandler_Execute_NoSource(t *testing.T) {
	_, err := newHandler(t).Execute(context.Background(), &Input{})
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeInputValidationFailed, stdErr.Code)
}
