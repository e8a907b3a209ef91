// internal/personality/analyzer/analyzer_test.go
package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"personality-workers/internal/common/logger"
	"personality-workers/internal/personality/bigfive"
	"personality-workers/internal/personality/characters"
	"personality-workers/internal/personality/features"
	"personality-workers/internal/personality/interpret"
	"personality-workers/internal/personality/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// ==========================
// Test Helpers
// ==========================

type recordingScorer struct {
	texts  []string
	result bigfive.Vector
	err    error
}

func (s *recordingScorer) Score(_ context.Context, _ features.Vector, text string) (bigfive.Vector, error) {
	s.texts = append(s.texts, text)
	return s.result, s.err
}

func (s *recordingScorer) Name() string { return "recording" }

func newAnalyzer(t *testing.T, scorer scoring.Scorer) *Analyzer {
	t.Helper()
	catalog, err := characters.LoadDefault()
	require.NoError(t, err)
	a, err := New(scorer, catalog, logger.NewTestLogger(t))
	require.NoError(t, err)
	a.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return a
}

// ==========================
// Construction Tests
// ==========================

func TestNew(t *testing.T) {
	catalog, err := characters.LoadDefault()
	require.NoError(t, err)

	_, err = New(scoring.NewHeuristicScorer(), nil, logger.NewNoOpLogger())
	assert.ErrorIs(t, err, characters.ErrCatalogEmpty)

	_, err = New(nil, catalog, logger.NewNoOpLogger())
	assert.ErrorIs(t, err, ErrNoScorer)
}

// ==========================
// AnalyzeText Tests
// ==========================

func TestAnalyzeText_EmptyInputIsMinimal(t *testing.T) {
	a := newAnalyzer(t, scoring.NewHeuristicScorer())

	for _, text := range []string{"", "   \n\t"} {
		res := a.AnalyzeText(context.Background(), text, "general", nil)

		assert.True(t, res.Degraded)
		assert.Equal(t, MessageInsufficientText, res.Explanation)
		assert.Equal(t, "The Adaptable", res.AvatarData.Archetype.Name)
		assert.True(t, res.AvatarData.IsDefault())
		require.Len(t, res.PersonalityScores, 5)
		for name, ti := range res.PersonalityScores {
			assert.Equal(t, 0.1, ti.Confidence, name)
			assert.Equal(t, interpret.LevelBalanced, ti.Level)
		}
	}
}

func TestAnalyzeText_Heuristic(t *testing.T) {
	a := newAnalyzer(t, scoring.NewHeuristicScorer())

	res := a.AnalyzeText(context.Background(), "I love creative ideas and I always plan with my team!", "", nil)

	assert.False(t, res.Degraded)
	assert.Equal(t, "general", res.AnalysisMode)
	assert.NotEmpty(t, res.AnalysisID)
	assert.Len(t, res.PersonalityScores, 5)
	assert.Contains(t, res.Explanation, "Based on your text input, I can see: ")
	assert.NotNil(t, res.AvatarData)
	assert.Equal(t, 53, res.TextLength)
	for _, x := range res.Vector.Slice() {
		assert.GreaterOrEqual(t, x, 0.0)
		assert.LessOrEqual(t, x, 1.0)
	}
}

func TestAnalyzeText_ScorerFailure(t *testing.T) {
	a := newAnalyzer(t, &recordingScorer{err: errors.New("boom")})

	res := a.AnalyzeText(context.Background(), "hello there", "general", nil)

	assert.True(t, res.Degraded)
	assert.Equal(t, "Analysis error: boom", res.Explanation)
	assert.True(t, res.AvatarData.IsDefault())
}

func TestAnalyzeText_PriorMessagesArePrepended(t *testing.T) {
	s := &recordingScorer{result: bigfive.Neutral()}
	a := newAnalyzer(t, s)

	prior := []Message{
		{Role: "user", Content: "m1"},
		{Role: "assistant", Content: "m2"},
		{Role: "user", Content: "m3"},
		{Role: "assistant", Content: "m4"},
		{Role: "user", Content: "m5"},
		{Role: "assistant", Content: "m6"},
	}
	a.AnalyzeText(context.Background(), "Hello", "conversation", prior)

	require.Len(t, s.texts, 1)
	assert.Equal(t, "m2 m3 m4 m5 m6 hello", s.texts[0])
}

func TestAnalyzeText_Deterministic(t *testing.T) {
	a := newAnalyzer(t, scoring.NewHeuristicScorer())
	text := "I think maybe we should organize the plan."

	first := a.AnalyzeText(context.Background(), text, "general", nil)
	second := a.AnalyzeText(context.Background(), text, "general", nil)

	assert.Equal(t, first.PersonalityScores, second.PersonalityScores)
	assert.Equal(t, first.Explanation, second.Explanation)
	assert.Equal(t, first.AvatarData, second.AvatarData)
	assert.NotEqual(t, first.AnalysisID, second.AnalysisID)
}

// ==========================
// Quest Tests
// ==========================

func TestAnalyzeQuestResponses(t *testing.T) {
	a := newAnalyzer(t, scoring.NewHeuristicScorer())
	responses := []string{
		"I lead a design team",
		"Learning a new language",
		"My grandmother, family first",
		"Make the world a kinder place",
	}

	q := a.AnalyzeQuestResponses(context.Background(), responses, "Sam")

	assert.Equal(t, StatusComplete, q.CompletionStatus)
	assert.Equal(t, "Sam", q.UserName)
	assert.Len(t, q.PersonalityAnalysis, 5)
	assert.Contains(t, q.Explanation, "Based on your comprehensive quest responses")
	require.NotNil(t, q.AvatarData)
	assert.Equal(t, "Sam", q.AvatarData.UserName)
	assert.Equal(t, "comprehensive_quest", q.AvatarData.AnalysisType)
	assert.Equal(t, responses, q.AvatarData.QuestResponses)
	require.NotNil(t, q.QuestInsights)
	assert.Equal(t, QuestInsights{
		WorkStyle:         "Shows leadership orientation and people management skills",
		PassionAnalysis:   "High drive for continuous learning and growth",
		SocialPreferences: "Prioritizes close relationships and personal connections",
		ImpactMotivation:  "Driven by large-scale positive change and global impact",
	}, *q.QuestInsights)
}

func TestAnalyzeQuestResponses_TooFew(t *testing.T) {
	a := newAnalyzer(t, scoring.NewHeuristicScorer())

	q := a.AnalyzeQuestResponses(context.Background(), []string{"a", "b", "c"}, "")

	assert.Equal(t, StatusFailed, q.CompletionStatus)
	assert.Equal(t, DefaultUserName, q.UserName)
	assert.Nil(t, q.PersonalityAnalysis)
	assert.Nil(t, q.AvatarData)
	assert.Equal(t, ErrQuestIncomplete.Error(), q.Error)
}

func TestReadQuestInsights(t *testing.T) {
	tests := []struct {
		name      string
		responses []string
		expected  QuestInsights
	}{
		{
			name:      "fallbacks",
			responses: []string{"x", "x", "x", "x"},
			expected: QuestInsights{
				WorkStyle:         "Shows diverse professional interests and adaptability",
				PassionAnalysis:   "Diverse interests with intrinsic motivation",
				SocialPreferences: "Open to diverse perspectives and meaningful conversations",
				ImpactMotivation:  "Balanced approach to making meaningful contributions",
			},
		},
		{
			name:      "second rules",
			responses: []string{"I BUILD things", "volunteer work", "a famous chef", "our company"},
			expected: QuestInsights{
				WorkStyle:         "Demonstrates creative and building-focused approach",
				PassionAnalysis:   "Strong orientation toward helping others and social impact",
				SocialPreferences: "Interested in leadership, influence, and achievement",
				ImpactMotivation:  "Focused on professional and organizational improvement",
			},
		},
		{
			name:      "third rules",
			responses: []string{"research", "music", "someone historical", "local parks"},
			expected: QuestInsights{
				WorkStyle:         "Indicates analytical and research-oriented mindset",
				PassionAnalysis:   "Creative expression and artistic interests drive engagement",
				SocialPreferences: "Values learning from history and past wisdom",
				ImpactMotivation:  "Motivated by personal and community-level positive change",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReadQuestInsights(tt.responses))
		})
	}
}

// ==========================
// Avatar / Match Tests
// ==========================

func TestGenerateAvatarFromScores(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	catalog, err := characters.LoadDefault()
	require.NoError(t, err)
	a, err := New(scoring.NewHeuristicScorer(), catalog, logger.NewZapAdapter(zap.New(core)))
	require.NoError(t, err)
	a.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	t.Run("empty map is default", func(t *testing.T) {
		p := a.GenerateAvatarFromScores(map[string]float64{}, UserContext{})
		assert.True(t, p.IsDefault())
		assert.Equal(t, "direct_scores", p.GenerationMethod)
		assert.Equal(t, "2024-05-01T12:00:00Z", p.Timestamp)
	})

	t.Run("partial scores with unknown key", func(t *testing.T) {
		p := a.GenerateAvatarFromScores(map[string]float64{
			"Openness":          0.9,
			"Conscientiousness": 0.8,
			"Humor":             1,
		}, UserContext{UserName: "Sam"})

		assert.Equal(t, "The Innovator", p.Archetype.Name)
		assert.Equal(t, 0.5, p.PersonalityScores.Extraversion)
		assert.Contains(t, p.Summary, "Meet Sam - ")
		assert.Equal(t, "direct_scores", p.GenerationMethod)
		require.Equal(t, 1, logs.FilterMessage("unknown trait skipped").Len())
	})
}

func TestMatchCharacter(t *testing.T) {
	a := newAnalyzer(t, scoring.NewHeuristicScorer())

	m := a.MatchCharacter(characters.LegacyScores{O: 5, C: 4, E: 1, A: 1, N: 5}.Vector())
	assert.Equal(t, "ConspiracyEl", m.CharacterName)
	assert.Equal(t, characters.ConfidenceHigh, m.Confidence)
}

func TestMapUITraits(t *testing.T) {
	a := newAnalyzer(t, scoring.NewHeuristicScorer())

	v := a.MapUITraits(map[string]bool{"calm": true})
	assert.InDelta(t, 0.2, v.Neuroticism, 1e-9)
	assert.InDelta(t, 0.6, v.Conscientiousness, 1e-9)
}

func TestModelInfo(t *testing.T) {
	a := newAnalyzer(t, scoring.NewHeuristicScorer())

	info := a.ModelInfo()
	assert.Equal(t, "Rule-Based Personality Analyzer v1.0", info.ModelName)
	assert.Empty(t, info.ModelPath)
	assert.Equal(t, []string{"Openness", "Conscientiousness", "Extraversion", "Agreeableness", "Neuroticism"}, info.SupportedTraits)
	assert.Equal(t, []string{"general", "quest", "conversation", "jd"}, info.AnalysisModes)
}
