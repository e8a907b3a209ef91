// internal/personality/avatar/avatar_test.go
package avatar

import (
	"encoding/json"
	"math"
	"testing"

	"personality-workers/internal/personality/bigfive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vec(o, c, e, a, n float64) bigfive.Vector {
	return bigfive.Vector{Openness: o, Conscientiousness: c, Extraversion: e, Agreeableness: a, Neuroticism: n}
}

// ==========================
// Archetype Tests
// ==========================

func TestSelectArchetype(t *testing.T) {
	tests := []struct {
		name       string
		vector     bigfive.Vector
		expected   string
		confidence float64
	}{
		{"innovator wins over every later rule", vec(0.9, 0.9, 0.9, 0.9, 0.5), "The Innovator", 0.9},
		{"collaborator", vec(0.5, 0.5, 0.8, 0.7, 0.5), "The Collaborator", 0.75},
		{"executor uses emotional stability", vec(0.5, 0.8, 0.5, 0.5, 0.2), "The Executor", 0.8},
		{"catalyst", vec(0.7, 0.5, 0.9, 0.5, 0.5), "The Catalyst", 0.8},
		{"supporter", vec(0.5, 0.7, 0.5, 0.9, 0.5), "The Supporter", 0.8},
		{"adaptable fallback", vec(0.5, 0.5, 0.5, 0.5, 0.5), "The Adaptable", 0.5},
		{"threshold is strict", vec(0.6, 0.6, 0.6, 0.6, 0.4), "The Adaptable", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := SelectArchetype(tt.vector)
			assert.Equal(t, tt.expected, a.Name)
			assert.InDelta(t, tt.confidence, a.Confidence, 1e-9)
			assert.NotEmpty(t, a.Emoji)
		})
	}
}

// ==========================
// Table Tests
// ==========================

func TestDominantTraits(t *testing.T) {
	assert.Equal(t, []string{"Creative", "Organized", "Social", "Collaborative", "Stable"},
		DominantTraits(vec(0.9, 0.9, 0.9, 0.9, 0.1)))
	assert.Equal(t, []string{}, DominantTraits(vec(0.5, 0.5, 0.5, 0.5, 0.5)))
	assert.Equal(t, []string{"Social"}, DominantTraits(vec(0.5, 0.5, 0.61, 0.5, 0.4)))
}

func TestWorkingAndCollaborationStyles(t *testing.T) {
	hi := vec(0.9, 0.9, 0.9, 0.9, 0.5)
	lo := vec(0.1, 0.1, 0.1, 0.1, 0.5)

	assert.Equal(t, WorkingStyle{
		Structure:  "Prefers structured approaches and clear processes",
		Innovation: "Enjoys exploring new methods and creative solutions",
		Energy:     "Works best with regular interaction and collaboration",
	}, WorkingStyleFor(hi))
	assert.Equal(t, WorkingStyle{
		Structure:  "Thrives with flexibility and spontaneous problem-solving",
		Innovation: "Values proven methods and practical approaches",
		Energy:     "Excels in focused, independent work environments",
	}, WorkingStyleFor(lo))

	assert.Equal(t, "Prioritizes harmony and consensus-building", CollaborationStyleFor(hi).Approach)
	assert.Equal(t, "Prefers thoughtful, prepared interactions", CollaborationStyleFor(lo).Communication)
	assert.Equal(t, "Brings spontaneity and adaptability to team dynamics", CollaborationStyleFor(lo).Reliability)
}

func TestCommunicationStyleFor(t *testing.T) {
	tests := []struct {
		vector   bigfive.Vector
		expected string
	}{
		{vec(0.9, 0.5, 0.9, 0.9, 0.5), "Warm and engaging, builds rapport easily"},
		{vec(0.9, 0.5, 0.9, 0.5, 0.5), "Enthusiastic and idea-focused, inspires others"},
		{vec(0.9, 0.5, 0.5, 0.9, 0.5), "Supportive and empathetic, listens actively"},
		{vec(0.9, 0.5, 0.5, 0.5, 0.5), "Thoughtful and conceptual, explores possibilities"},
		{vec(0.5, 0.5, 0.5, 0.5, 0.5), "Direct and practical, focuses on clear outcomes"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, CommunicationStyleFor(tt.vector))
		})
	}
}

func TestStrengthsFor(t *testing.T) {
	assert.Equal(t, []string{
		"Creative problem-solving", "Adaptability to change",
		"Stress management", "Decision-making under pressure",
	}, StrengthsFor(vec(0.8, 0.5, 0.5, 0.5, 0.2)))

	fallback := StrengthsFor(bigfive.Neutral())
	assert.Equal(t, []string{"Balanced skill set", "Adaptability"}, fallback)

	fallback[0] = "mutated"
	assert.Equal(t, "Balanced skill set", StrengthsFor(bigfive.Neutral())[0])
}

func TestIdealRoleFor(t *testing.T) {
	assert.Equal(t, "Innovation lead or creative strategist role with team interaction", IdealRoleFor(vec(0.9, 0.9, 0.9, 0.5, 0.5)))
	assert.Equal(t, "Project manager or team lead role with clear deliverables", IdealRoleFor(vec(0.5, 0.9, 0.9, 0.5, 0.5)))
	assert.Equal(t, "Product development or research role combining creativity with execution", IdealRoleFor(vec(0.9, 0.9, 0.5, 0.5, 0.5)))
	assert.Equal(t, "Client-facing or team coordination role with regular collaboration", IdealRoleFor(vec(0.5, 0.5, 0.9, 0.5, 0.5)))
	assert.Equal(t, "Operations or implementation role with structured processes", IdealRoleFor(vec(0.5, 0.9, 0.5, 0.5, 0.5)))
	assert.Equal(t, "Flexible contributor role adapting to team needs", IdealRoleFor(bigfive.Neutral()))
}

// ==========================
// Synthesis Tests
// ==========================

func TestSynthesize(t *testing.T) {
	v := vec(0.9, 0.8, 0.3, 0.5, 0.5)
	p := Synthesize(v, "Ada")

	assert.Equal(t, "Your Personal El: The Innovator", p.Title)
	assert.Equal(t, []string{"Creative", "Organized"}, p.DominantTraits)
	assert.Equal(t, "Meet Ada - Creative and organized, brings novel ideas to life "+
		"This creative, organized personality brings a unique combination of skills and perspectives to any team.", p.Summary)
	assert.Equal(t, v, p.PersonalityScores)
	assert.False(t, p.IsDefault())
}

func TestSynthesize_DefaultNameAndNoDominantTraits(t *testing.T) {
	p := Synthesize(bigfive.Neutral(), "")

	assert.Equal(t, "The Adaptable", p.Archetype.Name)
	assert.Contains(t, p.Summary, "Meet El - ")
	assert.Contains(t, p.Summary, "This adaptable personality")
	assert.False(t, p.IsDefault(), "rule-derived adaptable avatar is not the default avatar")
}

func TestSynthesize_NaNYieldsDefault(t *testing.T) {
	p := Synthesize(bigfive.Neutral().With(bigfive.Openness, math.NaN()), "Ada")

	assert.True(t, p.IsDefault())
	assert.Equal(t, Default(), p)
}

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, "Your Personal El: The Adaptable", d.Title)
	assert.Equal(t, 0.5, d.Archetype.Confidence)
	assert.Equal(t, []string{"Balanced", "Adaptable"}, d.DominantTraits)
	assert.Equal(t, bigfive.Neutral(), d.PersonalityScores)
}

func TestWithQuestContext_ReturnsCopy(t *testing.T) {
	base := Synthesize(vec(0.9, 0.9, 0.5, 0.5, 0.5), "")
	responses := []string{"a", "b", "c", "d"}

	q := base.WithQuestContext("Sam", responses)
	responses[0] = "changed"
	q.DominantTraits[0] = "changed"

	assert.Equal(t, "Sam", q.UserName)
	assert.Equal(t, "comprehensive_quest", q.AnalysisType)
	assert.Equal(t, "a", q.QuestResponses[0])
	assert.Empty(t, base.UserName)
	assert.Equal(t, "Creative", base.DominantTraits[0])
}

func TestWithGeneration_JSONShape(t *testing.T) {
	p := Default().WithGeneration("direct_scores", "2024-01-01T00:00:00Z")

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "direct_scores", decoded["generation_method"])
	assert.Equal(t, "2024-01-01T00:00:00Z", decoded["timestamp"])
	assert.NotContains(t, decoded, "user_name")
	assert.Contains(t, decoded["personality_scores"], "Openness")
}
