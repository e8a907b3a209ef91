// internal/personality/interpret/descriptions.go
package interpret

import "personality-workers/internal/personality/bigfive"

// TraitDescription is the display text for one dimension.
type TraitDescription struct {
	Name     string
	High     string
	Low      string
	Keywords []string
}

var descriptions = map[bigfive.Trait]TraitDescription{
	bigfive.Openness: {
		Name:     "Openness to Experience",
		High:     "Curious, imaginative, open to new experiences, creative, intellectually adventurous",
		Low:      "Conventional, practical, prefers routine, traditional, less imaginative",
		Keywords: []string{"creative", "curious", "imaginative", "artistic", "innovative"},
	},
	bigfive.Conscientiousness: {
		Name:     "Conscientiousness",
		High:     "Organized, disciplined, goal-oriented, reliable, self-controlled",
		Low:      "Spontaneous, flexible, less structured, more impulsive",
		Keywords: []string{"organized", "disciplined", "reliable", "responsible", "thorough"},
	},
	bigfive.Extraversion: {
		Name:     "Extraversion",
		High:     "Outgoing, energetic, sociable, assertive, talkative",
		Low:      "Reserved, quiet, prefers solitude, thoughtful, independent",
		Keywords: []string{"outgoing", "energetic", "social", "talkative", "assertive"},
	},
	bigfive.Agreeableness: {
		Name:     "Agreeableness",
		High:     "Compassionate, cooperative, trusting, helpful, empathetic",
		Low:      "Competitive, skeptical, direct, independent, challenging",
		Keywords: []string{"cooperative", "trusting", "helpful", "empathetic", "kind"},
	},
	bigfive.Neuroticism: {
		Name:     "Emotional Stability",
		High:     "Sensitive to stress, prone to anxiety, emotionally reactive",
		Low:      "Calm, emotionally stable, resilient, even-tempered",
		Keywords: []string{"anxious", "stressed", "worried", "emotional", "sensitive"},
	},
}

// Describe returns the display text for t.
func Describe(t bigfive.Trait) (TraitDescription, bool) {
	d, ok := descriptions[t]
	return d, ok
}
