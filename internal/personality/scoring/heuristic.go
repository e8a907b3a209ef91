// internal/personality/scoring/heuristic.go
package scoring

import (
	"context"
	"strings"

	"personality-workers/internal/personality/bigfive"
	"personality-workers/internal/personality/features"
)

const heuristicName = "Rule-Based Personality Analyzer v1.0"

// adjustment adds delta to a dimension when applies holds.
type adjustment struct {
	trait   bigfive.Trait
	delta   float64
	applies func(f features.Vector, text string) bool
}

func containsAny(words ...string) func(features.Vector, string) bool {
	return func(_ features.Vector, text string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}
}

var heuristicRules = []adjustment{
	{bigfive.Openness, 0.2, func(f features.Vector, _ string) bool { return f.AvgWordLength > 5 }},
	{bigfive.Openness, 0.15, func(f features.Vector, _ string) bool { return f.QuestionRatio > 0.02 }},
	{bigfive.Openness, 0.1, containsAny("creative", "innovative")},

	{bigfive.Conscientiousness, 0.2, func(f features.Vector, _ string) bool { return f.CertaintyRatio > 0.03 }},
	{bigfive.Conscientiousness, 0.15, containsAny("plan", "organize", "schedule")},
	{bigfive.Conscientiousness, -0.1, func(f features.Vector, _ string) bool { return f.UncertaintyRatio > 0.05 }},

	{bigfive.Extraversion, 0.2, func(f features.Vector, _ string) bool { return f.ExclamationRatio > 0.01 }},
	{bigfive.Extraversion, 0.15, func(f features.Vector, _ string) bool { return f.SecondPersonRatio > 0.05 }},
	{bigfive.Extraversion, 0.1, containsAny("team", "people", "social")},
	{bigfive.Extraversion, -0.1, func(f features.Vector, _ string) bool { return f.FirstPersonRatio > 0.15 }},

	{bigfive.Agreeableness, 0.2, func(f features.Vector, _ string) bool { return f.PositiveEmotionRatio > 0.03 }},
	{bigfive.Agreeableness, 0.15, containsAny("help", "support", "collaborate")},
	{bigfive.Agreeableness, -0.1, func(f features.Vector, _ string) bool { return f.NegativeEmotionRatio > 0.03 }},

	{bigfive.Neuroticism, 0.2, func(f features.Vector, _ string) bool { return f.NegativeEmotionRatio > 0.05 }},
	{bigfive.Neuroticism, 0.15, containsAny("stress", "worry", "anxious")},
	{bigfive.Neuroticism, -0.1, func(f features.Vector, _ string) bool { return f.PositiveEmotionRatio > 0.05 }},
	{bigfive.Neuroticism, -0.1, func(f features.Vector, _ string) bool { return f.CertaintyRatio > 0.03 }},
}

// HeuristicScorer starts every dimension at 0.5 and applies additive rules.
type HeuristicScorer struct {
	rules []adjustment
}

func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{rules: heuristicRules}
}

func (s *HeuristicScorer) Name() string {
	return heuristicName
}

// Score never fails. Clamping happens once per dimension, after all rules.
func (s *HeuristicScorer) Score(_ context.Context, f features.Vector, text string) (bigfive.Vector, error) {
	v := bigfive.Neutral()
	if f.IsEmpty() {
		return v, nil
	}

	lower := strings.ToLower(text)
	for _, r := range s.rules {
		if r.applies(f, lower) {
			v = v.With(r.trait, v.Get(r.trait)+r.delta)
		}
	}
	return v.Clamped(), nil
}
