// internal/personality/interpret/explain.go
package interpret

import (
	"fmt"
	"strings"

	"personality-workers/internal/personality/bigfive"
	"personality-workers/internal/personality/features"
)

const (
	balancedFallback = "Balanced personality across all traits"
	defaultLeadIn    = "Based on your input"
	insightFallback  = "Analysis based on overall language patterns and word choice."
	insightSeparator = " • "
	maxDominant      = 3
	dominantCutoff   = 0.6
)

var leadIns = map[string]string{
	"quest":        "Based on your comprehensive quest responses",
	"conversation": "Based on your conversational style",
	"jd":           "Based on your professional description",
	"general":      "Based on your text input",
}

type insightRule struct {
	applies func(f features.Vector) bool
	text    string
}

var insightRules = []insightRule{
	{func(f features.Vector) bool { return f.FirstPersonRatio > 0.1 }, "High use of first-person pronouns suggests self-focus"},
	{func(f features.Vector) bool { return f.PositiveEmotionRatio > 0.05 }, "Positive language indicates optimistic outlook"},
	{func(f features.Vector) bool { return f.CertaintyRatio > 0.03 }, "Definitive language suggests confidence"},
	{func(f features.Vector) bool { return f.QuestionRatio > 0.02 }, "Questioning language indicates curiosity"},
}

// LeadIn returns the opening phrase for an analysis mode.
func LeadIn(mode string) string {
	if s, ok := leadIns[mode]; ok {
		return s
	}
	return defaultLeadIn
}

// DominantTraits lists "Trait: Level" for confident dimensions in canonical
// order.
func DominantTraits(interp Interpretation) []string {
	var out []string
	for _, t := range bigfive.Traits {
		ti, ok := interp[string(t)]
		if !ok || ti.Confidence <= dominantCutoff {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", t, ti.Level))
	}
	return out
}

// Insights derives linguistic observations from the feature vector.
func Insights(f features.Vector) string {
	var parts []string
	for _, r := range insightRules {
		if r.applies(f) {
			parts = append(parts, r.text)
		}
	}
	if len(parts) == 0 {
		return insightFallback
	}
	return strings.Join(parts, insightSeparator)
}

// Explain builds the free-text explanation of an interpretation.
func Explain(interp Interpretation, f features.Vector, mode string) string {
	dominant := DominantTraits(interp)
	if len(dominant) == 0 {
		dominant = []string{balancedFallback}
	}
	if len(dominant) > maxDominant {
		dominant = dominant[:maxDominant]
	}
	return fmt.Sprintf("%s, I can see: %s. %s", LeadIn(mode), strings.Join(dominant, ", "), Insights(f))
}
