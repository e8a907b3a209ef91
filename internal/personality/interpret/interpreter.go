// internal/personality/interpret/interpreter.go
package interpret

import (
	"math"

	"personality-workers/internal/common/logger"
	"personality-workers/internal/personality/bigfive"
)

const (
	LevelHigh     = "High"
	LevelLow      = "Low"
	LevelBalanced = "Balanced"
)

// TraitInterpretation is the human-readable reading of one dimension.
type TraitInterpretation struct {
	Score          float64 `json:"score"`
	Level          string  `json:"level"`
	Description    string  `json:"description"`
	Confidence     float64 `json:"confidence"`
	ConfidenceText string  `json:"confidence_text"`
	Percentile     float64 `json:"percentile"`
	TraitName      string  `json:"trait_name"`
}

// Interpretation maps dimension names to their interpretation.
type Interpretation map[string]TraitInterpretation

// Interpreter turns raw scores into interpretations. It holds no state
// besides its logger.
type Interpreter struct {
	logger logger.Logger
}

func NewInterpreter(log logger.Logger) *Interpreter {
	return &Interpreter{logger: log}
}

// Interpret reads every known dimension in scores. Unknown names are
// skipped with a warning.
func (i *Interpreter) Interpret(scores map[string]float64) Interpretation {
	out := make(Interpretation, len(scores))
	for name, score := range scores {
		t, ok := bigfive.ParseTrait(name)
		if !ok {
			i.logger.Warn("unknown trait skipped", map[string]interface{}{"trait": name})
			continue
		}
		out[name] = interpretOne(t, score)
	}
	return out
}

// InterpretVector interprets all five dimensions of v.
func (i *Interpreter) InterpretVector(v bigfive.Vector) Interpretation {
	return i.Interpret(v.ToMap())
}

func interpretOne(t bigfive.Trait, score float64) TraitInterpretation {
	desc, _ := Describe(t)
	confidence := math.Abs(score-0.5) * 2

	ti := TraitInterpretation{
		Score:          bigfive.Round(score, 3),
		Level:          LevelLow,
		Description:    desc.Low,
		Confidence:     bigfive.Round(confidence, 3),
		ConfidenceText: ConfidenceText(confidence),
		Percentile:     bigfive.Round(score*100, 1),
		TraitName:      desc.Name,
	}
	if score > 0.5 {
		ti.Level = LevelHigh
		ti.Description = desc.High
	}
	return ti
}

// ConfidenceText buckets a confidence value.
func ConfidenceText(confidence float64) string {
	switch {
	case confidence > 0.7:
		return "Very confident"
	case confidence > 0.4:
		return "Moderately confident"
	default:
		return "Low confidence"
	}
}

// Minimal is the interpretation returned for insufficient input.
func Minimal() Interpretation {
	out := make(Interpretation, len(bigfive.Traits))
	for _, t := range bigfive.Traits {
		out[string(t)] = TraitInterpretation{
			Score:          bigfive.Default,
			Level:          LevelBalanced,
			Description:    "Insufficient data for detailed analysis",
			Confidence:     0.1,
			ConfidenceText: "Low confidence",
			Percentile:     50.0,
			TraitName:      string(t),
		}
	}
	return out
}
