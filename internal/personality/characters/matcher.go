// internal/personality/characters/matcher.go
package characters

import (
	"math"

	"personality-workers/internal/personality/bigfive"
)

const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

type MatchResult struct {
	CharacterName string  `json:"character_name"`
	Character     Profile `json:"character"`
	Similarity    float64 `json:"similarity"`
	Confidence    string  `json:"confidence"`
}

// Match returns the entry most similar to v. Ties keep the earlier entry.
func (c *Catalog) Match(v bigfive.Vector) MatchResult {
	best := 0
	bestSim := -1.0
	for i, e := range c.entries {
		sim := Similarity(v, e.Scores.Vector())
		if sim > bestSim {
			best, bestSim = i, sim
		}
	}
	return MatchResult{
		CharacterName: c.entries[best].Name,
		Character:     c.entries[best],
		Similarity:    bestSim,
		Confidence:    ConfidenceFor(bestSim),
	}
}

// Similarity is the cosine similarity of a and b clamped to [0,1]. A zero
// vector on either side gives 0.
func Similarity(a, b bigfive.Vector) float64 {
	x, y := a.Slice(), b.Slice()
	var dot, nx, ny float64
	for i := range x {
		dot += x[i] * y[i]
		nx += x[i] * x[i]
		ny += y[i] * y[i]
	}
	if nx == 0 || ny == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(nx) * math.Sqrt(ny))
	if math.IsNaN(sim) {
		return 0
	}
	return bigfive.Clamp(sim)
}

func ConfidenceFor(similarity float64) string {
	switch {
	case similarity > 0.8:
		return ConfidenceHigh
	case similarity > 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
