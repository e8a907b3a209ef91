// internal/workers/personality/match-character/models.go
package matchcharacter

import (
	"personality-workers/internal/personality/bigfive"
	"personality-workers/internal/personality/characters"
)

const (
	SourceScores   = "personality_scores"
	SourceUITraits = "selected_traits"
)

// Input carries either scores or UI traits. Scores win when both are set.
type Input struct {
	PersonalityScores map[string]float64 `json:"personality_scores,omitempty"`
	SelectedTraits    map[string]bool    `json:"selected_traits,omitempty"`
}

type Output struct {
	Match  characters.MatchResult `json:"match"`
	Vector bigfive.Vector         `json:"personality_vector"`
	Source string                 `json:"source"`
}
