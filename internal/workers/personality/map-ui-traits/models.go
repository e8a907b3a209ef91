// internal/workers/personality/map-ui-traits/models.go
package mapuitraits

import "personality-workers/internal/personality/bigfive"

type Input struct {
	SelectedTraits map[string]bool `json:"selected_traits"`
}

type Output struct {
	PersonalityScores bigfive.Vector `json:"personality_scores"`
	UnknownTraits     []string       `json:"unknown_traits,omitempty"`
}
