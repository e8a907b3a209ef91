// internal/workers/personality/generate-avatar/models.go
package generateavatar

import (
	"personality-workers/internal/personality/analyzer"
	"personality-workers/internal/personality/avatar"
)

type Input struct {
	PersonalityScores map[string]float64   `json:"personality_scores"`
	UserContext       analyzer.UserContext `json:"user_context"`
}

type Output struct {
	Avatar *avatar.Profile `json:"avatar"`
}
