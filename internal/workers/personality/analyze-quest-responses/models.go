// internal/workers/personality/analyze-quest-responses/models.go
package analyzequestresponses

import "personality-workers/internal/personality/analyzer"

type Input struct {
	Responses []string `json:"responses"`
	UserName  string   `json:"user_name,omitempty"`
}

type Output struct {
	Analysis      *analyzer.QuestAnalysis `json:"analysis"`
	UserName      string                  `json:"user_name"`
	ResponseCount int                     `json:"response_count"`
}
