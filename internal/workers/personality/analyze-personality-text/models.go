// internal/workers/personality/analyze-personality-text/models.go
package analyzepersonalitytext

import "personality-workers/internal/personality/analyzer"

type Input struct {
	Text    string             `json:"text"`
	Mode    string             `json:"mode,omitempty"`
	Context []analyzer.Message `json:"context,omitempty"`
}

type Output struct {
	*analyzer.TextAnalysis
	Cached bool `json:"cached"`
}
