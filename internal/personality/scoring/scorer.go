// internal/personality/scoring/scorer.go
package scoring

import (
	"context"
	"fmt"

	"personality-workers/internal/common/logger"
	"personality-workers/internal/personality/bigfive"
	"personality-workers/internal/personality/features"
)

// Strategy names accepted in configuration.
const (
	StrategyHeuristic = "heuristic"
	StrategyModel     = "model"
)

// Scorer maps a feature vector and processed text to a Big Five vector.
// Implementations return the neutral vector for empty features.
type Scorer interface {
	Score(ctx context.Context, f features.Vector, text string) (bigfive.Vector, error)
	Name() string
}

// New builds the scorer named by strategy. A model that cannot be loaded
// falls back to the heuristic scorer with a warning.
func New(strategy, modelPath string, log logger.Logger) (Scorer, error) {
	switch strategy {
	case "", StrategyHeuristic:
		return NewHeuristicScorer(), nil
	case StrategyModel:
		m, err := LoadModel(modelPath)
		if err != nil {
			log.Warn("model scorer unavailable, using heuristic scorer", map[string]interface{}{
				"modelPath": modelPath,
				"error":     err.Error(),
			})
			return NewHeuristicScorer(), nil
		}
		log.Info("model scorer loaded", map[string]interface{}{
			"modelPath": modelPath,
			"model":     m.Name(),
		})
		return m, nil
	default:
		return nil, fmt.Errorf("unknown scorer strategy %q", strategy)
	}
}
