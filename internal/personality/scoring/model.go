// internal/personality/scoring/model.go
package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"personality-workers/internal/personality/bigfive"
	"personality-workers/internal/personality/features"
)

var (
	ErrModelInvalid = errors.New("MODEL_LOAD_FAILED")
	ErrScoreInvalid = errors.New("SCORER_FAILURE")
)

// ModelFile is the on-disk layout of trained linear weights.
type ModelFile struct {
	Name    string                     `yaml:"name"`
	Version string                     `yaml:"version"`
	Traits  map[string]TraitParameters `yaml:"traits"`
}

// TraitParameters holds the logistic weights for one dimension.
type TraitParameters struct {
	Bias    float64            `yaml:"bias"`
	Weights map[string]float64 `yaml:"weights"`
}

// ModelScorer scores with per-dimension logistic regression over the
// feature mapping.
type ModelScorer struct {
	name   string
	path   string
	params map[bigfive.Trait]TraitParameters
	// features per dimension, sorted so sums are reproducible
	order map[bigfive.Trait][]string
}

// LoadModel reads weights from path. Every dimension must be present.
func LoadModel(path string) (*ModelScorer, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: model path is empty", ErrModelInvalid)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelInvalid, err)
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, err
	}
	m.path = path
	return m, nil
}

// ParseModel decodes YAML weights.
func ParseModel(data []byte) (*ModelScorer, error) {
	var file ModelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrModelInvalid, err)
	}

	params := make(map[bigfive.Trait]TraitParameters, len(bigfive.Traits))
	order := make(map[bigfive.Trait][]string, len(bigfive.Traits))
	for name, p := range file.Traits {
		t, ok := bigfive.ParseTrait(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown trait %q", ErrModelInvalid, name)
		}
		params[t] = p
		keys := make([]string, 0, len(p.Weights))
		for feature := range p.Weights {
			keys = append(keys, feature)
		}
		sort.Strings(keys)
		order[t] = keys
	}
	for _, t := range bigfive.Traits {
		if _, ok := params[t]; !ok {
			return nil, fmt.Errorf("%w: missing trait %q", ErrModelInvalid, t)
		}
	}

	name := file.Name
	if name == "" {
		name = "Linear Personality Model"
	}
	if file.Version != "" {
		name += " " + file.Version
	}
	return &ModelScorer{name: name, params: params, order: order}, nil
}

func (m *ModelScorer) Name() string {
	return m.name
}

// Path is the file the weights were loaded from.
func (m *ModelScorer) Path() string {
	return m.path
}

func (m *ModelScorer) Score(ctx context.Context, f features.Vector, _ string) (bigfive.Vector, error) {
	if f.IsEmpty() {
		return bigfive.Neutral(), nil
	}
	if err := ctx.Err(); err != nil {
		return bigfive.Neutral(), err
	}

	values := f.AsMap()
	v := bigfive.Neutral()
	for _, t := range bigfive.Traits {
		p := m.params[t]
		z := p.Bias
		for _, feature := range m.order[t] {
			z += p.Weights[feature] * values[feature]
		}
		score := sigmoid(z)
		if math.IsNaN(score) {
			return bigfive.Neutral(), fmt.Errorf("%w: %s produced NaN", ErrScoreInvalid, t)
		}
		v = v.With(t, score)
	}
	return v.Clamped(), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
