// internal/personality/bigfive/bigfive_test.go
package bigfive

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromLegacy_RoundTrip(t *testing.T) {
	expected := map[int]float64{1: 0, 2: 0.25, 3: 0.5, 4: 0.75, 5: 1.0}
	for legacy, want := range expected {
		assert.Equal(t, want, FromLegacy(legacy), "legacy %d", legacy)
	}
}

func TestFromMap(t *testing.T) {
	tests := []struct {
		name        string
		input       map[string]float64
		expected    Vector
		unknownKeys []string
	}{
		{
			name:     "empty map gives neutral vector",
			input:    map[string]float64{},
			expected: Neutral(),
		},
		{
			name:     "missing dimensions default to 0.5",
			input:    map[string]float64{"Openness": 0.9},
			expected: Neutral().With(Openness, 0.9),
		},
		{
			name:     "values are clamped",
			input:    map[string]float64{"Extraversion": 1.7, "Neuroticism": -0.4},
			expected: Neutral().With(Extraversion, 1).With(Neuroticism, 0),
		},
		{
			name:        "unknown and wrong-case names are reported",
			input:       map[string]float64{"openness": 0.1, "Humor": 0.8},
			expected:    Neutral(),
			unknownKeys: []string{"Humor", "openness"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, unknown := FromMap(tt.input)
			sort.Strings(unknown)
			assert.Equal(t, tt.expected, v)
			assert.Equal(t, tt.unknownKeys, unknown)
		})
	}
}

func TestVector_Accessors(t *testing.T) {
	v := Vector{Openness: 0.1, Conscientiousness: 0.2, Extraversion: 0.3, Agreeableness: 0.4, Neuroticism: 0.5}

	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, v.Slice())
	assert.Equal(t, 0.3, v.Get(Extraversion))
	assert.Equal(t, Default, v.Get(Trait("Unknown")))
	assert.Len(t, v.ToMap(), 5)
	assert.Equal(t, 0.4, v.ToMap()["Agreeableness"])

	w := v.With(Openness, 0.9)
	assert.Equal(t, 0.1, v.Openness, "With must not mutate the receiver")
	assert.Equal(t, 0.9, w.Openness)
}

func TestVector_HasNaN(t *testing.T) {
	assert.False(t, Neutral().HasNaN())
	assert.True(t, Neutral().With(Agreeableness, math.NaN()).HasNaN())
}

func TestParseTrait(t *testing.T) {
	tr, ok := ParseTrait("Neuroticism")
	assert.True(t, ok)
	assert.Equal(t, Neuroticism, tr)

	_, ok = ParseTrait("neuroticism")
	assert.False(t, ok)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.667, Round(2.0/3.0, 3))
	assert.Equal(t, 66.7, Round(2.0/3.0*100, 1))
}
