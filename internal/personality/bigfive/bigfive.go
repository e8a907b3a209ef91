// internal/personality/bigfive/bigfive.go
package bigfive

import (
	"math"
)

// Trait is one of the five canonical dimension names.
type Trait string

const (
	Openness          Trait = "Openness"
	Conscientiousness Trait = "Conscientiousness"
	Extraversion      Trait = "Extraversion"
	Agreeableness     Trait = "Agreeableness"
	Neuroticism       Trait = "Neuroticism"
)

// Default is the neutral value for a dimension with no signal.
const Default = 0.5

// Traits lists the dimensions in canonical order.
var Traits = []Trait{Openness, Conscientiousness, Extraversion, Agreeableness, Neuroticism}

// ParseTrait returns the Trait for an exact, case-sensitive name.
func ParseTrait(name string) (Trait, bool) {
	for _, t := range Traits {
		if string(t) == name {
			return t, true
		}
	}
	return "", false
}

// Vector is the canonical Big Five profile, every dimension in [0,1].
type Vector struct {
	Openness          float64 `json:"Openness"`
	Conscientiousness float64 `json:"Conscientiousness"`
	Extraversion      float64 `json:"Extraversion"`
	Agreeableness     float64 `json:"Agreeableness"`
	Neuroticism       float64 `json:"Neuroticism"`
}

// Neutral returns the all-0.5 vector.
func Neutral() Vector {
	return Vector{
		Openness:          Default,
		Conscientiousness: Default,
		Extraversion:      Default,
		Agreeableness:     Default,
		Neuroticism:       Default,
	}
}

// Get returns the value of one dimension.
func (v Vector) Get(t Trait) float64 {
	switch t {
	case Openness:
		return v.Openness
	case Conscientiousness:
		return v.Conscientiousness
	case Extraversion:
		return v.Extraversion
	case Agreeableness:
		return v.Agreeableness
	case Neuroticism:
		return v.Neuroticism
	}
	return Default
}

// With returns a copy of v with one dimension replaced.
func (v Vector) With(t Trait, value float64) Vector {
	switch t {
	case Openness:
		v.Openness = value
	case Conscientiousness:
		v.Conscientiousness = value
	case Extraversion:
		v.Extraversion = value
	case Agreeableness:
		v.Agreeableness = value
	case Neuroticism:
		v.Neuroticism = value
	}
	return v
}

// Clamped returns a copy of v with every dimension clamped to [0,1].
func (v Vector) Clamped() Vector {
	out := v
	for _, t := range Traits {
		out = out.With(t, Clamp(v.Get(t)))
	}
	return out
}

// Slice returns the dimensions in canonical order.
func (v Vector) Slice() []float64 {
	return []float64{v.Openness, v.Conscientiousness, v.Extraversion, v.Agreeableness, v.Neuroticism}
}

// ToMap returns the vector keyed by trait name.
func (v Vector) ToMap() map[string]float64 {
	m := make(map[string]float64, len(Traits))
	for _, t := range Traits {
		m[string(t)] = v.Get(t)
	}
	return m
}

// HasNaN reports whether any dimension is NaN.
func (v Vector) HasNaN() bool {
	for _, x := range v.Slice() {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

// FromMap builds a clamped vector from named scores. Missing dimensions get
// the default; names outside the five are returned as unknown.
func FromMap(scores map[string]float64) (Vector, []string) {
	v := Neutral()
	var unknown []string
	for name, value := range scores {
		t, ok := ParseTrait(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		v = v.With(t, value)
	}
	return v.Clamped(), unknown
}

// Clamp limits x to [0,1].
func Clamp(x float64) float64 {
	return math.Min(1, math.Max(0, x))
}

// FromLegacy converts a catalog score on the 1-5 scale to [0,1].
func FromLegacy(v int) float64 {
	return float64(v-1) / 4
}

// Round rounds x to the given number of decimals.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
