// internal/personality/uitraits/mapper.go
package uitraits

import (
	"sort"

	"personality-workers/internal/personality/bigfive"
)

// Weight is one dimension adjustment.
type Weight struct {
	Trait bigfive.Trait
	Delta float64
}

// Weights is the ordered contribution of one UI trait.
type Weights []Weight

// table maps the selectable UI traits onto Big Five adjustments.
var table = map[string]Weights{
	"innovation":      {{bigfive.Openness, 0.3}, {bigfive.Conscientiousness, 0.1}},
	"calm":            {{bigfive.Neuroticism, -0.3}, {bigfive.Conscientiousness, 0.1}},
	"energy":          {{bigfive.Extraversion, 0.3}, {bigfive.Openness, 0.05}},
	"collaborative":   {{bigfive.Agreeableness, 0.3}, {bigfive.Extraversion, 0.1}},
	"analytical":      {{bigfive.Conscientiousness, 0.2}, {bigfive.Openness, 0.1}, {bigfive.Extraversion, -0.1}},
	"creative":        {{bigfive.Openness, 0.3}},
	"organized":       {{bigfive.Conscientiousness, 0.3}},
	"empathetic":      {{bigfive.Agreeableness, 0.3}, {bigfive.Neuroticism, 0.05}},
	"leadership":      {{bigfive.Extraversion, 0.2}, {bigfive.Conscientiousness, 0.1}},
	"curious":         {{bigfive.Openness, 0.2}},
	"detail_oriented": {{bigfive.Conscientiousness, 0.2}},
	"adaptable":       {{bigfive.Openness, 0.1}, {bigfive.Neuroticism, -0.1}},
	"independent":     {{bigfive.Extraversion, -0.2}, {bigfive.Agreeableness, -0.1}},
	"resilient":       {{bigfive.Neuroticism, -0.2}},
	"strategic":       {{bigfive.Conscientiousness, 0.15}, {bigfive.Openness, 0.15}},
	"playful":         {{bigfive.Extraversion, 0.15}, {bigfive.Openness, 0.1}, {bigfive.Conscientiousness, -0.1}},
	"skeptical":       {{bigfive.Agreeableness, -0.2}, {bigfive.Openness, 0.05}},
	"sensitive":       {{bigfive.Neuroticism, 0.2}, {bigfive.Agreeableness, 0.1}},
}

// Map turns selected UI traits into a Big Five vector. Only traits set to
// true count; unknown names are ignored. Traits are applied in sorted order.
func Map(selected map[string]bool) bigfive.Vector {
	v := bigfive.Neutral()
	names := make([]string, 0, len(selected))
	for name, on := range selected {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		for _, w := range table[name] {
			v = v.With(w.Trait, v.Get(w.Trait)+w.Delta)
		}
	}
	return v.Clamped()
}

// Known reports whether name is a selectable trait.
func Known(name string) bool {
	_, ok := table[name]
	return ok
}

// Names returns the selectable traits in sorted order.
func Names() []string {
	out := make([]string, 0, len(table))
	for name := range table {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
