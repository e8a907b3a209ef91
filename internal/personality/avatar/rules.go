// internal/personality/avatar/rules.go
package avatar

import "personality-workers/internal/personality/bigfive"

const threshold = 0.6

// Rule tables are evaluated in order. For the first-match tables, the order
// is the tie-break.

type predicate func(v bigfive.Vector) bool

func high(t bigfive.Trait) predicate {
	return func(v bigfive.Vector) bool { return v.Get(t) > threshold }
}

func stable(v bigfive.Vector) bool {
	return v.Neuroticism < 0.4
}

func both(a, b predicate) predicate {
	return func(v bigfive.Vector) bool { return a(v) && b(v) }
}

func always(bigfive.Vector) bool { return true }

type labelRule struct {
	when  predicate
	label string
}

var dominantRules = []labelRule{
	{high(bigfive.Openness), "Creative"},
	{high(bigfive.Conscientiousness), "Organized"},
	{high(bigfive.Extraversion), "Social"},
	{high(bigfive.Agreeableness), "Collaborative"},
	{stable, "Stable"},
}

type archetypeRule struct {
	when       predicate
	archetype  Archetype
	confidence func(v bigfive.Vector) float64
}

var archetypeRules = []archetypeRule{
	{
		when:       both(high(bigfive.Openness), high(bigfive.Conscientiousness)),
		archetype:  Archetype{Name: "The Innovator", Description: "Creative and organized, brings novel ideas to life", Emoji: "💡"},
		confidence: func(v bigfive.Vector) float64 { return (v.Openness + v.Conscientiousness) / 2 },
	},
	{
		when:       both(high(bigfive.Extraversion), high(bigfive.Agreeableness)),
		archetype:  Archetype{Name: "The Collaborator", Description: "People-focused and energetic, excels in team environments", Emoji: "🤝"},
		confidence: func(v bigfive.Vector) float64 { return (v.Extraversion + v.Agreeableness) / 2 },
	},
	{
		when:       both(high(bigfive.Conscientiousness), stable),
		archetype:  Archetype{Name: "The Executor", Description: "Reliable and calm, gets things done efficiently", Emoji: "⚡"},
		confidence: func(v bigfive.Vector) float64 { return (v.Conscientiousness + (1 - v.Neuroticism)) / 2 },
	},
	{
		when:       both(high(bigfive.Openness), high(bigfive.Extraversion)),
		archetype:  Archetype{Name: "The Catalyst", Description: "Energetic and creative, drives change and innovation", Emoji: "🚀"},
		confidence: func(v bigfive.Vector) float64 { return (v.Openness + v.Extraversion) / 2 },
	},
	{
		when:       both(high(bigfive.Conscientiousness), high(bigfive.Agreeableness)),
		archetype:  Archetype{Name: "The Supporter", Description: "Dependable and caring, provides stability and support", Emoji: "🛡️"},
		confidence: func(v bigfive.Vector) float64 { return (v.Conscientiousness + v.Agreeableness) / 2 },
	},
	{
		when:       always,
		archetype:  Archetype{Name: "The Adaptable", Description: "Balanced and flexible, adapts well to different situations", Emoji: "🌟"},
		confidence: func(bigfive.Vector) float64 { return 0.5 },
	},
}

// choice picks between two texts on one predicate.
type choice struct {
	when    predicate
	yes, no string
}

func (c choice) pick(v bigfive.Vector) string {
	if c.when(v) {
		return c.yes
	}
	return c.no
}

var workingStyleRules = struct{ structure, innovation, energy choice }{
	structure: choice{high(bigfive.Conscientiousness),
		"Prefers structured approaches and clear processes",
		"Thrives with flexibility and spontaneous problem-solving"},
	innovation: choice{high(bigfive.Openness),
		"Enjoys exploring new methods and creative solutions",
		"Values proven methods and practical approaches"},
	energy: choice{high(bigfive.Extraversion),
		"Works best with regular interaction and collaboration",
		"Excels in focused, independent work environments"},
}

var collaborationRules = struct{ approach, communication, reliability choice }{
	approach: choice{high(bigfive.Agreeableness),
		"Prioritizes harmony and consensus-building",
		"Values direct communication and healthy debate"},
	communication: choice{high(bigfive.Extraversion),
		"Communicates openly and frequently with team members",
		"Prefers thoughtful, prepared interactions"},
	reliability: choice{high(bigfive.Conscientiousness),
		"Delivers on commitments and maintains accountability",
		"Brings spontaneity and adaptability to team dynamics"},
}

var communicationRules = []labelRule{
	{both(high(bigfive.Extraversion), high(bigfive.Agreeableness)), "Warm and engaging, builds rapport easily"},
	{both(high(bigfive.Extraversion), high(bigfive.Openness)), "Enthusiastic and idea-focused, inspires others"},
	{high(bigfive.Agreeableness), "Supportive and empathetic, listens actively"},
	{high(bigfive.Openness), "Thoughtful and conceptual, explores possibilities"},
	{always, "Direct and practical, focuses on clear outcomes"},
}

type strengthRule struct {
	when      predicate
	strengths []string
}

var strengthRules = []strengthRule{
	{high(bigfive.Openness), []string{"Creative problem-solving", "Adaptability to change"}},
	{high(bigfive.Conscientiousness), []string{"Project management", "Attention to detail"}},
	{high(bigfive.Extraversion), []string{"Team leadership", "Communication skills"}},
	{high(bigfive.Agreeableness), []string{"Conflict resolution", "Team building"}},
	{stable, []string{"Stress management", "Decision-making under pressure"}},
}

var fallbackStrengths = []string{"Balanced skill set", "Adaptability"}

var idealRoleRules = []labelRule{
	{both(high(bigfive.Openness), high(bigfive.Extraversion)), "Innovation lead or creative strategist role with team interaction"},
	{both(high(bigfive.Conscientiousness), high(bigfive.Extraversion)), "Project manager or team lead role with clear deliverables"},
	{both(high(bigfive.Openness), high(bigfive.Conscientiousness)), "Product development or research role combining creativity with execution"},
	{high(bigfive.Extraversion), "Client-facing or team coordination role with regular collaboration"},
	{high(bigfive.Conscientiousness), "Operations or implementation role with structured processes"},
	{always, "Flexible contributor role adapting to team needs"},
}

// firstLabel returns the label of the first matching rule.
func firstLabel(rules []labelRule, v bigfive.Vector) string {
	for _, r := range rules {
		if r.when(v) {
			return r.label
		}
	}
	return ""
}

// allLabels returns the labels of every matching rule.
func allLabels(rules []labelRule, v bigfive.Vector) []string {
	out := []string{}
	for _, r := range rules {
		if r.when(v) {
			out = append(out, r.label)
		}
	}
	return out
}

// SelectArchetype applies the archetype rules in priority order.
func SelectArchetype(v bigfive.Vector) Archetype {
	for _, r := range archetypeRules {
		if r.when(v) {
			a := r.archetype
			a.Confidence = r.confidence(v)
			return a
		}
	}
	// unreachable: the last rule always matches
	return archetypeRules[len(archetypeRules)-1].archetype
}

// DominantTraits lists every dominant label that applies.
func DominantTraits(v bigfive.Vector) []string {
	return allLabels(dominantRules, v)
}

func WorkingStyleFor(v bigfive.Vector) WorkingStyle {
	return WorkingStyle{
		Structure:  workingStyleRules.structure.pick(v),
		Innovation: workingStyleRules.innovation.pick(v),
		Energy:     workingStyleRules.energy.pick(v),
	}
}

func CollaborationStyleFor(v bigfive.Vector) CollaborationStyle {
	return CollaborationStyle{
		Approach:      collaborationRules.approach.pick(v),
		Communication: collaborationRules.communication.pick(v),
		Reliability:   collaborationRules.reliability.pick(v),
	}
}

func CommunicationStyleFor(v bigfive.Vector) string {
	return firstLabel(communicationRules, v)
}

func StrengthsFor(v bigfive.Vector) []string {
	var out []string
	for _, r := range strengthRules {
		if r.when(v) {
			out = append(out, r.strengths...)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fallbackStrengths...)
	}
	return out
}

func IdealRoleFor(v bigfive.Vector) string {
	return firstLabel(idealRoleRules, v)
}
