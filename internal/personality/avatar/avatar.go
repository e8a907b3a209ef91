// internal/personality/avatar/avatar.go
package avatar

import (
	"fmt"
	"strings"

	"personality-workers/internal/personality/bigfive"
)

// DefaultName is used when the caller supplies no display name.
const DefaultName = "El"

type Archetype struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Emoji       string  `json:"emoji"`
	Confidence  float64 `json:"confidence"`
}

type WorkingStyle struct {
	Structure  string `json:"structure"`
	Innovation string `json:"innovation"`
	Energy     string `json:"energy"`
}

type CollaborationStyle struct {
	Approach      string `json:"approach"`
	Communication string `json:"communication"`
	Reliability   string `json:"reliability"`
}

// Profile is a synthesized avatar. Request metadata is optional and only
// set through the With* copies.
type Profile struct {
	Title              string             `json:"title"`
	Archetype          Archetype          `json:"archetype"`
	DominantTraits     []string           `json:"dominant_traits"`
	WorkingStyle       WorkingStyle       `json:"working_style"`
	CollaborationStyle CollaborationStyle `json:"collaboration_style"`
	Summary            string             `json:"summary"`
	Strengths          []string           `json:"strengths"`
	IdealRole          string             `json:"ideal_role"`
	CommunicationStyle string             `json:"communication_style"`
	PersonalityScores  bigfive.Vector     `json:"personality_scores"`

	UserName         string   `json:"user_name,omitempty"`
	QuestResponses   []string `json:"quest_responses,omitempty"`
	AnalysisType     string   `json:"analysis_type,omitempty"`
	GenerationMethod string   `json:"generation_method,omitempty"`
	Timestamp        string   `json:"timestamp,omitempty"`
}

// Synthesize derives an avatar from v. A vector with a NaN dimension cannot
// be classified and yields the default avatar.
func Synthesize(v bigfive.Vector, displayName string) *Profile {
	if v.HasNaN() {
		return Default()
	}
	if displayName == "" {
		displayName = DefaultName
	}

	archetype := SelectArchetype(v)
	dominant := DominantTraits(v)

	return &Profile{
		Title:              fmt.Sprintf("Your Personal El: %s", archetype.Name),
		Archetype:          archetype,
		DominantTraits:     dominant,
		WorkingStyle:       WorkingStyleFor(v),
		CollaborationStyle: CollaborationStyleFor(v),
		Summary:            summary(archetype, dominant, displayName),
		Strengths:          StrengthsFor(v),
		IdealRole:          IdealRoleFor(v),
		CommunicationStyle: CommunicationStyleFor(v),
		PersonalityScores:  v,
	}
}

func summary(a Archetype, dominant []string, name string) string {
	traits := "adaptable"
	if len(dominant) > 0 {
		traits = strings.ToLower(strings.Join(dominant, ", "))
	}
	return fmt.Sprintf("Meet %s - %s This %s personality brings a unique combination of skills and perspectives to any team.",
		name, a.Description, traits)
}

// Default is the neutral avatar used whenever synthesis cannot proceed.
func Default() *Profile {
	return &Profile{
		Title: "Your Personal El: The Adaptable",
		Archetype: Archetype{
			Name:        "The Adaptable",
			Description: "Balanced and flexible, ready to take on diverse challenges",
			Emoji:       "🌟",
			Confidence:  0.5,
		},
		DominantTraits: []string{"Balanced", "Adaptable"},
		WorkingStyle: WorkingStyle{
			Structure:  "Comfortable with both structured and flexible approaches",
			Innovation: "Open to both creative and practical solutions",
			Energy:     "Adapts well to different work environments",
		},
		CollaborationStyle: CollaborationStyle{
			Approach:      "Balances cooperation with independent contribution",
			Communication: "Adjusts communication style to team needs",
			Reliability:   "Maintains steady performance across different contexts",
		},
		Summary:            "A well-rounded individual ready to contribute effectively in various roles and team dynamics.",
		Strengths:          []string{"Adaptability", "Balance", "Versatility"},
		IdealRole:          "Multi-faceted contributor role with diverse responsibilities",
		CommunicationStyle: "Flexible and context-appropriate",
		PersonalityScores:  bigfive.Neutral(),
	}
}

// WithQuestContext returns a copy carrying quest metadata.
func (p *Profile) WithQuestContext(userName string, responses []string) *Profile {
	cp := p.clone()
	cp.UserName = userName
	cp.QuestResponses = copyStrings(responses)
	cp.AnalysisType = "comprehensive_quest"
	return cp
}

// WithGeneration returns a copy carrying generation metadata.
func (p *Profile) WithGeneration(method, timestamp string) *Profile {
	cp := p.clone()
	cp.GenerationMethod = method
	cp.Timestamp = timestamp
	return cp
}

func (p *Profile) clone() *Profile {
	cp := *p
	cp.DominantTraits = copyStrings(p.DominantTraits)
	cp.Strengths = copyStrings(p.Strengths)
	cp.QuestResponses = copyStrings(p.QuestResponses)
	return &cp
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// IsDefault reports whether p is the neutral default avatar.
func (p *Profile) IsDefault() bool {
	return p.Archetype.Name == "The Adaptable" && p.Archetype.Description == Default().Archetype.Description
}
