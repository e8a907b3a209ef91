// internal/personality/chat/persona.go
package chat

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFallback is returned for characters without a canned line.
const DefaultFallback = "I'm experiencing some technical difficulties, but I'm still here to help!"

const closingInstruction = "\n\nIMPORTANT: Stay in character, be helpful, and keep responses conversational and engaging. Aim for 1-3 paragraphs unless more detail is specifically requested."

//go:embed personas.yaml
var personasYAML []byte

type Persona struct {
	Name               string `yaml:"name"`
	Role               string `yaml:"role"`
	Personality        string `yaml:"personality"`
	CommunicationStyle string `yaml:"communication_style"`
	Expertise          string `yaml:"expertise"`
	Quirks             string `yaml:"quirks"`
	Closing            string `yaml:"closing"`
	Fallback           string `yaml:"fallback"`
}

// CharacterContext carries optional notes appended to a persona prompt.
type CharacterContext struct {
	Personality string `json:"personality,omitempty"`
	Expertise   string `json:"expertise,omitempty"`
}

// Personas is an ordered persona set. The first entry stands in for
// unknown characters.
type Personas struct {
	list   []Persona
	byName map[string]Persona
}

// DefaultPersonas parses the embedded persona file.
func DefaultPersonas() (*Personas, error) {
	return ParsePersonas(personasYAML)
}

func ParsePersonas(data []byte) (*Personas, error) {
	var file struct {
		Personas []Persona `yaml:"personas"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse personas: %w", err)
	}
	if len(file.Personas) == 0 {
		return nil, fmt.Errorf("persona file has no entries")
	}

	p := &Personas{list: file.Personas, byName: make(map[string]Persona, len(file.Personas))}
	for _, persona := range file.Personas {
		if persona.Name == "" {
			return nil, fmt.Errorf("persona without a name")
		}
		p.byName[persona.Name] = persona
	}
	return p, nil
}

// Lookup returns the named persona, or the first one when the name is
// unknown.
func (p *Personas) Lookup(name string) (Persona, bool) {
	if persona, ok := p.byName[name]; ok {
		return persona, true
	}
	return p.list[0], false
}

// Fallback is the canned line used when the gateway cannot answer.
func (p *Personas) Fallback(name string) string {
	if persona, ok := p.byName[name]; ok && persona.Fallback != "" {
		return persona.Fallback
	}
	return DefaultFallback
}

// Prompt builds the system prompt for name with optional context notes.
func (p *Personas) Prompt(name string, cc CharacterContext) string {
	persona, _ := p.Lookup(name)

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, %s.\n\n", persona.Name, persona.Role)
	fmt.Fprintf(&b, "PERSONALITY: %s\n", persona.Personality)
	fmt.Fprintf(&b, "COMMUNICATION STYLE: %s\n", persona.CommunicationStyle)
	fmt.Fprintf(&b, "EXPERTISE: %s\n", persona.Expertise)
	fmt.Fprintf(&b, "QUIRKS: %s\n\n", persona.Quirks)
	b.WriteString(persona.Closing)

	var notes []string
	if cc.Personality != "" {
		notes = append(notes, "Additional personality notes: "+cc.Personality)
	}
	if cc.Expertise != "" {
		notes = append(notes, "Expertise areas: "+cc.Expertise)
	}
	if len(notes) > 0 {
		b.WriteString("\n\nADDITIONAL CONTEXT:\n")
		b.WriteString(strings.Join(notes, "\n"))
	}

	b.WriteString(closingInstruction)
	return b.String()
}
