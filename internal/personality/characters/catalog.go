// internal/personality/characters/catalog.go
package characters

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"personality-workers/internal/personality/bigfive"
)

var (
	ErrCatalogEmpty      = errors.New("CATALOG_EMPTY")
	ErrCharacterNotFound = errors.New("CHARACTER_NOT_FOUND")
)

//go:embed catalog.yaml
var defaultCatalog []byte

// LegacyScores are catalog scores on the 1-5 scale.
type LegacyScores struct {
	O int `yaml:"O" json:"O"`
	C int `yaml:"C" json:"C"`
	E int `yaml:"E" json:"E"`
	A int `yaml:"A" json:"A"`
	N int `yaml:"N" json:"N"`
}

// Vector converts the legacy scores onto [0,1].
func (s LegacyScores) Vector() bigfive.Vector {
	return bigfive.Vector{
		Openness:          bigfive.FromLegacy(s.O),
		Conscientiousness: bigfive.FromLegacy(s.C),
		Extraversion:      bigfive.FromLegacy(s.E),
		Agreeableness:     bigfive.FromLegacy(s.A),
		Neuroticism:       bigfive.FromLegacy(s.N),
	}
}

type Profile struct {
	Name            string       `yaml:"name" json:"name"`
	Scores          LegacyScores `yaml:"scores" json:"scores"`
	Names           []string     `yaml:"names" json:"names"`
	Title           string       `yaml:"title" json:"title"`
	Description     string       `yaml:"description" json:"description"`
	WorkingStyle    string       `yaml:"working_style" json:"working_style"`
	Communication   string       `yaml:"communication" json:"communication"`
	ProjectApproach string       `yaml:"project_approach" json:"project_approach"`
	Value           string       `yaml:"value" json:"value"`
	Strengths       []string     `yaml:"strengths" json:"strengths"`
	Keywords        []string     `yaml:"keywords" json:"keywords"`
}

// Catalog is the ordered character roster. It is read-only after load.
type Catalog struct {
	entries []Profile
	byName  map[string]int
}

type catalogFile struct {
	Characters []Profile `yaml:"characters"`
}

// LoadDefault parses the embedded roster.
func LoadDefault() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a roster from path, or the embedded roster when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML roster. Entries need a unique name and legacy scores
// in [1,5].
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Characters)
}

// New builds a catalog from entries in declaration order.
func New(entries []Profile) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrCatalogEmpty
	}
	c := &Catalog{
		entries: make([]Profile, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		if _, dup := c.byName[e.Name]; dup {
			return nil, fmt.Errorf("duplicate catalog entry %q", e.Name)
		}
		for _, s := range []int{e.Scores.O, e.Scores.C, e.Scores.E, e.Scores.A, e.Scores.N} {
			if s < 1 || s > 5 {
				return nil, fmt.Errorf("catalog entry %q: score %d outside 1-5", e.Name, s)
			}
		}
		c.entries[i] = e
		c.byName[e.Name] = i
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the roster in declaration order.
func (c *Catalog) Entries() []Profile {
	out := make([]Profile, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Get(name string) (Profile, error) {
	i, ok := c.byName[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrCharacterNotFound, name)
	}
	return c.entries[i], nil
}

func (c *Catalog) Names() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Name
	}
	return out
}

// ByKeyword returns entries tagged with keyword, case-insensitively.
func (c *Catalog) ByKeyword(keyword string) []Profile {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	var out []Profile
	for _, e := range c.entries {
		for _, k := range e.Keywords {
			if strings.ToLower(k) == keyword {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
