// Package profiles holds the descriptive content shown for each type code.
package profiles

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Sablekanishka11/mbti-mirror/internal/personality"
)

//go:embed profiles.yaml
var defaultYAML []byte

// ErrNotFound is returned by Lookup for a code with no entry.
var ErrNotFound = errors.New("profile not found")

// Exemplar is a well-known person associated with a type.
type Exemplar struct {
	Name        string `yaml:"name" json:"name"`
	Profession  string `yaml:"profession" json:"profession"`
	Explanation string `yaml:"explanation" json:"explanation"`
}

// Profile is the descriptive payload attached to a result.
type Profile struct {
	Code               personality.TypeCode `yaml:"code" json:"code"`
	Nickname           string               `yaml:"nickname" json:"nickname"`
	Overview           string               `yaml:"overview" json:"overview"`
	Strengths          []string             `yaml:"strengths" json:"strengths"`
	Weaknesses         []string             `yaml:"weaknesses" json:"weaknesses"`
	CommunicationStyle string               `yaml:"communication_style" json:"communication_style"`
	CareerInclination  string               `yaml:"career_inclination" json:"career_inclination"`
	RelationshipTraits string               `yaml:"relationship_traits" json:"relationship_traits"`
	Exemplars          []Exemplar           `yaml:"exemplars" json:"exemplars"`
}

// Validate checks that every field is populated.
func (p Profile) Validate() error {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("nickname", p.Nickname)
	check("overview", p.Overview)
	check("communication_style", p.CommunicationStyle)
	check("career_inclination", p.CareerInclination)
	check("relationship_traits", p.RelationshipTraits)
	if len(p.Strengths) == 0 {
		missing = append(missing, "strengths")
	}
	if len(p.Weaknesses) == 0 {
		missing = append(missing, "weaknesses")
	}
	if len(p.Exemplars) == 0 {
		missing = append(missing, "exemplars")
	}
	for i, e := range p.Exemplars {
		if e.Name == "" || e.Profession == "" {
			missing = append(missing, fmt.Sprintf("exemplars[%d]", i))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("profile %s: missing %s", p.Code, strings.Join(missing, ", "))
	}
	return nil
}

// clone returns a deep copy so callers cannot mutate catalog entries.
func (p Profile) clone() Profile {
	out := p
	out.Strengths = append([]string(nil), p.Strengths...)
	out.Weaknesses = append([]string(nil), p.Weaknesses...)
	out.Exemplars = append([]Exemplar(nil), p.Exemplars...)
	return out
}

// Catalog maps every type code to its profile.
type Catalog struct {
	byCode map[personality.TypeCode]Profile
}

type document struct {
	Profiles []Profile `yaml:"profiles"`
}

// Parse decodes a YAML catalog and verifies it covers all 16 codes with
// complete entries.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	c := &Catalog{byCode: make(map[personality.TypeCode]Profile, len(doc.Profiles))}
	for _, p := range doc.Profiles {
		code, err := personality.ParseTypeCode(string(p.Code))
		if err != nil {
			return nil, fmt.Errorf("profiles: %w", err)
		}
		p.Code = code
		if _, dup := c.byCode[code]; dup {
			return nil, fmt.Errorf("profiles: duplicate entry for %s", code)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profiles: %w", err)
		}
		c.byCode[code] = p
	}

	var absent []string
	for _, code := range personality.AllTypeCodes() {
		if _, ok := c.byCode[code]; !ok {
			absent = append(absent, string(code))
		}
	}
	if len(absent) > 0 {
		return nil, fmt.Errorf("profiles: no entry for %s", strings.Join(absent, ", "))
	}
	return c, nil
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultYAML)
}

var defaultCatalog = sync.OnceValues(Load)

// Default returns the embedded catalog, parsed once.
func Default() (*Catalog, error) {
	return defaultCatalog()
}

// Lookup returns the profile for code, or an error wrapping ErrNotFound.
func (c *Catalog) Lookup(code personality.TypeCode) (Profile, error) {
	p, ok := c.byCode[code]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrNotFound, string(code))
	}
	return p.clone(), nil
}

// All returns the profiles in AllTypeCodes order.
func (c *Catalog) All() []Profile {
	out := make([]Profile, 0, len(c.byCode))
	for _, code := range personality.AllTypeCodes() {
		if p, ok := c.byCode[code]; ok {
			out = append(out, p.clone())
		}
	}
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.byCode)
}
