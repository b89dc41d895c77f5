// Package sections maps section header wording onto canonical section keys
// for each application type.
package sections

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/charterreview/internal/textnorm"
	"gopkg.in/yaml.v3"
)

// AppType selects a section-list profile.
type AppType string

const (
	Standard       AppType = "standard"
	Virtual        AppType = "virtual"
	HighPerforming AppType = "high-performing"
	// Auto detects the type from the first document.
	Auto AppType = "auto"
)

// ParseAppType accepts the profile names, their menu numbers, and a few spellings.
func ParseAppType(s string) (AppType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "1", "":
		return Standard, nil
	case "virtual", "2":
		return Virtual, nil
	case "high-performing", "high_performing", "highperforming", "replication", "3":
		return HighPerforming, nil
	case "auto":
		return Auto, nil
	}
	return "", fmt.Errorf("unknown application type %q", s)
}

// DetectApplicationType guesses the profile from document text.
func DetectApplicationType(text string) AppType {
	lower := strings.ToLower(textnorm.Collapse(text))
	switch {
	case strings.Contains(lower, "virtual application"):
		return Virtual
	case strings.Contains(lower, "high performing") && strings.Contains(lower, "replication"):
		return HighPerforming
	}
	return Standard
}

// KeyKind tells canonical sections from ad hoc ones.
type KeyKind int

const (
	Canonical KeyKind = iota
	AdHoc
	General
)

// GeneralTitle names the fallback section for unplaceable comments.
const GeneralTitle = "General Comments"

// Key identifies one section of a compilation. Canonical keys carry their
// 1-based position in the profile.
type Key struct {
	ID       string
	Title    string
	Kind     KeyKind
	Position int
}

// GeneralKey returns the fallback key.
func GeneralKey() Key {
	return Key{ID: "general", Title: GeneralTitle, Kind: General}
}

// AdHocKey returns a key for a section outside the profile, such as an addendum.
func AdHocKey(name string) Key {
	name = textnorm.Collapse(name)
	return Key{ID: "adhoc:" + strings.ToLower(name), Title: name, Kind: AdHoc}
}

// Definition is one canonical section and its header variants.
type Definition struct {
	ID      string   `yaml:"id"`
	Short   string   `yaml:"short"`
	Aliases []string `yaml:"aliases"`
}

// Title is the most canonical alias.
func (d Definition) Title() string {
	if len(d.Aliases) == 0 {
		return d.Short
	}
	return d.Aliases[0]
}

// Profile is the ordered section list for one application type.
type Profile struct {
	Type     AppType
	Name     string
	Sections []Definition

	exact map[string]int
}

// NewProfile validates definitions and indexes their aliases.
func NewProfile(t AppType, name string, defs []Definition) (*Profile, error) {
	p := &Profile{Type: t, Name: name, Sections: defs, exact: make(map[string]int)}
	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("profile %s: section %d has no id", t, i+1)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("profile %s: duplicate section id %q", t, d.ID)
		}
		seen[d.ID] = true
		if len(d.Aliases) == 0 && d.Short == "" {
			return nil, fmt.Errorf("profile %s: section %q has no aliases", t, d.ID)
		}
		for _, a := range d.Aliases {
			norm := textnorm.Collapse(a)
			if _, dup := p.exact[norm]; !dup {
				p.exact[norm] = i
			}
		}
	}
	return p, nil
}

func mustProfile(t AppType, name string, defs []Definition) *Profile {
	p, err := NewProfile(t, name, defs)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of canonical sections.
func (p *Profile) Len() int {
	return len(p.Sections)
}

func (p *Profile) key(i int) Key {
	return Key{ID: p.Sections[i].ID, Title: p.Sections[i].Title(), Kind: Canonical, Position: i + 1}
}

// Keys returns every canonical key in profile order.
func (p *Profile) Keys() []Key {
	keys := make([]Key, len(p.Sections))
	for i := range p.Sections {
		keys[i] = p.key(i)
	}
	return keys
}

// ByID returns the canonical key with the given id.
func (p *Profile) ByID(id string) (Key, bool) {
	for i, d := range p.Sections {
		if d.ID == id {
			return p.key(i), true
		}
	}
	return Key{}, false
}

// Lookup matches a line exactly against the aliases, after whitespace is collapsed.
func (p *Profile) Lookup(line string) (Key, bool) {
	if i, ok := p.exact[textnorm.Collapse(line)]; ok {
		return p.key(i), true
	}
	return Key{}, false
}

// minReverseMatch is the shortest text that may match by being contained in an alias.
const minReverseMatch = 10

// Match finds the first section, in profile order, with an alias or short
// title that contains text or is contained in it, ignoring case. Aliases are
// tried in list order within a section.
func (p *Profile) Match(text string) (Key, bool) {
	folded := textnorm.Fold(text)
	if folded == "" {
		return Key{}, false
	}
	reverse := utf8.RuneCountInString(folded) > minReverseMatch
	for i, d := range p.Sections {
		candidates := d.Aliases
		if d.Short != "" {
			candidates = append(candidates[:len(candidates):len(candidates)], d.Short)
		}
		for _, c := range candidates {
			fc := textnorm.Fold(c)
			if fc == "" {
				continue
			}
			if strings.Contains(folded, fc) || (reverse && strings.Contains(fc, folded)) {
				return p.key(i), true
			}
		}
	}
	return Key{}, false
}

// Registry holds one profile per application type.
type Registry map[AppType]*Profile

var builtin = Registry{
	Standard:       mustProfile(Standard, "Standard Application", standardSections),
	Virtual:        mustProfile(Virtual, "Virtual Application", virtualSections),
	HighPerforming: mustProfile(HighPerforming, "High Performing System Replication", highPerformingSections),
}

// Builtin returns the compiled-in profiles.
func Builtin() Registry {
	r := make(Registry, len(builtin))
	for k, v := range builtin {
		r[k] = v
	}
	return r
}

// Get returns the profile for t.
func (r Registry) Get(t AppType) (*Profile, error) {
	p, ok := r[t]
	if !ok {
		return nil, fmt.Errorf("no section profile for application type %q", t)
	}
	return p, nil
}

type profileFile struct {
	Profiles map[string]struct {
		Name     string       `yaml:"name"`
		Sections []Definition `yaml:"sections"`
	} `yaml:"profiles"`
}

// LoadRegistry returns the built-in profiles with any profiles defined in the
// YAML file at path replacing them. An empty path returns the built-ins.
func LoadRegistry(path string) (Registry, error) {
	r := Builtin()
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	for name, def := range pf.Profiles {
		t, err := ParseAppType(name)
		if err != nil || t == Auto {
			return nil, fmt.Errorf("profiles %s: unknown application type %q", path, name)
		}
		if len(def.Sections) == 0 {
			return nil, fmt.Errorf("profiles %s: %s has no sections", path, name)
		}
		title := def.Name
		if title == "" {
			title = string(t)
		}
		p, err := NewProfile(t, title, def.Sections)
		if err != nil {
			return nil, err
		}
		r[t] = p
	}
	return r, nil
}
