// Package locations resolves free-text city names to the location
// identifiers the hotel search backend understands. The table is a finite,
// embedded allow-list: an unknown city is a user-facing error, never a
// silent fallback.
package locations

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/trip-planner/internal/domain"
)

//go:embed locations.yaml
var defaultTable []byte

// Location is one supported city.
type Location struct {
	Name    string   `yaml:"name"`
	ID      string   `yaml:"id"`
	Country string   `yaml:"country"`
	Aliases []string `yaml:"aliases"`
}

// Table maps normalized city names and aliases to locations.
type Table struct {
	byName    map[string]Location
	supported []string
}

// Parse builds a Table from YAML of the form {locations: [{name, id, ...}]}.
func Parse(data []byte) (*Table, error) {
	var doc struct {
		Locations []Location `yaml:"locations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("locations.Parse: %w", err)
	}

	t := &Table{byName: make(map[string]Location)}
	for _, loc := range doc.Locations {
		name := normalize(loc.Name)
		if name == "" || loc.ID == "" {
			return nil, fmt.Errorf("locations.Parse: entry %q needs a name and an id", loc.Name)
		}
		if _, dup := t.byName[name]; dup {
			return nil, fmt.Errorf("locations.Parse: duplicate city %q", name)
		}
		t.byName[name] = loc
		t.supported = append(t.supported, name)
		for _, alias := range loc.Aliases {
			t.byName[normalize(alias)] = loc
		}
	}
	sort.Strings(t.supported)
	return t, nil
}

// Default returns the embedded table. It panics if the embedded YAML is
// malformed, which the package tests rule out.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve looks up city. Matching ignores case, surrounding whitespace,
// repeated spaces, and a trailing ", Country" qualifier.
// Unknown cities yield a *domain.UnsupportedInputError listing Supported().
func (t *Table) Resolve(city string) (Location, error) {
	key := normalize(city)
	if i := strings.Index(key, ","); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	if loc, ok := t.byName[key]; ok {
		return loc, nil
	}
	return Location{}, &domain.UnsupportedInputError{
		Kind:      "location",
		Input:     city,
		Supported: t.Supported(),
	}
}

// Supported returns the canonical city names in alphabetical order.
func (t *Table) Supported() []string {
	out := make([]string, len(t.supported))
	copy(out, t.supported)
	return out
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
