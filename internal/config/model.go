package config

import (
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/forgego/internal/registry"
)

// Plan is the unified, format-agnostic list of constructions to run.
type Plan struct {
	Entries []*Entry
}

// Entry is one named construction: a strategy plus its parameters.
type Entry struct {
	Strategy string
	Name     string
	Params   registry.Params
	// Origin is where the entry was declared, for error messages.
	Origin string
}

func (e *Entry) String() string {
	return fmt.Sprintf("%s %q", e.Strategy, e.Name)
}

// Names lists entry names in plan order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.Name
	}
	return names
}

// Validate rejects plans that could not run as written: unnamed entries,
// reused names, and two entries sharing one snapshot location.
func (p *Plan) Validate() error {
	names := make(map[string]*Entry, len(p.Entries))
	locations := make(map[string]*Entry)
	for _, e := range p.Entries {
		if e.Strategy == "" || e.Name == "" {
			return fmt.Errorf("%s: entry needs both a strategy and a name", e.Origin)
		}
		if prev, ok := names[e.Name]; ok {
			return fmt.Errorf("%s: entry name %q already declared at %s", e.Origin, e.Name, prev.Origin)
		}
		names[e.Name] = e

		if e.Params.Location == "" {
			continue
		}
		loc := filepath.Clean(e.Params.Location)
		if prev, ok := locations[loc]; ok {
			return fmt.Errorf("%s: location %q already used by %s", e.Origin, e.Params.Location, prev)
		}
		locations[loc] = e
	}
	return nil
}
