package props

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"spatial-scene-gen/internal/spatial"
)

// Group is an object's coarse real-world size class, used to pick a pair
// scale factor so differently sized objects still read at a similar scale.
type Group string

const (
	Small  Group = "small"
	Medium Group = "medium"
	Large  Group = "large"
)

// ObjectSpec is the immutable per-object template from the properties table.
type ObjectSpec struct {
	Name               string            `json:"-"`
	File               string            `json:"file"`
	Group              Group             `json:"group"`
	Scale              float64           `json:"scale"`
	DefaultOrientation spatial.Direction `json:"default_orientation"`
}

// Table maps object name to its spec.
type Table map[string]ObjectSpec

// Load reads and validates the properties JSON file. Malformed entries are
// configuration errors and abort the run before any rendering starts.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("props: read %s: %w", path, err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("props: parse %s: %w", path, err)
	}

	for name, spec := range table {
		spec.Name = name
		if spec.Scale == 0 {
			spec.Scale = 1
		}
		table[name] = spec
		if err := spec.validate(); err != nil {
			return nil, fmt.Errorf("props: object %q: %w", name, err)
		}
	}
	return table, nil
}

func (s ObjectSpec) validate() error {
	if s.File == "" {
		return fmt.Errorf("missing asset file")
	}
	switch s.Group {
	case Small, Medium, Large:
	default:
		return fmt.Errorf("unknown size group %q", s.Group)
	}
	if s.DefaultOrientation != "" {
		if _, err := spatial.Parse(string(s.DefaultOrientation)); err != nil {
			return fmt.Errorf("bad default orientation: %w", err)
		}
	}
	if s.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", s.Scale)
	}
	return nil
}

// Names returns all object names in sorted order, the canonical enumeration
// order when no explicit object list is given.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the spec for a named object.
func (t Table) Lookup(name string) (ObjectSpec, error) {
	spec, ok := t[name]
	if !ok {
		return ObjectSpec{}, fmt.Errorf("props: unknown object %q", name)
	}
	return spec, nil
}

// PairScaleFactor returns the uniform scale-up applied to both objects of a
// pair so small items remain visible next to each other. Any pair involving
// a large object keeps its natural scale.
func PairScaleFactor(a, b Group) float64 {
	switch {
	case a == Small && b == Small:
		return 3
	case a == Small && b == Medium, a == Medium && b == Small:
		return 1.8
	case a == Medium && b == Medium:
		return 1.3
	default:
		return 1
	}
}
