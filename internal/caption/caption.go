// Package caption turns a resolved spatial relation into natural-language
// caption strings via lookup tables. Pure functions of the table contents:
// no randomness, no side effects.
package caption

import (
	"encoding/json"
	"fmt"
	"os"

	"spatial-scene-gen/internal/spatial"
)

// Tables holds the caption lookup tables. Translation and Reflection map a
// direction to a two-slot template formatted with (figure, ground). Intrinsic
// maps an object's orientation and the other object's direction to a relation
// label; IntrinsicTemplates maps that label to a template formatted with
// (self, other).
type Tables struct {
	Translation        map[spatial.Direction]string                       `json:"3d_translation"`
	Reflection         map[spatial.Direction]string                       `json:"3d_reflection"`
	Intrinsic          map[spatial.Direction]map[spatial.Direction]string `json:"intrinsic_directions"`
	IntrinsicTemplates map[string]string                                  `json:"3d_intrinsic"`
}

// Default returns the built-in caption tables. The intrinsic relation table
// is derived from the cyclic direction order: an object facing o with the
// other object at direction d sees it rotated (d-o) quarter turns into its
// own frame.
func Default() Tables {
	t := Tables{
		Translation: map[spatial.Direction]string{
			spatial.Front:  "%s is in front of %s",
			spatial.Behind: "%s is behind %s",
			spatial.Left:   "%s is to the left of %s",
			spatial.Right:  "%s is to the right of %s",
		},
		Reflection: map[spatial.Direction]string{
			spatial.Front:  "%s is on the front side of %s",
			spatial.Behind: "%s is on the back side of %s",
			spatial.Left:   "%s is on the left side of %s",
			spatial.Right:  "%s is on the right side of %s",
		},
		Intrinsic: make(map[spatial.Direction]map[spatial.Direction]string),
		IntrinsicTemplates: map[string]string{
			"facing_towards":  "%s is facing towards %s",
			"facing_away":     "%s is facing away from %s",
			"right_of_itself": "%s has %s on its right side",
			"left_of_itself":  "%s has %s on its left side",
		},
	}
	labels := []string{"facing_towards", "right_of_itself", "facing_away", "left_of_itself"}
	for _, o := range spatial.Directions {
		row := make(map[spatial.Direction]string, len(spatial.Directions))
		for _, d := range spatial.Directions {
			steps := ((d.Index()-o.Index())%4 + 4) % 4
			row[d] = labels[steps]
		}
		t.Intrinsic[o] = row
	}
	return t
}

// Load reads caption tables from a JSON file, for datasets that override the
// built-in phrasing.
func Load(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("caption: read %s: %w", path, err)
	}
	var t Tables
	if err := json.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("caption: parse %s: %w", path, err)
	}
	for _, d := range spatial.Directions {
		if t.Translation[d] == "" || t.Reflection[d] == "" {
			return Tables{}, fmt.Errorf("caption: %s: missing template for direction %q", path, d)
		}
	}
	return t, nil
}

// Translational formats the translational caption for the figure object being
// at direction d from the ground object.
func (t Tables) Translational(d spatial.Direction, figure, ground string) string {
	return fmt.Sprintf(t.Translation[d], figure, ground)
}

// Reflectional formats the reflectional phrasing of the same relation.
func (t Tables) Reflectional(d spatial.Direction, figure, ground string) string {
	return fmt.Sprintf(t.Reflection[d], figure, ground)
}

// IntrinsicFor resolves the intrinsic relation of an oriented object toward
// the other object at direction d, returning the relation label and the
// formatted caption. ok is false when the object has no orientation or the
// tables have no entry.
func (t Tables) IntrinsicFor(orientation, d spatial.Direction, self, other string) (label, text string, ok bool) {
	if orientation == "" {
		return "", "", false
	}
	row, ok := t.Intrinsic[orientation]
	if !ok {
		return "", "", false
	}
	label, ok = row[d]
	if !ok {
		return "", "", false
	}
	tmpl, ok := t.IntrinsicTemplates[label]
	if !ok {
		return "", "", false
	}
	return label, fmt.Sprintf(tmpl, self, other), true
}
