package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"spatial-scene-gen/internal/camera"
)

// ObjectRecord is the persisted summary of one placed object. Orientation is
// null for objects without an intrinsic facing; the intrinsic fields are only
// present when an orientation is.
type ObjectRecord struct {
	Name              string     `json:"name"`
	Orientation       *string    `json:"orientation"`
	Rotation          float64    `json:"rotation"`
	Position          [2]float64 `json:"position"`
	IntrinsicRelation string     `json:"intrinsic_relation,omitempty"`
	IntrinsicCaption  string     `json:"intrinsic_caption,omitempty"`
}

// Record is the structured description of one accepted rendered image,
// written as one JSON document per scene. Field order here is the stable key
// order of the output.
type Record struct {
	ImageIndex           int           `json:"image_index"`
	ImageFilename        string        `json:"image_filename"`
	Camera               camera.Config `json:"camera"`
	GroundObject         ObjectRecord  `json:"ground_object"`
	FigureObject         ObjectRecord  `json:"figure_object"`
	TranslationalCaption string        `json:"translational_relation_caption"`
	ReflectionalCaption  string        `json:"reflectional_relation_caption"`
}

// NewObjectRecord summarizes a placed instance.
func NewObjectRecord(inst ObjectInstance) ObjectRecord {
	rec := ObjectRecord{
		Name:     inst.Spec.Name,
		Rotation: inst.Rotation,
		Position: inst.Position,
	}
	if inst.Orientation != "" {
		o := string(inst.Orientation)
		rec.Orientation = &o
	}
	return rec
}

// Write persists the record with 2-space indentation.
func (r *Record) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("scene: marshal record %d: %w", r.ImageIndex, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scene: write record %s: %w", path, err)
	}
	return nil
}

// ReadRecord loads a persisted record, used by the inspection tool.
func ReadRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("scene: read record %s: %w", path, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("scene: parse record %s: %w", path, err)
	}
	return rec, nil
}
