package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatial-scene-gen/internal/camera"
	"spatial-scene-gen/internal/props"
	"spatial-scene-gen/internal/spatial"
)

func TestNewObjectRecordOrientation(t *testing.T) {
	withFacing := ObjectInstance{
		Spec:        props.ObjectSpec{Name: "chair"},
		Rotation:    1.5707963,
		Orientation: spatial.Left,
		Position:    [2]float64{-1.5, 0.5},
	}
	rec := NewObjectRecord(withFacing)
	require.NotNil(t, rec.Orientation)
	assert.Equal(t, "left", *rec.Orientation)
	assert.Equal(t, "chair", rec.Name)
	assert.Equal(t, [2]float64{-1.5, 0.5}, rec.Position)

	noFacing := ObjectInstance{Spec: props.ObjectSpec{Name: "ball"}}
	assert.Nil(t, NewObjectRecord(noFacing).Orientation)
}

func TestRecordRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene_000003.json")

	o := "front"
	rec := Record{
		ImageIndex:    3,
		ImageFilename: "img_000003.png",
		Camera:        camera.Config{Tilt: 90, Pan: 45, Height: 1, FocalLength: 50},
		GroundObject: ObjectRecord{
			Name:        "chair",
			Orientation: &o,
			Position:    [2]float64{0, -1.5},
		},
		FigureObject: ObjectRecord{
			Name:              "ball",
			Position:          [2]float64{0, 1.5},
			IntrinsicRelation: "facing_towards",
			IntrinsicCaption:  "the ball is in front of the chair",
		},
		TranslationalCaption: "the ball is behind the chair",
		ReflectionalCaption:  "the ball is on the back side of the chair",
	}
	require.NoError(t, rec.Write(path))

	got, err := ReadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)

	// Null orientation and omitted intrinsic fields for the plain object.
	assert.Contains(t, text, "\"orientation\": null")
	assert.Equal(t, 1, strings.Count(text, "intrinsic_relation"))

	// Stable key order.
	assert.Less(t, strings.Index(text, "image_index"), strings.Index(text, "image_filename"))
	assert.Less(t, strings.Index(text, "ground_object"), strings.Index(text, "figure_object"))
	assert.Less(t, strings.Index(text, "translational_relation_caption"),
		strings.Index(text, "reflectional_relation_caption"))
}

func TestReadRecordErrors(t *testing.T) {
	_, err := ReadRecord(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = ReadRecord(bad)
	assert.Error(t, err)
}
