package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatial-scene-gen/internal/props"
	"spatial-scene-gen/internal/spatial"
)

func TestExpandOrientationsWithFacing(t *testing.T) {
	spec := props.ObjectSpec{Name: "chair", DefaultOrientation: spatial.Behind}

	variants := ExpandOrientations(spec)
	require.Len(t, variants, 4)

	wantRotations := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	wantOrientations := []spatial.Direction{spatial.Behind, spatial.Left, spatial.Front, spatial.Right}
	for i, v := range variants {
		assert.InDelta(t, wantRotations[i], v.Rotation, 1e-12)
		assert.Equal(t, wantOrientations[i], v.Orientation)
	}
}

func TestExpandOrientationsCyclicFromFront(t *testing.T) {
	variants := ExpandOrientations(props.ObjectSpec{DefaultOrientation: spatial.Front})
	got := make([]spatial.Direction, len(variants))
	for i, v := range variants {
		got[i] = v.Orientation
	}
	assert.Equal(t, []spatial.Direction{spatial.Front, spatial.Right, spatial.Behind, spatial.Left}, got)
}

func TestExpandOrientationsNoFacing(t *testing.T) {
	variants := ExpandOrientations(props.ObjectSpec{Name: "ball"})
	require.Len(t, variants, 1)
	assert.Zero(t, variants[0].Rotation)
	assert.Equal(t, spatial.Direction(""), variants[0].Orientation)
}

func TestExpandOrientationsDeterministic(t *testing.T) {
	spec := props.ObjectSpec{DefaultOrientation: spatial.Left}
	assert.Equal(t, ExpandOrientations(spec), ExpandOrientations(spec))
}

func TestInstanceAt(t *testing.T) {
	spec := props.ObjectSpec{Name: "chair", DefaultOrientation: spatial.Front}

	inst := InstanceAt(spec, 180)
	assert.InDelta(t, math.Pi, inst.Rotation, 1e-12)
	assert.Equal(t, spatial.Behind, inst.Orientation)

	inst = InstanceAt(spec, -90)
	assert.Equal(t, spatial.Left, inst.Orientation)

	inst = InstanceAt(props.ObjectSpec{Name: "ball"}, 90)
	assert.Equal(t, spatial.Direction(""), inst.Orientation)
}
