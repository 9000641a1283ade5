package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatial-scene-gen/internal/camera"
	"spatial-scene-gen/internal/props"
	"spatial-scene-gen/internal/spatial"
)

func testTable() props.Table {
	return props.Table{
		"A": {Name: "A", File: "a.obj", Group: props.Small, Scale: 1, DefaultOrientation: spatial.Front},
		"B": {Name: "B", File: "b.obj", Group: props.Small, Scale: 1},
		"C": {Name: "C", File: "c.obj", Group: props.Medium, Scale: 1},
	}
}

func TestEnumeratePairsAndCap(t *testing.T) {
	cams := []camera.Config{{Tilt: 90, Pan: 45, Height: 1, FocalLength: 50}}

	sets, err := Enumerate([]string{"A", "B", "C"}, testTable(), cams, 1)
	require.NoError(t, err)

	// Unordered pairs by list order: (A,B), (A,C), (B,C)
	require.Len(t, sets, 3)
	assert.Equal(t, "A", sets[0].GroundName)
	assert.Equal(t, "B", sets[0].FigureName)
	assert.Equal(t, "A", sets[1].GroundName)
	assert.Equal(t, "C", sets[1].FigureName)
	assert.Equal(t, "B", sets[2].GroundName)
	assert.Equal(t, "C", sets[2].FigureName)

	// cap=1: exactly 1 candidate per direction per pair before camera
	// expansion, 1 camera => 4 plans per pair.
	for _, set := range sets {
		assert.Len(t, set.Plans, 4)
	}
}

func TestEnumerateOrdering(t *testing.T) {
	cams := []camera.Config{
		{Tilt: 85, Pan: 40, Height: 0.5, FocalLength: 50},
		{Tilt: 95, Pan: 50, Height: 1.5, FocalLength: 70},
	}

	sets, err := Enumerate([]string{"A", "B"}, testTable(), cams, 2)
	require.NoError(t, err)
	require.Len(t, sets, 1)

	// A has 4 orientation variants, B has 1: per direction 4 candidates,
	// capped at 2, crossed with 2 cameras = 4 plans per direction.
	plans := sets[0].Plans
	require.Len(t, plans, 16)

	// Direction-major, then candidate, then camera.
	wantDirs := []spatial.Direction{
		spatial.Front, spatial.Front, spatial.Front, spatial.Front,
		spatial.Right, spatial.Right, spatial.Right, spatial.Right,
		spatial.Behind, spatial.Behind, spatial.Behind, spatial.Behind,
		spatial.Left, spatial.Left, spatial.Left, spatial.Left,
	}
	for i, p := range plans {
		assert.Equal(t, wantDirs[i], p.Direction, "plan %d", i)
	}

	// Within one direction: candidate 0 with both cameras, then candidate 1.
	assert.Equal(t, cams[0], plans[0].Camera)
	assert.Equal(t, cams[1], plans[1].Camera)
	assert.Zero(t, plans[0].Ground.Rotation)
	assert.Zero(t, plans[1].Ground.Rotation)
	assert.NotZero(t, plans[2].Ground.Rotation, "second retained candidate rotates the ground object")
}

func TestEnumerateDeterministic(t *testing.T) {
	cams := camera.Sample(3)
	a, err := Enumerate([]string{"A", "B", "C"}, testTable(), cams, 2)
	require.NoError(t, err)
	b, err := Enumerate([]string{"A", "B", "C"}, testTable(), cams, 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEnumerateUnknownObject(t *testing.T) {
	_, err := Enumerate([]string{"A", "Z"}, testTable(), camera.Sample(1), 1)
	assert.Error(t, err)
}
