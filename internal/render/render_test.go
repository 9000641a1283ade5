package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatial-scene-gen/internal/camera"
	"spatial-scene-gen/internal/mathutil"
)

// writeCube writes a 2x2x2 axis-aligned cube OBJ spanning [0,2]^3.
func writeCube(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cube.obj")
	body := `v 0 0 0
v 2 0 0
v 2 2 0
v 0 2 0
v 0 0 2
v 2 0 2
v 2 2 2
v 0 2 2
f 1 2 3 4
f 5 6 7 8
f 1 2 6 5
f 2 3 7 6
f 3 4 8 7
f 4 1 5 8
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// frontCamera returns a scene whose camera sits at (0,-5,1) looking straight
// along +Y at the origin.
func frontCamera(t *testing.T, width, height int) *Scene {
	t.Helper()
	e := New(Options{CameraX: 0, CameraY: -5, Supersample: 1})
	sc, err := e.NewScene(width, height)
	require.NoError(t, err)
	sc.SetCamera(camera.Config{Tilt: 90, Pan: 0, Height: 1, FocalLength: 50})
	return sc.(*Scene)
}

func TestProjectPoint(t *testing.T) {
	sc := frontCamera(t, 100, 100)

	// A point straight ahead of the lens lands at the view center.
	u, v := sc.ProjectPoint(mathutil.Vec3{0, 0, 1})
	assert.InDelta(t, 0.5, u, 1e-9)
	assert.InDelta(t, 0.5, v, 1e-9)

	// One unit to the right at depth 5 with a 50mm lens on a 36mm sensor.
	u, v = sc.ProjectPoint(mathutil.Vec3{1, 0, 1})
	assert.InDelta(t, 0.5+(1.0/5.0)*(50.0/36.0), u, 1e-9)
	assert.InDelta(t, 0.5, v, 1e-9)

	// One unit up moves v up by the same amount on a square image.
	u, v = sc.ProjectPoint(mathutil.Vec3{0, 0, 2})
	assert.InDelta(t, 0.5, u, 1e-9)
	assert.InDelta(t, 0.5+(1.0/5.0)*(50.0/36.0), v, 1e-9)
}

func TestCameraRotationMatchesConfig(t *testing.T) {
	sc := frontCamera(t, 64, 64)

	// Camera local -Z (the view direction) in world space is +Y at tilt 90,
	// pan 0.
	dir := sc.CameraRotation().MulVec3(mathutil.Vec3{0, 0, -1})
	assert.InDelta(t, 0, dir[0], 1e-9)
	assert.InDelta(t, 1, dir[1], 1e-9)
	assert.InDelta(t, 0, dir[2], 1e-9)
}

func TestPlaceObjectGroundAlignment(t *testing.T) {
	cube := writeCube(t)
	sc := frontCamera(t, 64, 64)
	require.NoError(t, sc.LoadObject("box", cube))

	require.NoError(t, sc.PlaceObject("box", [2]float64{0.5, -2}, 0, 1))
	corners, err := sc.BoundingBox("box")
	require.NoError(t, err)

	minZ, maxZ := corners[0][2], corners[0][2]
	sumX, sumY := 0.0, 0.0
	for _, c := range corners {
		minZ = minFloat(minZ, c[2])
		maxZ = maxFloat(maxZ, c[2])
		sumX += c[0]
		sumY += c[1]
	}
	assert.InDelta(t, 0, minZ, 1e-9)
	assert.InDelta(t, 2, maxZ, 1e-9)
	assert.InDelta(t, 0.5, sumX/8, 1e-9, "box stays centered on the placement position")
	assert.InDelta(t, -2, sumY/8, 1e-9)

	// Doubling the scale doubles the height but keeps the base on the ground.
	require.NoError(t, sc.PlaceObject("box", [2]float64{0.5, -2}, 0, 2))
	corners, err = sc.BoundingBox("box")
	require.NoError(t, err)
	minZ, maxZ = corners[0][2], corners[0][2]
	for _, c := range corners {
		minZ = minFloat(minZ, c[2])
		maxZ = maxFloat(maxZ, c[2])
	}
	assert.InDelta(t, 0, minZ, 1e-9)
	assert.InDelta(t, 4, maxZ, 1e-9)
}

func TestSceneErrors(t *testing.T) {
	cube := writeCube(t)
	sc := frontCamera(t, 64, 64)
	require.NoError(t, sc.LoadObject("box", cube))

	assert.Error(t, sc.LoadObject("box", cube))
	assert.Error(t, sc.PlaceObject("ghost", [2]float64{0, 0}, 0, 1))
	_, err := sc.BoundingBox("ghost")
	assert.Error(t, err)

	e := New(Options{})
	_, err = e.NewScene(0, 64)
	assert.Error(t, err)
}

func TestRenderAndMask(t *testing.T) {
	cube := writeCube(t)
	sc := frontCamera(t, 64, 64)
	require.NoError(t, sc.LoadObject("box", cube))
	require.NoError(t, sc.PlaceObject("box", [2]float64{0, 0}, 0, 1))

	dir := t.TempDir()
	imgPath := filepath.Join(dir, "scene.png")
	maskPath := filepath.Join(dir, "mask.png")
	require.NoError(t, sc.Render(imgPath))
	require.NoError(t, sc.RenderMask(maskPath))

	f, err := os.Open(imgPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())

	// The cube occupies the view center; the corners show the grey backdrop.
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
	cr, _, _, _ := img.At(32, 32).RGBA()
	assert.NotEqual(t, r, cr)

	mf, err := os.Open(maskPath)
	require.NoError(t, err)
	defer mf.Close()
	mask, err := png.Decode(mf)
	require.NoError(t, err)
	mr, _, _, _ := mask.At(32, 32).RGBA()
	assert.Zero(t, mr, "covered pixels are black")
	er, _, _, _ := mask.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), er, "empty pixels are white")
}

func TestDownsample(t *testing.T) {
	cube := writeCube(t)
	e := New(Options{CameraX: 0, CameraY: -5, Supersample: 2})
	s, err := e.NewScene(32, 32)
	require.NoError(t, err)
	sc := s.(*Scene)
	sc.SetCamera(camera.Config{Tilt: 90, Pan: 0, Height: 1, FocalLength: 50})
	require.NoError(t, sc.LoadObject("box", cube))
	require.NoError(t, sc.PlaceObject("box", [2]float64{0, 0}, 0, 1))

	path := filepath.Join(t.TempDir(), "scene.png")
	require.NoError(t, sc.Render(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
