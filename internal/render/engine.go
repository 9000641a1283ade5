// Package render is a self-contained software implementation of the 3D
// engine contract: OBJ meshes, a pinhole camera, z-buffered flat-shaded
// rasterization, PNG or WebP output. It exists so the pipeline can run and
// be tested without a host 3D engine.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"

	"spatial-scene-gen/internal/camera"
	"spatial-scene-gen/internal/engine"
	"spatial-scene-gen/internal/mathutil"
	"spatial-scene-gen/internal/objfile"
	"spatial-scene-gen/internal/raster"
	"spatial-scene-gen/internal/texture"
)

// Options configures the software engine.
type Options struct {
	// CameraX/CameraY fix the camera's ground-plane position; sampled
	// configurations only vary height, angles and focal length.
	CameraX float64
	CameraY float64
	// Supersample renders at an integer multiple of the target size and
	// downsamples for antialiasing.
	Supersample int
	// Format selects the output encoding: "png" or "webp".
	Format string
}

// Engine implements engine.Engine with the software rasterizer.
type Engine struct {
	opts  Options
	light raster.LightConfig
}

// New creates a software engine.
func New(opts Options) *Engine {
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	if opts.Format == "" {
		opts.Format = "png"
	}
	return &Engine{opts: opts, light: raster.DefaultLightConfig()}
}

// NewScene returns an empty scene with a default camera.
func (e *Engine) NewScene(width, height int) (engine.Scene, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: bad scene dimensions %dx%d", width, height)
	}
	return &Scene{
		eng:     e,
		width:   width,
		height:  height,
		objects: make(map[string]*sceneObject),
	}, nil
}

type sceneObject struct {
	mesh  objfile.Mesh // verts recentered on the local bbox center
	base  color.NRGBA
	world mathutil.Mat4
}

// Scene is one explicit scene value for the software engine.
type Scene struct {
	eng     *Engine
	width   int
	height  int
	cam     camera.Config
	camRot  mathutil.Mat3
	camPos  mathutil.Vec3
	order   []string
	objects map[string]*sceneObject
}

// LoadObject reads the asset mesh, recenters its local origin on the
// bounding-box center and picks up a base color from a sibling texture.
func (s *Scene) LoadObject(name, assetPath string) error {
	if _, ok := s.objects[name]; ok {
		return fmt.Errorf("render: object %q already in scene", name)
	}
	mesh, err := objfile.Load(assetPath)
	if err != nil {
		return fmt.Errorf("render: load object %q: %w", name, err)
	}
	center := mesh.Center()
	recentered := objfile.Mesh{
		Verts: make([]mathutil.Vec3, len(mesh.Verts)),
		Tris:  mesh.Tris,
	}
	for i, v := range mesh.Verts {
		recentered.Verts[i] = v.Sub(center)
	}
	s.objects[name] = &sceneObject{
		mesh:  recentered,
		base:  texture.BaseColor(assetPath),
		world: mathutil.Mat4Identity(),
	}
	s.order = append(s.order, name)
	return nil
}

// PlaceObject sets the object's transform and drops it onto the ground plane
// so its lowest point sits at z=0.
func (s *Scene) PlaceObject(name string, pos [2]float64, rotZ, scale float64) error {
	obj, ok := s.objects[name]
	if !ok {
		return fmt.Errorf("render: place unknown object %q", name)
	}
	rs := mathutil.Mat3Mul(mathutil.RotZ(rotZ), mathutil.Mat3Diag(scale, scale, scale))

	minZ := math.Inf(1)
	for _, v := range obj.mesh.Verts {
		z := rs.MulVec3(v)[2]
		if z < minZ {
			minZ = z
		}
	}
	obj.world = mathutil.FromMat3Translation(rs, mathutil.Vec3{pos[0], pos[1], -minZ})
	return nil
}

// SetCamera places the camera at the engine's fixed ground pivot with the
// configured height, tilt, pan and focal length.
func (s *Scene) SetCamera(cam camera.Config) {
	s.cam = cam
	s.camRot = mathutil.EulerXYZ(mathutil.Deg2Rad(cam.Tilt), 0, mathutil.Deg2Rad(cam.Pan))
	s.camPos = mathutil.Vec3{s.eng.opts.CameraX, s.eng.opts.CameraY, cam.Height}
}

// CameraRotation returns the camera's world rotation matrix.
func (s *Scene) CameraRotation() mathutil.Mat3 {
	return s.camRot
}

// BoundingBox returns the object's 8 bounding-box corners in world space.
func (s *Scene) BoundingBox(name string) ([8]mathutil.Vec3, error) {
	var corners [8]mathutil.Vec3
	obj, ok := s.objects[name]
	if !ok {
		return corners, fmt.Errorf("render: bounding box of unknown object %q", name)
	}
	min, max := obj.mesh.Bounds()
	i := 0
	for _, x := range [2]float64{min[0], max[0]} {
		for _, y := range [2]float64{min[1], max[1]} {
			for _, z := range [2]float64{min[2], max[2]} {
				corners[i] = obj.world.MulPoint(mathutil.Vec3{x, y, z})
				i++
			}
		}
	}
	return corners, nil
}

// Render rasterizes the scene over a neutral grey background.
func (s *Scene) Render(path string) error {
	img := s.rasterize()
	composited := compositeOver(img, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	return s.encode(composited, path)
}

// RenderMask writes the inverted object-coverage mask: objects black on
// white, matching the inpainting model's "keep black, repaint white" input.
func (s *Scene) RenderMask(path string) error {
	img := s.rasterize()
	b := img.Bounds()
	mask := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			v := 255 - img.Pix[i+3]
			o := mask.PixOffset(x, y)
			mask.Pix[o] = v
			mask.Pix[o+1] = v
			mask.Pix[o+2] = v
			mask.Pix[o+3] = 255
		}
	}
	return s.encode(mask, path)
}

// rasterize renders all objects into an NRGBA image with transparent
// background at the target size.
func (s *Scene) rasterize() *image.NRGBA {
	ss := s.eng.opts.Supersample
	w, h := s.width*ss, s.height*ss
	fb := raster.NewFrameBuffer(w, h)

	px := make([]float64, 0, 1024)
	py := make([]float64, 0, 1024)
	pz := make([]float64, 0, 1024)
	for _, name := range s.order {
		obj := s.objects[name]
		px, py, pz = px[:0], py[:0], pz[:0]
		for _, v := range obj.mesh.Verts {
			world := obj.world.MulPoint(v)
			u, vv := s.ProjectPoint(world)
			view := s.worldToCamera(world)
			px = append(px, u*float64(w))
			py = append(py, (1-vv)*float64(h))
			pz = append(pz, view[2])
		}
		for _, tri := range obj.mesh.Tris {
			raster.RasterizeTriangle(fb, px, py, pz, tri, obj.base, &s.eng.light)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, fb.Color)
	if ss > 1 {
		img = downsample(img, s.width, s.height)
	}
	return img
}

func (s *Scene) encode(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer f.Close()

	switch s.eng.opts.Format {
	case "webp":
		err = nativewebp.Encode(f, img, nil)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("render: encode %s: %w", path, err)
	}
	return nil
}

func compositeOver(img *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			a := float64(img.Pix[i+3]) / 255
			o := out.PixOffset(x, y)
			out.Pix[o] = blend(img.Pix[i], bg.R, a)
			out.Pix[o+1] = blend(img.Pix[i+1], bg.G, a)
			out.Pix[o+2] = blend(img.Pix[i+2], bg.B, a)
			out.Pix[o+3] = 255
		}
	}
	return out
}

func blend(fg, bg uint8, a float64) uint8 {
	return uint8(float64(fg)*a + float64(bg)*(1-a) + 0.5)
}
