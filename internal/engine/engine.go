// Package engine defines the contract the scene pipeline requires from a 3D
// engine. The pipeline never talks to a renderer directly; it drives a Scene
// handle, which an implementation backs with whatever state its host engine
// needs. internal/render ships a self-contained software implementation.
package engine

import (
	"errors"

	"spatial-scene-gen/internal/camera"
	"spatial-scene-gen/internal/mathutil"
)

// ErrTransient marks render failures that are expected to succeed on retry
// (engine hiccups, device resets). The orchestrator retries these according
// to its retry policy; all other errors abort the scene.
var ErrTransient = errors.New("transient render failure")

// IsTransient reports whether err is a retryable render failure.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// Engine creates scenes. Implementations must allow a fresh scene per
// candidate image; scenes are discarded after one render attempt.
type Engine interface {
	NewScene(width, height int) (Scene, error)
}

// Scene is one explicit scene value: objects, a camera, and render output.
// Implementations are not required to be safe for concurrent use; the
// pipeline drives one scene at a time.
type Scene interface {
	// LoadObject appends the named object's mesh from an asset file and
	// recenters its local origin to the bounding-box center of mass.
	LoadObject(name, assetPath string) error

	// PlaceObject sets an object's ground-plane position, z-rotation
	// (radians) and uniform scale, then drops it so its lowest point rests
	// on the ground plane.
	PlaceObject(name string, pos [2]float64, rotZ, scale float64) error

	// SetCamera positions the camera from a sampled configuration.
	SetCamera(cam camera.Config)

	// CameraRotation returns the camera's world rotation matrix, input to
	// the direction frame solver.
	CameraRotation() mathutil.Mat3

	// ProjectPoint maps a world-space point into normalized camera-view
	// coordinates: (0,0) bottom-left of the view, (1,1) top-right.
	ProjectPoint(p mathutil.Vec3) (u, v float64)

	// BoundingBox returns an object's 8 bounding-box corners in world space.
	BoundingBox(name string) ([8]mathutil.Vec3, error)

	// Render rasterizes the scene to an image file. May fail with an error
	// wrapping ErrTransient.
	Render(path string) error

	// RenderMask writes the segmentation mask for the current scene:
	// object coverage inverted, so objects are black on white.
	RenderMask(path string) error
}
