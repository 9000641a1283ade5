package spatial

import (
	"fmt"

	"spatial-scene-gen/internal/mathutil"
)

// Frame holds the four scene-relative unit direction vectors in world space,
// all lying in the reference ground plane. front = -behind and left = -right
// by construction.
type Frame struct {
	Front  mathutil.Vec3
	Behind mathutil.Vec3
	Left   mathutil.Vec3
	Right  mathutil.Vec3
}

// camera-local axes in the host engine's convention: the camera looks along
// local -Z, so local (0,0,-1) points away from the viewer ("behind" in the
// scene) and local (-1,0,0) is the viewer's left.
var (
	camBackLocal = mathutil.Vec3{0, 0, -1}
	camLeftLocal = mathutil.Vec3{-1, 0, 0}
)

// SolveFrame derives the direction frame from the camera's world rotation and
// the ground plane's normal: rotate the camera-local backward/left axes into
// world space, project out the component along the plane normal, renormalize.
//
// Returns an error when the camera looks near-straight down the plane normal,
// which collapses the projected backward axis to zero length. Upstream camera
// sampling keeps tilt near-horizontal so this only fires on bad overrides.
func SolveFrame(camRot mathutil.Mat3, planeNormal mathutil.Vec3) (Frame, error) {
	behind, err := projectOntoPlane(camRot.MulVec3(camBackLocal), planeNormal)
	if err != nil {
		return Frame{}, fmt.Errorf("spatial: camera backward axis: %w", err)
	}
	left, err := projectOntoPlane(camRot.MulVec3(camLeftLocal), planeNormal)
	if err != nil {
		return Frame{}, fmt.Errorf("spatial: camera left axis: %w", err)
	}
	return Frame{
		Front:  behind.Scale(-1),
		Behind: behind,
		Left:   left,
		Right:  left.Scale(-1),
	}, nil
}

func projectOntoPlane(v, normal mathutil.Vec3) (mathutil.Vec3, error) {
	inPlane := v.Sub(v.Project(normal))
	if inPlane.Len() < 1e-9 {
		return mathutil.Vec3{}, fmt.Errorf("degenerate projection (vector parallel to plane normal)")
	}
	return inPlane.Normalize(), nil
}

// Vector returns the world-space unit vector for a direction.
func (f Frame) Vector(d Direction) mathutil.Vec3 {
	switch d {
	case Front:
		return f.Front
	case Behind:
		return f.Behind
	case Left:
		return f.Left
	default:
		return f.Right
	}
}
