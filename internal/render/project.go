package render

import "spatial-scene-gen/internal/mathutil"

// sensorWidth is the horizontal sensor size in millimeters, the host-engine
// default for a 35mm-style camera. Focal length is expressed against it.
const sensorWidth = 36.0

// worldToCamera moves a world-space point into camera space. The camera
// looks along local -Z.
func (s *Scene) worldToCamera(p mathutil.Vec3) mathutil.Vec3 {
	return s.camRot.Transpose().MulVec3(p.Sub(s.camPos))
}

// ProjectPoint maps a world-space point into normalized camera-view
// coordinates: (0,0) is the bottom-left of the view, (1,1) the top-right,
// (0.5,0.5) the view center. Points behind the camera produce out-of-view
// coordinates rather than an error, mirroring the host engine primitive.
func (s *Scene) ProjectPoint(p mathutil.Vec3) (u, v float64) {
	view := s.worldToCamera(p)
	depth := -view[2]
	if depth < 1e-9 {
		depth = 1e-9
	}
	// Horizontal-fit sensor: vertical extent scales with the aspect ratio.
	fx := s.cam.FocalLength / sensorWidth
	fy := fx * float64(s.width) / float64(s.height)
	u = 0.5 + view[0]/depth*fx
	v = 0.5 + view[1]/depth*fy
	return u, v
}
