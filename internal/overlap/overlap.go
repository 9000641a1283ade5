// Package overlap decides whether a candidate scene is unusable because one
// object hides or touches the other in image space. The rule is a dataset
// quality filter, not plain geometry: side-by-side objects may not share any
// pixels, and for front/behind scenes a mostly-hidden object only rejects the
// scene when the direction label says the smaller object is the nearer one.
package overlap

import (
	"math"

	"github.com/paulmach/orb"

	"spatial-scene-gen/internal/mathutil"
	"spatial-scene-gen/internal/spatial"
)

// Projection is the pixel-space axis-aligned rectangle covering an object's
// projected 3D bounding box, with its clamped pixel area. Transient: used
// only while validating one scene.
type Projection struct {
	Bound orb.Bound
	Area  float64
}

// ProjectBox runs all 8 world-space bounding-box corners through the camera
// projection primitive, accumulates their normalized-view bound, and converts
// it to pixel units for an image of the given dimensions.
func ProjectBox(corners [8]mathutil.Vec3, project func(mathutil.Vec3) (u, v float64), width, height int) Projection {
	var b orb.Bound
	for i, c := range corners {
		u, v := project(c)
		pt := orb.Point{u * float64(width), v * float64(height)}
		if i == 0 {
			b = orb.Bound{Min: pt, Max: pt}
		} else {
			b = b.Extend(pt)
		}
	}
	w := math.Max(0, b.Max[0]-b.Min[0])
	h := math.Max(0, b.Max[1]-b.Min[1])
	return Projection{Bound: b, Area: w * h}
}

// Reject reports whether the scene must be discarded given the projections of
// the ground and figure objects and the labeled direction of the figure
// relative to the ground.
//
// Side-by-side scenes (left/right) reject on any positive intersection area.
// Front/behind scenes reject when the intersection covers at least 75% of the
// smaller object's area and that smaller object is the one the direction
// label places nearer the camera: a smaller ground object rejects only
// "front" scenes, a smaller-or-equal figure object only "behind" scenes.
func Reject(ground, figure Projection, dir spatial.Direction) bool {
	inter := intersectionArea(ground.Bound, figure.Bound)
	if dir == spatial.Left || dir == spatial.Right {
		return inter > 0
	}
	if inter >= 0.75*math.Min(ground.Area, figure.Area) {
		return (ground.Area < figure.Area && dir == spatial.Front) ||
			(ground.Area >= figure.Area && dir == spatial.Behind)
	}
	return false
}

func intersectionArea(a, b orb.Bound) float64 {
	w := math.Max(0, math.Min(a.Max[0], b.Max[0])-math.Max(a.Min[0], b.Min[0]))
	h := math.Max(0, math.Min(a.Max[1], b.Max[1])-math.Max(a.Min[1], b.Min[1]))
	return w * h
}
