package spatial

import (
	"fmt"

	"spatial-scene-gen/internal/mathutil"
)

// Place converts a scene-relative direction vector and a center-to-center
// distance into ground-plane positions for the two objects, symmetric about
// the origin: the ground object sits at -dir·distance/2, the figure object at
// +dir·distance/2. Only the in-plane x/y components of dir are used.
func Place(dir mathutil.Vec3, distance float64) (ground, figure [2]float64, err error) {
	n := mathutil.Vec3{dir[0], dir[1], 0}
	if n.Len() < 1e-9 {
		return ground, figure, fmt.Errorf("spatial: direction vector has no in-plane component")
	}
	n = n.Normalize()
	half := distance / 2
	ground = [2]float64{-n[0] * half, -n[1] * half}
	figure = [2]float64{n[0] * half, n[1] * half}
	return ground, figure, nil
}
