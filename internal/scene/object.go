package scene

import (
	"math"

	"spatial-scene-gen/internal/props"
	"spatial-scene-gen/internal/spatial"
)

// ObjectInstance is one per-scene realization of an object spec: a discrete
// z-rotation, the absolute orientation that rotation resolves to (empty when
// the object has no intrinsic facing), and the placement filled in later by
// the planner.
type ObjectInstance struct {
	Spec        props.ObjectSpec
	Rotation    float64 // radians, one of 0, π/2, π, 3π/2
	Orientation spatial.Direction
	Position    [2]float64
	Scale       float64
}

// ExpandOrientations produces the rotation variants to consider for a spec.
// An object with an intrinsic default facing gets exactly four variants at
// 0/90/180/270°, each with its facing advanced by the same number of 90°
// steps. An object with no facing gets a single unrotated variant.
func ExpandOrientations(spec props.ObjectSpec) []ObjectInstance {
	if spec.DefaultOrientation == "" {
		return []ObjectInstance{{Spec: spec, Rotation: 0, Orientation: ""}}
	}
	variants := make([]ObjectInstance, 0, 4)
	for i := 0; i < 4; i++ {
		variants = append(variants, ObjectInstance{
			Spec:        spec,
			Rotation:    float64(i) * math.Pi / 2,
			Orientation: spec.DefaultOrientation.Rotate(i),
		})
	}
	return variants
}

// InstanceAt builds a single instance with an explicit rotation given in
// degrees, resolving the orientation from the nearest 90° step. Used by
// single-scene mode where the caller fixes rotations directly.
func InstanceAt(spec props.ObjectSpec, rotationDeg float64) ObjectInstance {
	inst := ObjectInstance{
		Spec:     spec,
		Rotation: rotationDeg * math.Pi / 180,
	}
	if spec.DefaultOrientation != "" {
		steps := int(math.Round(rotationDeg / 90))
		inst.Orientation = spec.DefaultOrientation.Rotate(steps)
	}
	return inst
}
