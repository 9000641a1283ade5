package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// EulerXYZ builds the rotation matrix for XYZ Euler angles (radians):
// rotate about X first, then Y, then Z. Matches the host engine's
// rotation_euler convention for cameras and objects.
func EulerXYZ(rx, ry, rz float64) Mat3 {
	cy, sy := math.Cos(ry), math.Sin(ry)
	ryM := Mat3{
		cy, 0, sy,
		0, 1, 0,
		-sy, 0, cy,
	}
	return Mat3Mul(Mat3Mul(RotZ(rz), ryM), RotX(rx))
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
