package spatial

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatial-scene-gen/internal/mathutil"
)

var zUp = mathutil.Vec3{0, 0, 1}

func cameraRotation(tiltDeg, panDeg float64) mathutil.Mat3 {
	return mathutil.EulerXYZ(mathutil.Deg2Rad(tiltDeg), 0, mathutil.Deg2Rad(panDeg))
}

func TestSolveFrameInvariants(t *testing.T) {
	for _, tilt := range []float64{85, 90, 95} {
		for _, pan := range []float64{40, 45, 50} {
			t.Run(fmt.Sprintf("tilt%v_pan%v", tilt, pan), func(t *testing.T) {
				frame, err := SolveFrame(cameraRotation(tilt, pan), zUp)
				require.NoError(t, err)

				for _, v := range []mathutil.Vec3{frame.Front, frame.Behind, frame.Left, frame.Right} {
					assert.InDelta(t, 1, v.Len(), 1e-9, "direction vectors are unit length")
					assert.InDelta(t, 0, v.Dot(zUp), 1e-9, "direction vectors lie in the ground plane")
				}
				for i := 0; i < 3; i++ {
					assert.InDelta(t, -frame.Behind[i], frame.Front[i], 1e-9)
					assert.InDelta(t, -frame.Right[i], frame.Left[i], 1e-9)
				}
				assert.InDelta(t, 0, frame.Front.Dot(frame.Left), 1e-9, "front and left are orthogonal")
			})
		}
	}
}

func TestSolveFrameIndependentOfTilt(t *testing.T) {
	// Tilting the camera up or down must not change the in-plane directions.
	a, err := SolveFrame(cameraRotation(85, 45), zUp)
	require.NoError(t, err)
	b, err := SolveFrame(cameraRotation(95, 45), zUp)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, a.Front[i], b.Front[i], 1e-9)
		assert.InDelta(t, a.Left[i], b.Left[i], 1e-9)
	}
}

func TestSolveFrameDegenerate(t *testing.T) {
	// Tilt 0 points the camera straight down the plane normal.
	_, err := SolveFrame(cameraRotation(0, 45), zUp)
	assert.Error(t, err)
}

func TestFrameVector(t *testing.T) {
	frame, err := SolveFrame(cameraRotation(90, 45), zUp)
	require.NoError(t, err)
	assert.Equal(t, frame.Front, frame.Vector(Front))
	assert.Equal(t, frame.Behind, frame.Vector(Behind))
	assert.Equal(t, frame.Left, frame.Vector(Left))
	assert.Equal(t, frame.Right, frame.Vector(Right))
}
