package parallax

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

// approxVec3 compares component-wise with an absolute tolerance, so values
// expected to be exactly zero tolerate rounding noise.
func approxVec3(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > float64(eps) {
			return false
		}
	}
	return true
}

func approxMat4(a, b mgl32.Mat4, eps float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > float64(eps) {
			return false
		}
	}
	return true
}

func TestCameraDefaults(t *testing.T) {
	cam := NewOrbitCamera()
	if cam.RotationX != 0 || cam.RotationY != 0 {
		t.Errorf("rotation = (%v, %v), want (0, 0)", cam.RotationX, cam.RotationY)
	}
	if cam.Eye != DefaultEye || cam.Target != DefaultTarget || cam.Up != DefaultUp {
		t.Errorf("look-at = %v %v %v", cam.Eye, cam.Target, cam.Up)
	}
	if cam.ResetDuration != 0 {
		t.Errorf("ResetDuration = %v, want 0", cam.ResetDuration)
	}
}

func TestCameraDragAccumulatesUnbounded(t *testing.T) {
	cam := NewOrbitCamera()
	for range 100 {
		cam.Drag(10, -5)
	}
	if cam.RotationX != 1000 {
		t.Errorf("RotationX = %v, want 1000", cam.RotationX)
	}
	if cam.RotationY != -500 {
		t.Errorf("RotationY = %v, want -500", cam.RotationY)
	}
}

func TestCameraInstantReset(t *testing.T) {
	cam := NewOrbitCamera()
	cam.Drag(42, 7)
	cam.Reset()
	if cam.RotationX != 0 || cam.RotationY != 0 {
		t.Errorf("rotation after reset = (%v, %v)", cam.RotationX, cam.RotationY)
	}
	if cam.Resetting() {
		t.Error("instant reset should not animate")
	}
}

func TestCameraAnimatedReset(t *testing.T) {
	cam := NewOrbitCamera()
	cam.ResetDuration = 1
	cam.ResetEase = ease.Linear
	cam.Drag(100, -40)
	cam.Reset()
	if !cam.Resetting() {
		t.Fatal("Resetting = false after Reset with duration")
	}

	cam.Update(0.5)
	if !approxEqual(cam.RotationX, 50, 0.01) || !approxEqual(cam.RotationY, -20, 0.01) {
		t.Errorf("halfway rotation = (%v, %v), want (50, -20)", cam.RotationX, cam.RotationY)
	}

	cam.Update(0.6)
	if cam.Resetting() {
		t.Error("Resetting = true after duration elapsed")
	}
	if cam.RotationX != 0 || cam.RotationY != 0 {
		t.Errorf("final rotation = (%v, %v), want (0, 0)", cam.RotationX, cam.RotationY)
	}
}

func TestCameraDragCancelsReset(t *testing.T) {
	cam := NewOrbitCamera()
	cam.ResetDuration = 1
	cam.Drag(100, 0)
	cam.Reset()
	cam.Update(0.25)
	x := cam.RotationX
	cam.Drag(1, 0)
	if cam.Resetting() {
		t.Error("drag did not cancel the reset")
	}
	cam.Update(0.25)
	if cam.RotationX != x+1 {
		t.Errorf("RotationX = %v, want %v", cam.RotationX, x+1)
	}
}

func TestCameraViewMatrix(t *testing.T) {
	cam := NewOrbitCamera()
	want := mgl32.LookAtV(DefaultEye, DefaultTarget, DefaultUp)
	if got := cam.ViewMatrix(); !approxMat4(got, want, 1e-6) {
		t.Errorf("ViewMatrix at rest = %v, want LookAt %v", got, want)
	}

	// A full turn around Y is the identity rotation.
	cam.Drag(360, 0)
	if got := cam.ViewMatrix(); !approxMat4(got, want, 1e-4) {
		t.Errorf("ViewMatrix after 360° = %v, want %v", got, want)
	}

	// 90° around Y maps the world X axis onto -Z before the look-at.
	cam.Reset()
	cam.Drag(90, 0)
	rot := mgl32.LookAtV(DefaultEye, DefaultTarget, DefaultUp).Inv().Mul4(cam.ViewMatrix())
	x := rot.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
	if !approxVec3(x, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("rotated X axis = %v, want (0,0,-1)", x)
	}
}
