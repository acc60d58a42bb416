package parallax

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default look-at parameters of the orbit camera.
var (
	DefaultEye    = mgl32.Vec3{0, 4, -4}
	DefaultTarget = mgl32.Vec3{0, 0.1, 0}
	DefaultUp     = mgl32.Vec3{0, 1, 0}
)

// resetAnim holds active reset tweens for both rotation angles.
type resetAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// OrbitCamera is a fixed look-at camera rotated by two accumulated angles.
//
// RotationX turns around the Y axis and RotationY around the X axis. Both are
// in degrees and accumulate without bounds, so the camera can spin any
// number of turns.
type OrbitCamera struct {
	RotationX float64
	RotationY float64

	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	// ResetDuration animates Reset over this many seconds. Zero resets
	// immediately.
	ResetDuration float32
	// ResetEase is the easing used by animated resets.
	ResetEase ease.TweenFunc

	reset *resetAnim
}

// NewOrbitCamera creates a camera with the default look-at parameters.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Eye:       DefaultEye,
		Target:    DefaultTarget,
		Up:        DefaultUp,
		ResetEase: ease.OutQuad,
	}
}

// Drag adds a pointer movement to the rotation angles. A running reset
// animation is cancelled.
func (c *OrbitCamera) Drag(dx, dy float64) {
	c.reset = nil
	c.RotationX += dx
	c.RotationY += dy
}

// Reset returns both angles to zero, immediately or over ResetDuration.
func (c *OrbitCamera) Reset() {
	if c.ResetDuration <= 0 {
		c.reset = nil
		c.RotationX = 0
		c.RotationY = 0
		return
	}
	fn := c.ResetEase
	if fn == nil {
		fn = ease.Linear
	}
	c.reset = &resetAnim{
		tweenX: gween.New(float32(c.RotationX), 0, c.ResetDuration, fn),
		tweenY: gween.New(float32(c.RotationY), 0, c.ResetDuration, fn),
	}
}

// Resetting reports whether a reset animation is running.
func (c *OrbitCamera) Resetting() bool {
	return c.reset != nil
}

// Update advances a running reset animation by dt seconds.
func (c *OrbitCamera) Update(dt float32) {
	if c.reset == nil {
		return
	}
	if !c.reset.doneX {
		val, done := c.reset.tweenX.Update(dt)
		c.RotationX = float64(val)
		c.reset.doneX = done
	}
	if !c.reset.doneY {
		val, done := c.reset.tweenY.Update(dt)
		c.RotationY = float64(val)
		c.reset.doneY = done
	}
	if c.reset.doneX && c.reset.doneY {
		c.RotationX, c.RotationY = 0, 0
		c.reset = nil
	}
}

// ViewMatrix returns LookAt(Eye, Target, Up) * RotateX(RotationY) * RotateY(RotationX).
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	lookAt := mgl32.LookAtV(c.Eye, c.Target, c.Up)
	rotate := mgl32.HomogRotate3DX(mgl32.DegToRad(float32(c.RotationY))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(c.RotationX))))
	return lookAt.Mul4(rotate)
}
