package parallax

import "github.com/go-gl/mathgl/mgl32"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

var (
	// ColorWhite is opaque white.
	ColorWhite = Color{1, 1, 1, 1}
	// ColorBlack is opaque black.
	ColorBlack = Color{0, 0, 0, 1}
)

// Gray returns an opaque gray with all channels set to v.
func Gray(v float32) Color {
	return Color{v, v, v, 1}
}

// Vec4 returns the color as an mgl32.Vec4.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// ColorFromArray converts a [4]float32 (as found in config files) to a Color.
func ColorFromArray(a [4]float32) Color {
	return Color{a[0], a[1], a[2], a[3]}
}
