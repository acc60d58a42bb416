package parallax

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxTextureUnits is the number of texture units a draw call can sample from.
const MaxTextureUnits = 4

// Program is a linked shader program owned by a Device.
type Program interface {
	Valid() bool
}

// Texture is an uploaded image owned by a Device.
type Texture interface {
	Valid() bool
}

// Buffer is uploaded vertex data owned by a Device.
type Buffer interface {
	Valid() bool
}

// ProgramSource describes a program to compile. Vertex names the vertex
// stage, Fragment holds the fragment program source.
type ProgramSource struct {
	Name     string
	Vertex   string
	Fragment string
}

// Device is the graphics device the scene graph renders through.
//
// Handles returned by a Device are owned by the node that requested them for
// the lifetime of the process; there is no release API.
type Device interface {
	// NewProgram compiles and links a program.
	NewProgram(src ProgramSource) (Program, error)
	// NewTexture uploads an image.
	NewTexture(img image.Image) (Texture, error)
	// NewBuffer uploads the vertex and index data of g.
	NewBuffer(g *Geometry) (Buffer, error)
	// SetUniform stores a uniform value in the program. The value persists
	// across draw calls until overwritten.
	SetUniform(p Program, name string, value any) error
	// Viewport returns the current drawing buffer size in pixels.
	Viewport() (width, height int)
	// Clear clears the color and depth buffers.
	Clear(c Color)
	// Draw issues one draw call.
	Draw(call *DrawCall) error
}

// LightState is a light as seen by one draw call.
type LightState struct {
	Name     string
	World    mgl32.Vec3 // world-space position
	Ambient  Color
	Diffuse  Color
	Specular Color
}

// DrawCall carries everything a Device needs to draw one RenderNode.
//
// Uniforms holds the values accumulated from the traversal (sampler units,
// uniform overrides) plus the standard uniform surface. Devices overlay them
// on top of the program's persistent uniform values.
type DrawCall struct {
	Node       string
	Program    Program
	Buffer     Buffer
	Projection mgl32.Mat4
	View       mgl32.Mat4
	Model      mgl32.Mat4
	Material   Material
	Lights     []LightState
	Units      [MaxTextureUnits]Texture
	Uniforms   map[string]any
}

// ModelView returns View * Model.
func (c *DrawCall) ModelView() mgl32.Mat4 {
	return c.View.Mul4(c.Model)
}

// CheckUniform reports whether value has a type Devices must accept:
// float32, float64, int, int32, bool, mgl32.Vec2/3/4, mgl32.Mat3/4 or Color.
func CheckUniform(name string, value any) error {
	switch value.(type) {
	case float32, float64, int, int32, bool,
		mgl32.Vec2, mgl32.Vec3, mgl32.Vec4,
		mgl32.Mat3, mgl32.Mat4, Color:
		return nil
	}
	return fmt.Errorf("uniform %q (%T): %w", name, value, ErrUniformType)
}
