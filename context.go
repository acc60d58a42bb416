package parallax

import (
	"maps"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Context is the rendering state threaded through one traversal of the
// scene graph. A fresh Context is created for every frame.
//
// Nodes mutate Context fields for their subtree only: every change is undone
// before the node returns to its parent, so siblings never observe each
// other's state.
type Context struct {
	Device Device

	Projection mgl32.Mat4
	View       mgl32.Mat4
	// Model is the accumulated model transform of the current node.
	Model mgl32.Mat4

	// Time is the frame time in milliseconds.
	Time float64

	// Program is the program of the nearest ShaderNode ancestor.
	Program Program
	// Material is the material of the nearest MaterialNode ancestor, or nil.
	Material *Material
	// Lights are the lights active for the current subtree.
	Lights []*LightNode
	// Units are the textures bound to each texture unit.
	Units [MaxTextureUnits]Texture

	uniforms map[string]any
	draws    int
}

// NewContext creates a Context with identity matrices.
func NewContext(dev Device) *Context {
	return &Context{
		Device:     dev,
		Projection: mgl32.Ident4(),
		View:       mgl32.Ident4(),
		Model:      mgl32.Ident4(),
		uniforms:   make(map[string]any),
	}
}

// SetUniform sets a uniform override visible to the current subtree and
// returns the function that restores the previous value.
func (c *Context) SetUniform(name string, value any) (restore func()) {
	if c.uniforms == nil {
		c.uniforms = make(map[string]any)
	}
	prev, had := c.uniforms[name]
	c.uniforms[name] = value
	return func() {
		if had {
			c.uniforms[name] = prev
		} else {
			delete(c.uniforms, name)
		}
	}
}

// Uniform returns the current override for name.
func (c *Context) Uniform(name string) (any, bool) {
	v, ok := c.uniforms[name]
	return v, ok
}

// Uniforms returns a copy of the current uniform overrides.
func (c *Context) Uniforms() map[string]any {
	return maps.Clone(c.uniforms)
}

// DrawCount returns the number of draw calls issued through this Context.
func (c *Context) DrawCount() int {
	return c.draws
}

// bindUnit binds tex to unit for the current subtree.
func (c *Context) bindUnit(unit int, tex Texture) (restore func()) {
	prev := c.Units[unit]
	c.Units[unit] = tex
	return func() { c.Units[unit] = prev }
}

// addLights appends lights not already active. The slice is always copied so
// that siblings never share a backing array.
func (c *Context) addLights(lights ...*LightNode) (restore func()) {
	prev := c.Lights
	next := make([]*LightNode, len(prev), len(prev)+len(lights))
	copy(next, prev)
	for _, l := range lights {
		if l != nil && !slices.Contains(next, l) {
			next = append(next, l)
		}
	}
	c.Lights = next
	return func() { c.Lights = prev }
}

