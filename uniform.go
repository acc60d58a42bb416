package parallax

import "fmt"

// UniformNode writes one uniform value into the active program every time it
// renders. The value is owned by the node and may be changed between frames
// with Set, e.g. by a control panel.
//
// The value persists in the program, so later siblings drawn with the same
// program see it, and is also set as a scoped override for the node's own
// children.
type UniformNode struct {
	Group
	uniform string
	value   any
}

// NewUniformNode creates a uniform node. See CheckUniform for the accepted
// value types.
func NewUniformNode(name, uniform string, value any, children ...Node) *UniformNode {
	n := &UniformNode{uniform: uniform, value: value}
	n.init(name, children)
	return n
}

// Uniform returns the uniform name.
func (n *UniformNode) Uniform() string { return n.uniform }

// Value returns the current value.
func (n *UniformNode) Value() any { return n.value }

// Set replaces the value written on the next Render.
func (n *UniformNode) Set(v any) { n.value = v }

// Render writes the value into the active program and renders the children.
func (n *UniformNode) Render(ctx *Context) error {
	if err := CheckUniform(n.uniform, n.value); err != nil {
		return fmt.Errorf("uniform node %q: %w", n.name, err)
	}
	if ctx.Program == nil {
		return fmt.Errorf("uniform node %q: %w", n.name, ErrNoProgram)
	}
	if ctx.Device == nil {
		return fmt.Errorf("uniform node %q: %w", n.name, ErrNoDevice)
	}
	if err := ctx.Device.SetUniform(ctx.Program, n.uniform, n.value); err != nil {
		return fmt.Errorf("uniform node %q: %w", n.name, err)
	}
	restore := ctx.SetUniform(n.uniform, n.value)
	defer restore()
	return n.renderChildren(ctx)
}
