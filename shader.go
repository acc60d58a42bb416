package parallax

import "fmt"

// ShaderNode activates a program for its subtree. Every TextureNode,
// UniformNode and RenderNode below it targets this program's uniforms.
type ShaderNode struct {
	Group
	program Program
}

// NewShaderNode creates a shader node for program p.
func NewShaderNode(name string, p Program, children ...Node) *ShaderNode {
	n := &ShaderNode{program: p}
	n.init(name, children)
	return n
}

// Program returns the node's program.
func (n *ShaderNode) Program() Program {
	return n.program
}

// Render makes the node's program the active program for the subtree.
func (n *ShaderNode) Render(ctx *Context) error {
	if n.program == nil || !n.program.Valid() {
		return fmt.Errorf("shader %q: %w", n.name, ErrInvalidProgram)
	}
	prev := ctx.Program
	ctx.Program = n.program
	defer func() { ctx.Program = prev }()
	return n.renderChildren(ctx)
}
