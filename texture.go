package parallax

import "fmt"

// TextureNode binds a texture to a fixed texture unit and points a sampler
// uniform at that unit for its subtree.
type TextureNode struct {
	Group
	texture Texture
	unit    int
	sampler string
}

// NewTextureNode creates a texture node binding tex to unit, with sampler
// naming the program's sampler uniform.
func NewTextureNode(name string, tex Texture, unit int, sampler string, children ...Node) *TextureNode {
	n := &TextureNode{texture: tex, unit: unit, sampler: sampler}
	n.init(name, children)
	return n
}

// Texture returns the bound texture.
func (n *TextureNode) Texture() Texture { return n.texture }

// Unit returns the texture unit.
func (n *TextureNode) Unit() int { return n.unit }

// Sampler returns the sampler uniform name.
func (n *TextureNode) Sampler() string { return n.sampler }

// Render binds the texture and sampler for the subtree. Both are restored
// on return, so a sibling never samples this node's texture.
func (n *TextureNode) Render(ctx *Context) error {
	if n.unit < 0 || n.unit >= MaxTextureUnits {
		return fmt.Errorf("texture %q: unit %d: %w", n.name, n.unit, ErrTextureUnit)
	}
	if n.texture == nil || !n.texture.Valid() {
		return fmt.Errorf("texture %q: %w", n.name, ErrInvalidTexture)
	}
	restoreUnit := ctx.bindUnit(n.unit, n.texture)
	defer restoreUnit()
	restoreSampler := ctx.SetUniform(n.sampler, int32(n.unit))
	defer restoreSampler()
	return n.renderChildren(ctx)
}
