package parallax

import "github.com/go-gl/mathgl/mgl32"

// Light describes a point light. Position is local to the coordinate frame
// of the LightNode.
type Light struct {
	Position mgl32.Vec3
	Ambient  Color
	Diffuse  Color
	Specular Color
}

// LightNode places a light in the scene. Its world position is taken from
// the model matrix at render time, so a TransformNode above it moves the
// light together with any sibling geometry (such as a debug sphere).
//
// The node registers itself as active for its own subtree. Materials
// elsewhere in the tree refer to it explicitly with MaterialNode.LitBy and
// see the position computed during the current frame, provided the light is
// rendered before them.
type LightNode struct {
	Group
	light Light
	world mgl32.Vec3
}

// NewLightNode creates a light node.
func NewLightNode(name string, l Light, children ...Node) *LightNode {
	n := &LightNode{light: l, world: l.Position}
	n.init(name, children)
	return n
}

// Light returns the light description.
func (n *LightNode) Light() Light {
	return n.light
}

// WorldPosition returns the world-space position computed by the most
// recent Render.
func (n *LightNode) WorldPosition() mgl32.Vec3 {
	return n.world
}

// State returns the light as seen by a draw call.
func (n *LightNode) State() LightState {
	return LightState{
		Name:     n.name,
		World:    n.world,
		Ambient:  n.light.Ambient,
		Diffuse:  n.light.Diffuse,
		Specular: n.light.Specular,
	}
}

// Render records the world position and activates the light for the subtree.
func (n *LightNode) Render(ctx *Context) error {
	n.world = ctx.Model.Mul4x1(n.light.Position.Vec4(1)).Vec3()
	restore := ctx.addLights(n)
	defer restore()
	return n.renderChildren(ctx)
}
