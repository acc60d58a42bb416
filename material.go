package parallax

// Material holds the surface properties used by the lighting model.
type Material struct {
	Ambient   Color
	Diffuse   Color
	Specular  Color
	Emission  Color
	Shininess float32
}

// DefaultMaterial returns the material used when no MaterialNode is above a
// RenderNode.
func DefaultMaterial() Material {
	return Material{
		Ambient:  Gray(0.2),
		Diffuse:  Gray(0.8),
		Specular: ColorBlack,
		Emission: ColorBlack,
	}
}

// MaterialNode sets the material for its subtree and activates the lights
// the material is lit by.
type MaterialNode struct {
	Group
	material Material
	lights   []*LightNode
}

// NewMaterialNode creates a material node.
func NewMaterialNode(name string, m Material, children ...Node) *MaterialNode {
	n := &MaterialNode{material: m}
	n.init(name, children)
	return n
}

// LitBy adds lights to the material and returns n.
func (n *MaterialNode) LitBy(lights ...*LightNode) *MaterialNode {
	n.lights = append(n.lights, lights...)
	return n
}

// Material returns the node's material.
func (n *MaterialNode) Material() Material {
	return n.material
}

// Lights returns the lights the material is lit by. The returned slice MUST
// NOT be mutated by the caller.
func (n *MaterialNode) Lights() []*LightNode {
	return n.lights
}

// Render sets the material and its lights for the subtree.
func (n *MaterialNode) Render(ctx *Context) error {
	prev := ctx.Material
	ctx.Material = &n.material
	defer func() { ctx.Material = prev }()

	restoreLights := ctx.addLights(n.lights...)
	defer restoreLights()

	return n.renderChildren(ctx)
}
