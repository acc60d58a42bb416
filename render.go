package parallax

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Standard uniform names filled in for every draw call.
const (
	UniformModelView    = "u_modelView"
	UniformProjection   = "u_projection"
	UniformNormalMatrix = "u_normalMatrix"
	UniformInvView      = "u_invView"

	UniformMaterialAmbient   = "u_material.ambient"
	UniformMaterialDiffuse   = "u_material.diffuse"
	UniformMaterialSpecular  = "u_material.specular"
	UniformMaterialEmission  = "u_material.emission"
	UniformMaterialShininess = "u_material.shininess"

	UniformLightAmbient  = "u_light.ambient"
	UniformLightDiffuse  = "u_light.diffuse"
	UniformLightSpecular = "u_light.specular"
	UniformLightPos      = "u_lightPos"
)

// Uniform names of the parallax programs.
const (
	UniformHeightScale = "u_height_scale"
	SamplerDiffuse     = "u_diffuseTex"
	SamplerNormal      = "u_normalTex"
	SamplerHeight      = "u_heightTex"
)

// Fixed texture units shared by every program.
const (
	UnitDiffuse = 0
	UnitNormal  = 1
	UnitHeight  = 2
)

// RenderNode draws one geometry buffer with the accumulated context state.
// It is a leaf: adding children panics.
type RenderNode struct {
	Group
	buffer Buffer
}

// NewRenderNode creates a leaf that draws buffer.
func NewRenderNode(name string, buffer Buffer) *RenderNode {
	n := &RenderNode{buffer: buffer}
	n.name = name
	n.leaf = true
	return n
}

// Buffer returns the node's geometry buffer.
func (n *RenderNode) Buffer() Buffer {
	return n.buffer
}

// Render issues the draw call.
func (n *RenderNode) Render(ctx *Context) error {
	if ctx.Device == nil {
		return fmt.Errorf("render %q: %w", n.name, ErrNoDevice)
	}
	if ctx.Program == nil {
		return fmt.Errorf("render %q: %w", n.name, ErrNoProgram)
	}
	if !ctx.Program.Valid() {
		return fmt.Errorf("render %q: %w", n.name, ErrInvalidProgram)
	}
	if n.buffer == nil || !n.buffer.Valid() {
		return fmt.Errorf("render %q: %w", n.name, ErrInvalidBuffer)
	}
	for unit, tex := range ctx.Units {
		if tex != nil && !tex.Valid() {
			return fmt.Errorf("render %q: unit %d: %w", n.name, unit, ErrInvalidTexture)
		}
	}

	call := n.drawCall(ctx)
	ctx.draws++
	if err := ctx.Device.Draw(call); err != nil {
		return fmt.Errorf("render %q: %w", n.name, err)
	}
	return nil
}

// drawCall snapshots the context into a DrawCall.
func (n *RenderNode) drawCall(ctx *Context) *DrawCall {
	material := DefaultMaterial()
	if ctx.Material != nil {
		material = *ctx.Material
	}
	lights := make([]LightState, len(ctx.Lights))
	for i, l := range ctx.Lights {
		lights[i] = l.State()
	}
	call := &DrawCall{
		Node:       n.name,
		Program:    ctx.Program,
		Buffer:     n.buffer,
		Projection: ctx.Projection,
		View:       ctx.View,
		Model:      ctx.Model,
		Material:   material,
		Lights:     lights,
		Units:      ctx.Units,
		Uniforms:   ctx.Uniforms(),
	}
	setStandardUniforms(call)
	return call
}

// setStandardUniforms fills the transform, material and light uniforms.
// Only the first light is exposed through u_light / u_lightPos.
func setStandardUniforms(call *DrawCall) {
	u := call.Uniforms
	modelView := call.ModelView()
	u[UniformModelView] = modelView
	u[UniformProjection] = call.Projection
	u[UniformNormalMatrix] = NormalMatrix(modelView)
	u[UniformInvView] = call.View.Inv()

	m := call.Material
	u[UniformMaterialAmbient] = m.Ambient
	u[UniformMaterialDiffuse] = m.Diffuse
	u[UniformMaterialSpecular] = m.Specular
	u[UniformMaterialEmission] = m.Emission
	u[UniformMaterialShininess] = m.Shininess

	if len(call.Lights) > 0 {
		l := call.Lights[0]
		u[UniformLightAmbient] = l.Ambient
		u[UniformLightDiffuse] = l.Diffuse
		u[UniformLightSpecular] = l.Specular
		u[UniformLightPos] = call.View.Mul4x1(l.World.Vec4(1)).Vec3()
	}
}

// NormalMatrix returns the inverse transpose of the upper 3x3 of m.
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	return m.Mat3().Inv().Transpose()
}
