package parallax

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Resources is the resolved output of a resource loader: shader sources and
// decoded images by logical name.
type Resources interface {
	Shader(name string) (string, error)
	Image(name string) (image.Image, error)
}

// Logical resource names used by the comparison scene.
const (
	ResourceFragment          = "fs"
	ResourceFragmentOcclusion = "fs_occlusion"
	ResourceTextureDiffuse    = "texture_diffuse"
	ResourceTextureNormal     = "texture_normal"
	ResourceTextureHeight     = "texture_height"
)

// VertexStageNormal is the vertex stage shared by both parallax programs.
const VertexStageNormal = "normal"

// Floor names, one per shading technique.
const (
	FloorOcclusion = "occlusion_floor"
	FloorParallax  = "parallax_floor"
	FloorNormal    = "normal_floor"
	FloorDiffuse   = "diffuse_floor"
)

// LightSphere is the name of the light's debug sphere RenderNode.
const LightSphere = "light.sphere"

// floorMaterial is the dark material shared by all four floors.
var floorMaterial = Material{
	Ambient:   ColorBlack,
	Diffuse:   Gray(0.1),
	Specular:  Gray(0.5),
	Emission:  ColorBlack,
	Shininess: 50,
}

// lightSphereMaterial only emits, so the sphere is white whatever the light.
var lightSphereMaterial = Material{
	Ambient:  ColorBlack,
	Diffuse:  ColorBlack,
	Specular: ColorBlack,
	Emission: ColorWhite,
}

// ComparisonScene is the assembled four-floor scene.
type ComparisonScene struct {
	Root *ShaderNode
	// Occlusion is the nested shader running parallax occlusion mapping.
	Occlusion *ShaderNode
	// LightRotation is animated by the frame driver.
	LightRotation *TransformNode
	Light         *LightNode
	// HeightUniforms receive the height scale every frame, one per program.
	HeightUniforms []*UniformNode
	// Floors maps a floor name to the transform placing it.
	Floors map[string]*TransformNode

	lightAngle float64
}

// SetLightAngle rotates the light around the Y axis by angle degrees.
func (s *ComparisonScene) SetLightAngle(angle float64) {
	s.lightAngle = angle
	s.LightRotation.SetMatrix(mgl32.HomogRotate3DY(mgl32.DegToRad(float32(angle))))
}

// LightAngle returns the angle last set with SetLightAngle.
func (s *ComparisonScene) LightAngle() float64 {
	return s.lightAngle
}

// SetHeightScale writes v into every height uniform node.
func (s *ComparisonScene) SetHeightScale(v float64) {
	for _, u := range s.HeightUniforms {
		u.Set(float32(v))
	}
}

// sceneBuilder turns loaded resources into device handles.
type sceneBuilder struct {
	dev Device
	res Resources
}

func (b *sceneBuilder) program(name, fragment string) (Program, error) {
	src, err := b.res.Shader(fragment)
	if err != nil {
		return nil, err
	}
	p, err := b.dev.NewProgram(ProgramSource{Name: name, Vertex: VertexStageNormal, Fragment: src})
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", name, err)
	}
	return p, nil
}

func (b *sceneBuilder) texture(name string) (Texture, error) {
	img, err := b.res.Image(name)
	if err != nil {
		return nil, err
	}
	t, err := b.dev.NewTexture(img)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	return t, nil
}

func (b *sceneBuilder) buffer(name string, g *Geometry) (Buffer, error) {
	buf, err := b.dev.NewBuffer(g)
	if err != nil {
		return nil, fmt.Errorf("buffer %q: %w", name, err)
	}
	return buf, nil
}

// floorTextures are the textures a floor binds, in unit order.
type floorTextures struct {
	diffuse, normal, height Texture
}

// floor builds Material -> Texture(diffuse) -> [Texture(normal) -> [Texture(height)]] -> Render.
// Units are fixed across floors: diffuse 0, normal 1, height 2. levels
// selects how many textures are bound (1 to 3).
func floor(name string, buf Buffer, tex floorTextures, levels int, light *LightNode) *MaterialNode {
	var leaf Node = NewRenderNode(name+".mesh", buf)
	if levels >= 3 {
		leaf = NewTextureNode(name+".height", tex.height, UnitHeight, SamplerHeight, leaf)
	}
	if levels >= 2 {
		leaf = NewTextureNode(name+".normal", tex.normal, UnitNormal, SamplerNormal, leaf)
	}
	leaf = NewTextureNode(name+".diffuse", tex.diffuse, UnitDiffuse, SamplerDiffuse, leaf)
	return NewMaterialNode(name+".material", floorMaterial, leaf).LitBy(light)
}

// floorTransform places a floor at translate, turned to lie in the XZ plane.
func floorTransform(name string, translate mgl32.Vec3, child Node) *TransformNode {
	return NewTransformNode(name, Transform{Translate: translate, RotateX: -90, Scale: 1}.Matrix(), child)
}

// BuildComparisonScene compiles the programs, uploads textures and geometry,
// and assembles the scene tree. No draw calls are issued.
//
//	Shader "default" (parallax)
//	├─ Uniform u_height_scale
//	├─ Transform "light.rotate"
//	│   └─ Transform "light.translate"
//	│       ├─ Light
//	│       └─ Material -> Render sphere
//	├─ Shader "occlusion" (parallax occlusion)
//	│   ├─ Uniform u_height_scale
//	│   └─ Transform -> floor with diffuse, normal and height maps
//	├─ Transform -> floor with diffuse, normal and height maps
//	├─ Transform -> floor with diffuse and normal maps
//	└─ Transform -> floor with a diffuse map
func BuildComparisonScene(dev Device, res Resources, settings *Settings) (*ComparisonScene, error) {
	b := &sceneBuilder{dev: dev, res: res}

	parallaxProg, err := b.program("parallax", ResourceFragment)
	if err != nil {
		return nil, err
	}
	occlusionProg, err := b.program("parallax_occlusion", ResourceFragmentOcclusion)
	if err != nil {
		return nil, err
	}

	var tex floorTextures
	if tex.diffuse, err = b.texture(ResourceTextureDiffuse); err != nil {
		return nil, err
	}
	if tex.normal, err = b.texture(ResourceTextureNormal); err != nil {
		return nil, err
	}
	if tex.height, err = b.texture(ResourceTextureHeight); err != nil {
		return nil, err
	}

	// Each floor owns its buffer, as each RenderNode owns its geometry.
	floorBufs := make(map[string]Buffer, 4)
	for _, name := range []string{FloorOcclusion, FloorParallax, FloorNormal, FloorDiffuse} {
		if floorBufs[name], err = b.buffer(name, MakeFloor(1, 1)); err != nil {
			return nil, err
		}
	}
	sphereBuf, err := b.buffer(LightSphere, MakeSphere(0.2, 10, 10))
	if err != nil {
		return nil, err
	}

	heightScale := float32(settings.HeightScale())
	s := &ComparisonScene{Floors: make(map[string]*TransformNode, 4)}

	// Light: translating the light is the same as setting its position, so
	// the sphere placed by the same transform marks the light.
	s.Light = NewLightNode("light", Light{
		Ambient:  Gray(0.2),
		Diffuse:  Gray(0.8),
		Specular: ColorWhite,
	})
	s.LightRotation = NewTransformNode("light.rotate", mgl32.Ident4(),
		NewTransformNode("light.translate", mgl32.Translate3D(0, 2, 2),
			s.Light,
			NewMaterialNode("light.material", lightSphereMaterial,
				NewRenderNode(LightSphere, sphereBuf),
			),
		),
	)

	defaultHeight := NewUniformNode("default.height_scale", UniformHeightScale, heightScale)
	occlusionHeight := NewUniformNode("occlusion.height_scale", UniformHeightScale, heightScale)
	s.HeightUniforms = []*UniformNode{defaultHeight, occlusionHeight}

	place := func(name string, translate mgl32.Vec3, levels int) *TransformNode {
		t := floorTransform(name, translate, floor(name, floorBufs[name], tex, levels, s.Light))
		s.Floors[name] = t
		return t
	}

	s.Occlusion = NewShaderNode("occlusion", occlusionProg,
		occlusionHeight,
		place(FloorOcclusion, mgl32.Vec3{-1, 1, -1}, 3),
	)
	s.Root = NewShaderNode("default", parallaxProg,
		defaultHeight,
		s.LightRotation,
		s.Occlusion,
		place(FloorParallax, mgl32.Vec3{1, 1, 1}, 3),
		place(FloorNormal, mgl32.Vec3{-1, 1, 1}, 2),
		place(FloorDiffuse, mgl32.Vec3{1, 1, -1}, 1),
	)
	return s, nil
}
