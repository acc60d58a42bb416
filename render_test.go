package parallax_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/parallax"
	"github.com/phanxgames/parallax/parallaxtest"
)

// --- TextureNode ---

func TestTextureUnitFidelity(t *testing.T) {
	rec, root := newScene(t)
	t0, _ := rec.NewTexture(parallaxtest.Image(2, 2))
	t1, _ := rec.NewTexture(parallaxtest.Image(2, 2))
	t2, _ := rec.NewTexture(parallaxtest.Image(2, 2))

	root.AddChild(
		parallax.NewTextureNode("d", t0, 0, "u_d",
			parallax.NewTextureNode("n", t1, 1, "u_n",
				parallax.NewTextureNode("h", t2, 2, "u_h", mesh(t, rec, "all")),
			),
			mesh(t, rec, "diffuse_only"),
		),
	)
	if err := root.Render(parallax.NewContext(rec)); err != nil {
		t.Fatal(err)
	}

	all, _ := rec.DrawFor("all")
	for unit, want := range []parallax.Texture{t0, t1, t2} {
		if all.Units[unit] != want {
			t.Errorf("unit %d = %v, want texture %d", unit, all.Units[unit], unit)
		}
	}
	for sampler, unit := range map[string]int32{"u_d": 0, "u_n": 1, "u_h": 2} {
		if got := all.Uniforms[sampler]; got != unit {
			t.Errorf("%s = %v, want %d", sampler, got, unit)
		}
	}

	only, _ := rec.DrawFor("diffuse_only")
	if only.Units[0] != t0 || only.Units[1] != nil || only.Units[2] != nil {
		t.Errorf("sibling of nested textures sees units %v", only.Units)
	}
	if _, ok := only.Uniforms["u_n"]; ok {
		t.Error("sampler uniform leaked to sibling")
	}
}

func TestTextureSameUnitLastWinsScoped(t *testing.T) {
	rec, root := newScene(t)
	a, _ := rec.NewTexture(parallaxtest.Image(1, 1))
	b, _ := rec.NewTexture(parallaxtest.Image(1, 1))
	root.AddChild(parallax.NewTextureNode("a", a, 0, "s",
		parallax.NewTextureNode("b", b, 0, "s", mesh(t, rec, "inner")),
		mesh(t, rec, "outer"),
	))
	if err := root.Render(parallax.NewContext(rec)); err != nil {
		t.Fatal(err)
	}
	inner, _ := rec.DrawFor("inner")
	outer, _ := rec.DrawFor("outer")
	if inner.Units[0] != b {
		t.Error("inner binding does not win inside its subtree")
	}
	if outer.Units[0] != a {
		t.Error("inner binding leaked to sibling")
	}
}

func TestTextureNodeErrors(t *testing.T) {
	rec := parallaxtest.NewRecorder()
	tex, _ := rec.NewTexture(parallaxtest.Image(1, 1))
	tests := []struct {
		name string
		node *parallax.TextureNode
		want error
	}{
		{"nil texture", parallax.NewTextureNode("t", nil, 0, "s"), parallax.ErrInvalidTexture},
		{"invalid texture", parallax.NewTextureNode("t", &parallaxtest.Texture{Invalid: true}, 0, "s"), parallax.ErrInvalidTexture},
		{"negative unit", parallax.NewTextureNode("t", tex, -1, "s"), parallax.ErrTextureUnit},
		{"unit too large", parallax.NewTextureNode("t", tex, parallax.MaxTextureUnits, "s"), parallax.ErrTextureUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.node.Render(parallax.NewContext(rec)); !errors.Is(err, tt.want) {
				t.Errorf("Render = %v, want %v", err, tt.want)
			}
		})
	}
}

// --- UniformNode ---

func TestUniformNodeReachesSiblings(t *testing.T) {
	rec, root := newScene(t)
	u := parallax.NewUniformNode("u", parallax.UniformHeightScale, float32(0.05))
	root.AddChild(u)
	root.AddChild(mesh(t, rec, "sibling"))

	u.Set(float32(0.2))
	if err := root.Render(parallax.NewContext(rec)); err != nil {
		t.Fatal(err)
	}
	d, _ := rec.DrawFor("sibling")
	if got := d.Uniforms[parallax.UniformHeightScale]; got != float32(0.2) {
		t.Errorf("%s = %v, want 0.2", parallax.UniformHeightScale, got)
	}
	if u.Value() != float32(0.2) || u.Uniform() != parallax.UniformHeightScale {
		t.Errorf("node = %s / %v", u.Uniform(), u.Value())
	}
}

func TestUniformNodeScopedOverride(t *testing.T) {
	rec, root := newScene(t)
	root.AddChild(parallax.NewUniformNode("u", "u_tint", mgl32.Vec3{1, 0, 0}, mesh(t, rec, "child")))
	ctx := parallax.NewContext(rec)
	if err := root.Render(ctx); err != nil {
		t.Fatal(err)
	}
	d, _ := rec.DrawFor("child")
	if d.DrawCall.Uniforms["u_tint"] != (mgl32.Vec3{1, 0, 0}) {
		t.Error("child draw call has no override")
	}
	if _, ok := ctx.Uniform("u_tint"); ok {
		t.Error("override not restored")
	}
}

func TestUniformNodeErrors(t *testing.T) {
	rec := parallaxtest.NewRecorder()
	if err := parallax.NewUniformNode("u", "x", 1.0).Render(parallax.NewContext(rec)); !errors.Is(err, parallax.ErrNoProgram) {
		t.Errorf("outside shader = %v, want ErrNoProgram", err)
	}
	_, root := newScene(t, parallax.NewUniformNode("u", "x", "text"))
	if err := root.Render(parallax.NewContext(rec)); !errors.Is(err, parallax.ErrUniformType) {
		t.Errorf("string value = %v, want ErrUniformType", err)
	}
}

// --- RenderNode ---

func TestRenderNodeErrors(t *testing.T) {
	rec := parallaxtest.NewRecorder()
	buf, _ := rec.NewBuffer(parallax.MakeFloor(1, 1))

	if err := parallax.NewRenderNode("r", buf).Render(parallax.NewContext(rec)); !errors.Is(err, parallax.ErrNoProgram) {
		t.Errorf("no program = %v, want ErrNoProgram", err)
	}
	if err := parallax.NewRenderNode("r", buf).Render(parallax.NewContext(nil)); !errors.Is(err, parallax.ErrNoDevice) {
		t.Errorf("no device = %v, want ErrNoDevice", err)
	}

	_, root := newScene(t, parallax.NewRenderNode("r", &parallaxtest.Buffer{Invalid: true}))
	if err := root.Render(parallax.NewContext(rec)); !errors.Is(err, parallax.ErrInvalidBuffer) {
		t.Errorf("invalid buffer = %v, want ErrInvalidBuffer", err)
	}
	_, root = newScene(t, parallax.NewRenderNode("r", nil))
	if err := root.Render(parallax.NewContext(rec)); !errors.Is(err, parallax.ErrInvalidBuffer) {
		t.Errorf("nil buffer = %v, want ErrInvalidBuffer", err)
	}
}

func TestRenderNodeIsLeaf(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AddChild on RenderNode did not panic")
		}
	}()
	parallax.NewRenderNode("r", nil).AddChild(parallax.NewGroup("g"))
}

func TestStandardUniforms(t *testing.T) {
	rec, root := newScene(t)
	light := parallax.NewLightNode("light", parallax.Light{
		Ambient: parallax.Gray(0.2), Diffuse: parallax.Gray(0.8), Specular: parallax.ColorWhite,
	})
	root.AddChild(parallax.NewTransformNode("lt", mgl32.Translate3D(0, 2, 2), light))
	root.AddChild(parallax.NewTransformNode("mt", mgl32.Translate3D(1, 0, 0),
		parallax.NewMaterialNode("m", parallax.DefaultMaterial(), mesh(t, rec, "m")).LitBy(light),
	))

	ctx := parallax.NewContext(rec)
	ctx.View = mgl32.Translate3D(0, 0, -5)
	ctx.Projection = mgl32.Perspective(1, 1, 0.1, 10)
	if err := root.Render(ctx); err != nil {
		t.Fatal(err)
	}

	d, _ := rec.DrawFor("m")
	mv := ctx.View.Mul4(mgl32.Translate3D(1, 0, 0))
	if d.Uniforms[parallax.UniformModelView] != mv {
		t.Errorf("u_modelView = %v, want %v", d.Uniforms[parallax.UniformModelView], mv)
	}
	if d.Uniforms[parallax.UniformProjection] != ctx.Projection {
		t.Error("u_projection mismatch")
	}
	if d.Uniforms[parallax.UniformNormalMatrix] != parallax.NormalMatrix(mv) {
		t.Error("u_normalMatrix mismatch")
	}
	if d.Uniforms[parallax.UniformLightDiffuse] != parallax.Gray(0.8) {
		t.Errorf("u_light.diffuse = %v", d.Uniforms[parallax.UniformLightDiffuse])
	}
	// world (0,2,2) seen from a camera 5 units back
	lp := d.Uniforms[parallax.UniformLightPos].(mgl32.Vec3)
	if !vecNear(lp, mgl32.Vec3{0, 2, -3}) {
		t.Errorf("u_lightPos = %v, want (0,2,-3)", lp)
	}
	if len(d.Lights) != 1 || d.Lights[0].World != (mgl32.Vec3{0, 2, 2}) {
		t.Errorf("lights = %v", d.Lights)
	}
	if ctx.DrawCount() != 1 {
		t.Errorf("DrawCount = %d, want 1", ctx.DrawCount())
	}
}

func TestLightActiveForSubtreeOnly(t *testing.T) {
	rec, root := newScene(t)
	light := parallax.NewLightNode("light", parallax.Light{}, mesh(t, rec, "under"))
	root.AddChild(light)
	root.AddChild(mesh(t, rec, "beside"))
	if err := root.Render(parallax.NewContext(rec)); err != nil {
		t.Fatal(err)
	}
	under, _ := rec.DrawFor("under")
	beside, _ := rec.DrawFor("beside")
	if len(under.Lights) != 1 {
		t.Errorf("lights under light node = %d, want 1", len(under.Lights))
	}
	if len(beside.Lights) != 0 {
		t.Errorf("lights beside light node = %d, want 0", len(beside.Lights))
	}
}
