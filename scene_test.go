package parallax_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/parallax"
	"github.com/phanxgames/parallax/parallaxtest"
)

func newApp(t *testing.T) (*parallax.App, *parallaxtest.Recorder) {
	t.Helper()
	rec := parallaxtest.NewRecorder()
	app, err := parallax.NewApp(parallax.DefaultConfig(), nil, rec, parallaxtest.NewResources(), nil)
	require.NoError(t, err)
	return app, rec
}

func TestBuildComparisonSceneIssuesNoDraws(t *testing.T) {
	rec := parallaxtest.NewRecorder()
	s, err := parallax.BuildComparisonScene(rec, parallaxtest.NewResources(), parallax.NewSettings(0.05, 0.01))
	require.NoError(t, err)

	assert.Empty(t, rec.Draws)
	assert.Len(t, rec.Programs, 2)
	assert.Len(t, rec.Textures, 3)
	assert.Len(t, rec.Buffers, 5)
	assert.Len(t, s.Floors, 4)
	assert.Len(t, s.HeightUniforms, 2)

	for _, p := range rec.Programs {
		assert.Equal(t, parallax.VertexStageNormal, p.Source.Vertex)
	}
	assert.Equal(t, "parallax", rec.Programs[0].Source.Fragment)
	assert.Equal(t, "parallax_occlusion", rec.Programs[1].Source.Fragment)
}

func TestBuildComparisonSceneErrors(t *testing.T) {
	res := parallaxtest.NewResources()
	delete(res.Images, parallax.ResourceTextureNormal)
	_, err := parallax.BuildComparisonScene(parallaxtest.NewRecorder(), res, parallax.NewSettings(0, 0))
	assert.ErrorContains(t, err, parallax.ResourceTextureNormal)

	rec := parallaxtest.NewRecorder()
	rec.FailProgram = "parallax_occlusion"
	_, err = parallax.BuildComparisonScene(rec, parallaxtest.NewResources(), parallax.NewSettings(0, 0))
	assert.ErrorIs(t, err, parallax.ErrInvalidProgram)
}

func TestFourFloorScene(t *testing.T) {
	app, rec := newApp(t)
	require.NoError(t, app.RenderFrame(0))

	// four floors and the light sphere
	require.Len(t, rec.Draws, 5)
	assert.Equal(t, 5, app.Stats().DrawCallCount)
	assert.Equal(t, []parallax.Color{parallax.ColorFromArray([4]float32{0.9, 0.9, 0.9, 1})}, rec.Clears)

	floors := []struct {
		name     string
		at       mgl32.Vec3
		program  string
		textures int
	}{
		{parallax.FloorOcclusion, mgl32.Vec3{-1, 1, -1}, "parallax_occlusion", 3},
		{parallax.FloorParallax, mgl32.Vec3{1, 1, 1}, "parallax", 3},
		{parallax.FloorNormal, mgl32.Vec3{-1, 1, 1}, "parallax", 2},
		{parallax.FloorDiffuse, mgl32.Vec3{1, 1, -1}, "parallax", 1},
	}
	for _, f := range floors {
		t.Run(f.name, func(t *testing.T) {
			d, ok := rec.DrawFor(f.name + ".mesh")
			require.True(t, ok, "floor not drawn")
			at := parallax.Translation(d.Model)
			assert.InDeltaSlice(t, f.at[:], at[:], 1e-5, "translation")
			assert.Equal(t, f.program, d.Program.(*parallaxtest.Program).Source.Name)

			bound := 0
			for _, tex := range d.Units {
				if tex != nil {
					bound++
				}
			}
			assert.Equal(t, f.textures, bound)
			assert.Equal(t, int32(parallax.UnitDiffuse), d.Uniforms[parallax.SamplerDiffuse])

			// lying in XZ, facing up
			up := d.Model.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
			assert.InDeltaSlice(t, []float32{0, 1, 0}, up[:], 1e-5, "normal")

			assert.Equal(t, float32(50), d.Material.Shininess)
			require.Len(t, d.Lights, 1)
			assert.Equal(t, float32(0.05), d.Uniforms[parallax.UniformHeightScale])
		})
	}

	sphere, ok := rec.DrawFor(parallax.LightSphere)
	require.True(t, ok)
	at := parallax.Translation(sphere.Model)
	assert.InDeltaSlice(t, []float32{0, 2, 2}, at[:], 1e-5)
	assert.Equal(t, parallax.ColorWhite, sphere.Material.Emission)
	lp := app.Scene().Light.WorldPosition()
	assert.InDeltaSlice(t, []float32{0, 2, 2}, lp[:], 1e-5)
}

func TestLightOrbit(t *testing.T) {
	app, rec := newApp(t)

	require.NoError(t, app.RenderFrame(0))
	assert.Equal(t, 0.0, app.Scene().LightAngle())

	rec.Reset()
	require.NoError(t, app.RenderFrame(1000))
	assert.InDelta(t, 50.0, app.Scene().LightAngle(), 1e-9)

	// Ry(50°) applied to (0,2,2)
	sin, cos := math.Sincos(50 * math.Pi / 180)
	want := mgl32.Vec3{2 * float32(sin), 2, 2 * float32(cos)}
	got := app.Scene().Light.WorldPosition()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5, "light position")

	// floors see the rotated light in the same frame
	d, _ := rec.DrawFor(parallax.FloorParallax + ".mesh")
	lw := d.Lights[0].World
	assert.InDeltaSlice(t, want[:], lw[:], 1e-5)
}

func TestHeightScalePropagatesNextFrame(t *testing.T) {
	app, rec := newApp(t)
	require.NoError(t, app.RenderFrame(0))

	app.Settings().SetHeightScale(0.2)
	rec.Reset()
	require.NoError(t, app.RenderFrame(16))

	for _, name := range []string{parallax.FloorOcclusion, parallax.FloorParallax, parallax.FloorNormal, parallax.FloorDiffuse} {
		d, ok := rec.DrawFor(name + ".mesh")
		require.True(t, ok)
		assert.Equal(t, float32(0.2), d.Uniforms[parallax.UniformHeightScale], name)
	}
	for _, p := range rec.Programs {
		assert.Equal(t, float32(0.2), p.Uniforms[parallax.UniformHeightScale], p.Source.Name)
	}
}

func TestCameraDragChangesView(t *testing.T) {
	app, rec := newApp(t)
	require.NoError(t, app.RenderFrame(0))
	rest := rec.Draws[0].View

	app.Input().PointerDown(100, 100, parallax.MouseButtonLeft)
	app.Input().PointerMove(70, 100)
	assert.Equal(t, 30.0, app.Camera().RotationX)

	rec.Reset()
	require.NoError(t, app.RenderFrame(16))
	assert.NotEqual(t, rest, rec.Draws[0].View)

	app.Input().KeyPress("R")
	rec.Reset()
	require.NoError(t, app.RenderFrame(32))
	view := rec.Draws[0].View
	assert.InDeltaSlice(t, rest[:], view[:], 1e-6)
}

func TestRenderFrameError(t *testing.T) {
	app, rec := newApp(t)
	rec.FailDraw = parallax.FloorNormal + ".mesh"
	err := app.RenderFrame(0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), parallax.FloorNormal)
}

func TestNewAppValidates(t *testing.T) {
	cfg := parallax.DefaultConfig()
	cfg.Far = 0
	_, err := parallax.NewApp(cfg, nil, parallaxtest.NewRecorder(), parallaxtest.NewResources(), nil)
	assert.Error(t, err)

	_, err = parallax.NewApp(parallax.DefaultConfig(), nil, nil, parallaxtest.NewResources(), nil)
	assert.ErrorIs(t, err, parallax.ErrNoDevice)
}

func TestViewportMinimum(t *testing.T) {
	app, rec := newApp(t)
	rec.Width, rec.Height = 0, 0
	require.NoError(t, app.RenderFrame(0))
	want := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.01, 100)
	assert.Equal(t, want, rec.Draws[0].Projection)
}
