// Package ebitendev renders the parallax scene graph with Ebitengine.
//
// Fragment programs are Kage shaders. The vertex stage runs on the CPU and
// draw calls are depth sorted per frame, since Ebitengine exposes neither
// vertex shaders nor a depth buffer.
package ebitendev

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/parallax"
	"go.uber.org/zap"
)

// DefaultTextureSize is the edge length all textures are resampled to.
const DefaultTextureSize = 512

// ErrVertexStage is returned for programs naming an unknown vertex stage.
var ErrVertexStage = errors.New("ebitendev: unknown vertex stage")

// program is a compiled Kage fragment program plus its persistent uniforms.
type program struct {
	name     string
	shader   *ebiten.Shader
	uniforms map[string]any
}

func (p *program) Valid() bool { return p != nil && p.shader != nil }

// Options configure a Device.
type Options struct {
	// TextureSize is the edge length textures are resampled to.
	// Zero means DefaultTextureSize.
	TextureSize int
	Log         *zap.Logger
}

// Device implements parallax.Device on Ebitengine. Draw only queues work;
// Flush submits the frame to a screen image. A Device must be used from the
// game goroutine.
type Device struct {
	log         *zap.Logger
	textureSize int
	fallback    [4]*ebiten.Image

	width, height int
	clearColor    color.Color
	queue         commandQueue
}

// New creates a Device.
func New(opts Options) *Device {
	size := opts.TextureSize
	if size <= 0 {
		size = DefaultTextureSize
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Device{
		log:         log.Named("device"),
		textureSize: size,
		fallback:    fallbackImages(size),
		width:       1,
		height:      1,
		clearColor:  color.Black,
	}
}

// NewProgram compiles src.Fragment as a Kage program.
func (d *Device) NewProgram(src parallax.ProgramSource) (parallax.Program, error) {
	if src.Vertex != VertexStageNormal {
		return nil, fmt.Errorf("program %s: vertex stage %q: %w", src.Name, src.Vertex, ErrVertexStage)
	}
	s, err := ebiten.NewShader([]byte(src.Fragment))
	if err != nil {
		return nil, fmt.Errorf("program %s: %w", src.Name, err)
	}
	d.log.Info("program compiled", zap.String("program", src.Name), zap.String("vertex", src.Vertex))
	return &program{name: src.Name, shader: s, uniforms: make(map[string]any)}, nil
}

// NewTexture resamples img to the device texture size and uploads it.
func (d *Device) NewTexture(img image.Image) (parallax.Texture, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, parallax.ErrInvalidTexture
	}
	b := img.Bounds()
	if b.Dx() != d.textureSize || b.Dy() != d.textureSize {
		d.log.Debug("texture resampled",
			zap.Int("width", b.Dx()), zap.Int("height", b.Dy()), zap.Int("size", d.textureSize))
	}
	return &texture{img: ebiten.NewImageFromImage(resample(img, d.textureSize))}, nil
}

// NewBuffer validates g. The geometry stays on the CPU where the vertex
// stage runs.
func (d *Device) NewBuffer(g *parallax.Geometry) (parallax.Buffer, error) {
	if g == nil {
		return nil, parallax.ErrInvalidGeometry
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &buffer{geometry: g}, nil
}

// SetUniform stores a persistent uniform on p.
func (d *Device) SetUniform(p parallax.Program, name string, value any) error {
	prog, ok := p.(*program)
	if !ok || !prog.Valid() {
		return parallax.ErrInvalidProgram
	}
	if err := parallax.CheckUniform(name, value); err != nil {
		return err
	}
	prog.uniforms[name] = value
	return nil
}

// SetViewport sets the drawing buffer size, normally from Game.Layout.
func (d *Device) SetViewport(width, height int) {
	d.width, d.height = max(width, 1), max(height, 1)
}

// Viewport returns the drawing buffer size.
func (d *Device) Viewport() (int, int) {
	return d.width, d.height
}

// Clear sets the color the next Flush fills the screen with and drops any
// queued draws.
func (d *Device) Clear(c parallax.Color) {
	d.clearColor = color.RGBA64{
		R: unitToU16(c.R * c.A),
		G: unitToU16(c.G * c.A),
		B: unitToU16(c.B * c.A),
		A: unitToU16(c.A),
	}
	d.queue.reset()
}

func unitToU16(v float32) uint16 {
	return uint16(min(max(v, 0), 1) * 0xffff)
}

// Draw runs the vertex stage for call and queues the result.
func (d *Device) Draw(call *parallax.DrawCall) error {
	prog, ok := call.Program.(*program)
	if !ok || !prog.Valid() {
		return parallax.ErrInvalidProgram
	}
	buf, ok := call.Buffer.(*buffer)
	if !ok || !buf.Valid() {
		return parallax.ErrInvalidBuffer
	}

	verts, indices := vertexStage(buf.geometry, call.Projection, call.View, call.Model,
		d.width, d.height, float32(d.textureSize))
	if len(indices) == 0 {
		return nil
	}

	cmd := drawCommand{
		node:     call.Node,
		vertices: verts,
		indices:  indices,
		shader:   prog.shader,
		uniforms: kageUniforms(prog.uniforms, call),
		images:   d.fallback,
		depth:    callDepth(call.Projection, call.View, call.Model),
	}
	for slot, unit := range imageSlots(call.Units, prog.uniforms, call.Uniforms) {
		if unit < 0 {
			continue
		}
		if tex, ok := call.Units[unit].(*texture); ok {
			cmd.images[slot] = tex.img
		}
	}
	d.queue.push(cmd)
	return nil
}

// Queued returns the number of draws waiting for Flush.
func (d *Device) Queued() int {
	return len(d.queue.commands)
}

// Flush clears screen and submits the queued draws far to near.
func (d *Device) Flush(screen *ebiten.Image) {
	screen.Fill(d.clearColor)
	d.queue.sort()
	for i := range d.queue.commands {
		cmd := &d.queue.commands[i]
		op := &ebiten.DrawTrianglesShaderOptions{
			Uniforms: cmd.uniforms,
			Images:   cmd.images,
		}
		screen.DrawTrianglesShader32(cmd.vertices, cmd.indices, cmd.shader, op)
	}
	d.queue.reset()
}
