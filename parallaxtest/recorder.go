// Package parallaxtest provides a recording parallax.Device for tests.
package parallaxtest

import (
	"errors"
	"fmt"
	"image"
	"maps"

	"github.com/phanxgames/parallax"
)

// Program is a recorded program handle.
type Program struct {
	Source   parallax.ProgramSource
	Uniforms map[string]any
	Invalid  bool
}

// Valid reports whether the handle is usable.
func (p *Program) Valid() bool { return p != nil && !p.Invalid }

// Texture is a recorded texture handle.
type Texture struct {
	ID      int
	Bounds  image.Rectangle
	Invalid bool
}

// Valid reports whether the handle is usable.
func (t *Texture) Valid() bool { return t != nil && !t.Invalid }

// Buffer is a recorded geometry buffer handle.
type Buffer struct {
	ID       int
	Geometry *parallax.Geometry
	Invalid  bool
}

// Valid reports whether the handle is usable.
func (b *Buffer) Valid() bool { return b != nil && !b.Invalid }

// Draw is one recorded draw call. Uniforms holds the program's persistent
// uniforms overlaid with the call's own.
type Draw struct {
	*parallax.DrawCall
	Uniforms map[string]any
}

// Recorder is a parallax.Device that records resource creation and draw
// calls without touching a GPU.
type Recorder struct {
	Width, Height int

	Programs []*Program
	Textures []*Texture
	Buffers  []*Buffer
	Draws    []Draw
	Clears   []parallax.Color

	// FailProgram makes NewProgram fail for programs with this name.
	FailProgram string
	// FailDraw makes Draw fail for the node with this name.
	FailDraw string
}

// NewRecorder creates a recorder with a 640x480 viewport.
func NewRecorder() *Recorder {
	return &Recorder{Width: 640, Height: 480}
}

// NewProgram records a program.
func (r *Recorder) NewProgram(src parallax.ProgramSource) (parallax.Program, error) {
	if src.Name == r.FailProgram && r.FailProgram != "" {
		return nil, fmt.Errorf("compile %s: %w", src.Name, parallax.ErrInvalidProgram)
	}
	p := &Program{Source: src, Uniforms: make(map[string]any)}
	r.Programs = append(r.Programs, p)
	return p, nil
}

// NewTexture records a texture.
func (r *Recorder) NewTexture(img image.Image) (parallax.Texture, error) {
	if img == nil {
		return nil, parallax.ErrInvalidTexture
	}
	t := &Texture{ID: len(r.Textures), Bounds: img.Bounds()}
	r.Textures = append(r.Textures, t)
	return t, nil
}

// NewBuffer records a geometry buffer.
func (r *Recorder) NewBuffer(g *parallax.Geometry) (parallax.Buffer, error) {
	if g == nil {
		return nil, parallax.ErrInvalidGeometry
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	b := &Buffer{ID: len(r.Buffers), Geometry: g}
	r.Buffers = append(r.Buffers, b)
	return b, nil
}

// SetUniform stores a persistent uniform on a recorded program.
func (r *Recorder) SetUniform(p parallax.Program, name string, value any) error {
	prog, ok := p.(*Program)
	if !ok || !prog.Valid() {
		return parallax.ErrInvalidProgram
	}
	prog.Uniforms[name] = value
	return nil
}

// Viewport returns Width and Height.
func (r *Recorder) Viewport() (int, int) { return r.Width, r.Height }

// Clear records the clear color.
func (r *Recorder) Clear(c parallax.Color) { r.Clears = append(r.Clears, c) }

// Draw records call.
func (r *Recorder) Draw(call *parallax.DrawCall) error {
	if call.Node == r.FailDraw && r.FailDraw != "" {
		return errors.New("draw failed")
	}
	prog, ok := call.Program.(*Program)
	if !ok {
		return parallax.ErrInvalidProgram
	}
	u := maps.Clone(prog.Uniforms)
	maps.Copy(u, call.Uniforms)
	r.Draws = append(r.Draws, Draw{DrawCall: call, Uniforms: u})
	return nil
}

// Reset forgets recorded draws and clears, keeping resources.
func (r *Recorder) Reset() {
	r.Draws = r.Draws[:0]
	r.Clears = r.Clears[:0]
}

// DrawFor returns the last recorded draw of the node named name.
func (r *Recorder) DrawFor(name string) (Draw, bool) {
	for i := len(r.Draws) - 1; i >= 0; i-- {
		if r.Draws[i].Node == name {
			return r.Draws[i], true
		}
	}
	return Draw{}, false
}

// Image returns a w x h test image.
func Image(w, h int) image.Image {
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Resources is an in-memory parallax.Resources.
type Resources struct {
	Shaders map[string]string
	Images  map[string]image.Image
}

// NewResources returns the resources the comparison scene needs.
func NewResources() *Resources {
	return &Resources{
		Shaders: map[string]string{
			parallax.ResourceFragment:          "parallax",
			parallax.ResourceFragmentOcclusion: "parallax_occlusion",
		},
		Images: map[string]image.Image{
			parallax.ResourceTextureDiffuse: Image(4, 4),
			parallax.ResourceTextureNormal:  Image(4, 4),
			parallax.ResourceTextureHeight:  Image(4, 4),
		},
	}
}

// Shader returns the named shader source.
func (r *Resources) Shader(name string) (string, error) {
	s, ok := r.Shaders[name]
	if !ok {
		return "", fmt.Errorf("shader %q not found", name)
	}
	return s, nil
}

// Image returns the named image.
func (r *Resources) Image(name string) (image.Image, error) {
	img, ok := r.Images[name]
	if !ok {
		return nil, fmt.Errorf("image %q not found", name)
	}
	return img, nil
}
