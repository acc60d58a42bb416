// Package assets loads the shader sources and textures the parallax demo
// needs, either from the embedded defaults or from a directory on disk.
//
// Loading is all-or-nothing: Load returns either every resource of a
// manifest or the first error.
package assets

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"maps"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// Embedded holds the default Kage programs and textures.
//
//go:embed shaders/*.kage textures/*.png
var Embedded embed.FS

// ErrNotFound is returned for a resource name that was not loaded.
var ErrNotFound = errors.New("assets: resource not found")

// Kind selects how a resource file is decoded.
type Kind uint8

const (
	KindShader Kind = iota // UTF-8 program source
	KindImage              // PNG, JPEG, BMP or WebP image
)

func (k Kind) String() string {
	switch k {
	case KindShader:
		return "shader"
	case KindImage:
		return "image"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Descriptor locates one resource inside the loader's file system.
type Descriptor struct {
	Kind Kind
	Path string
}

// Manifest maps logical resource names to descriptors.
type Manifest map[string]Descriptor

// DefaultManifest returns the resources of the comparison scene, laid out as
// in Embedded.
func DefaultManifest() Manifest {
	return Manifest{
		"fs":              {KindShader, "shaders/parallax.kage"},
		"fs_occlusion":    {KindShader, "shaders/parallax_occlusion.kage"},
		"texture_diffuse": {KindImage, "textures/wood.png"},
		"texture_normal":  {KindImage, "textures/normal.png"},
		"texture_height":  {KindImage, "textures/disp.png"},
	}
}

// Loader reads a Manifest from FS.
type Loader struct {
	FS  fs.FS
	Log *zap.Logger
	// Limit caps the number of files read at once. Zero means no limit.
	Limit int
}

// Load reads every entry of m concurrently. The first failure cancels the
// remaining reads and is returned; no partial result is kept.
func (l *Loader) Load(ctx context.Context, m Manifest) (*Resources, error) {
	if l.FS == nil {
		return nil, errors.New("assets: loader has no file system")
	}
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	res := &Resources{
		shaders: make(map[string]string),
		images:  make(map[string]image.Image),
	}
	var mu sync.Mutex

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	if l.Limit > 0 {
		g.SetLimit(l.Limit)
	}
	// Sorted for deterministic scheduling and log order.
	for _, name := range slices.Sorted(maps.Keys(m)) {
		d := m[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			switch d.Kind {
			case KindShader:
				src, err := fs.ReadFile(l.FS, d.Path)
				if err != nil {
					return fmt.Errorf("load %s %q: %w", d.Kind, name, err)
				}
				mu.Lock()
				res.shaders[name] = string(src)
				mu.Unlock()
			case KindImage:
				img, err := decodeImage(l.FS, d.Path)
				if err != nil {
					return fmt.Errorf("load %s %q: %w", d.Kind, name, err)
				}
				mu.Lock()
				res.images[name] = img
				mu.Unlock()
			default:
				return fmt.Errorf("load %q: unknown kind %v", name, d.Kind)
			}
			log.Debug("resource loaded", zap.String("name", name), zap.Stringer("kind", d.Kind), zap.String("path", d.Path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("resources loaded", zap.Int("count", len(m)), zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func decodeImage(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("decode %s: empty %s image", path, format)
	}
	return img, nil
}

// Resources is the result of a successful Load. It implements
// parallax.Resources.
type Resources struct {
	shaders map[string]string
	images  map[string]image.Image
}

// Shader returns the program source loaded under name.
func (r *Resources) Shader(name string) (string, error) {
	src, ok := r.shaders[name]
	if !ok {
		return "", fmt.Errorf("shader %q: %w", name, ErrNotFound)
	}
	return src, nil
}

// Image returns the image loaded under name.
func (r *Resources) Image(name string) (image.Image, error) {
	img, ok := r.images[name]
	if !ok {
		return nil, fmt.Errorf("image %q: %w", name, ErrNotFound)
	}
	return img, nil
}

// Len returns the number of loaded resources.
func (r *Resources) Len() int {
	return len(r.shaders) + len(r.images)
}
