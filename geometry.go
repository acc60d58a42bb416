package parallax

import (
	"fmt"
	"math"
)

// Geometry is raw vertex data for one primitive shape: three position and
// normal components and two texture coordinates per vertex, plus triangle
// indices.
type Geometry struct {
	Positions []float32
	Normals   []float32
	TexCoords []float32
	Indices   []uint16
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Validate checks that the attribute arrays agree on the vertex count and
// that every index refers to an existing vertex.
func (g *Geometry) Validate() error {
	if len(g.Positions)%3 != 0 {
		return fmt.Errorf("positions length %d not a multiple of 3: %w", len(g.Positions), ErrInvalidGeometry)
	}
	n := g.VertexCount()
	if n > MaxVertices {
		return fmt.Errorf("%d vertices exceed the 16-bit index limit %d: %w", n, MaxVertices, ErrInvalidGeometry)
	}
	if len(g.Normals) != 3*n {
		return fmt.Errorf("normals length %d, want %d: %w", len(g.Normals), 3*n, ErrInvalidGeometry)
	}
	if len(g.TexCoords) != 2*n {
		return fmt.Errorf("texcoords length %d, want %d: %w", len(g.TexCoords), 2*n, ErrInvalidGeometry)
	}
	if len(g.Indices)%3 != 0 {
		return fmt.Errorf("index count %d not a multiple of 3: %w", len(g.Indices), ErrInvalidGeometry)
	}
	for i, idx := range g.Indices {
		if int(idx) >= n {
			return fmt.Errorf("index %d = %d out of range [0, %d): %w", i, idx, n, ErrInvalidGeometry)
		}
	}
	return nil
}

// MakeFloor returns a quad in the XY plane spanning [-w, w] x [-h, h] with
// its normal along +Z. Non-positive sizes default to 2.
func MakeFloor(w, h float32) *Geometry {
	if w <= 0 {
		w = 2
	}
	if h <= 0 {
		h = 2
	}
	return &Geometry{
		Positions: []float32{-w, -h, 0, w, -h, 0, w, h, 0, -w, h, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
		TexCoords: []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Indices:   []uint16{0, 1, 2, 2, 3, 0},
	}
}

// MakeRect returns a quad centered on the origin in the XY plane with the
// given full width and height. Non-positive sizes default to 1.
func MakeRect(w, h float32) *Geometry {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return MakeFloor(w/2, h/2)
}

// MaxVertices is the largest vertex count addressable by 16-bit indices.
const MaxVertices = 1 << 16

// MakeSphere returns a UV sphere. latBands and longBands are clamped to a
// minimum of 3, and the larger of the two is reduced until the sphere fits
// in MaxVertices.
func MakeSphere(radius float32, latBands, longBands int) *Geometry {
	latBands = max(latBands, 3)
	longBands = max(longBands, 3)
	for (latBands+1)*(longBands+1) > MaxVertices {
		if latBands > longBands {
			latBands--
		} else {
			longBands--
		}
	}

	n := (latBands + 1) * (longBands + 1)
	g := &Geometry{
		Positions: make([]float32, 0, 3*n),
		Normals:   make([]float32, 0, 3*n),
		TexCoords: make([]float32, 0, 2*n),
		Indices:   make([]uint16, 0, 6*latBands*longBands),
	}
	for lat := 0; lat <= latBands; lat++ {
		theta := float64(lat) * math.Pi / float64(latBands)
		sinTheta, cosTheta := math.Sincos(theta)
		for lon := 0; lon <= longBands; lon++ {
			phi := float64(lon) * 2 * math.Pi / float64(longBands)
			sinPhi, cosPhi := math.Sincos(phi)

			x := float32(cosPhi * sinTheta)
			y := float32(cosTheta)
			z := float32(sinPhi * sinTheta)
			u := 1 - float32(lon)/float32(longBands)
			v := 1 - float32(lat)/float32(latBands)

			g.Normals = append(g.Normals, x, y, z)
			g.TexCoords = append(g.TexCoords, u, v)
			g.Positions = append(g.Positions, radius*x, radius*y, radius*z)
		}
	}
	for lat := 0; lat < latBands; lat++ {
		for lon := 0; lon < longBands; lon++ {
			first := uint16(lat*(longBands+1) + lon)
			second := first + uint16(longBands) + 1
			g.Indices = append(g.Indices,
				first, second, first+1,
				second, second+1, first+1,
			)
		}
	}
	return g
}
