package parallax

import (
	"errors"
	"math"
	"testing"
)

func TestMakeFloor(t *testing.T) {
	g := MakeFloor(1, 1)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", g.VertexCount())
	}
	want := []uint16{0, 1, 2, 2, 3, 0}
	for i, idx := range want {
		if g.Indices[i] != idx {
			t.Errorf("Indices[%d] = %d, want %d", i, g.Indices[i], idx)
		}
	}
	for i := 0; i < len(g.Normals); i += 3 {
		if g.Normals[i+2] != 1 {
			t.Errorf("normal %d = %v, want +Z", i/3, g.Normals[i:i+3])
		}
	}
}

func TestMakeFloorDefaults(t *testing.T) {
	g := MakeFloor(0, -1)
	if g.Positions[0] != -2 || g.Positions[1] != -2 || g.Positions[6] != 2 {
		t.Errorf("default floor spans %v, want [-2,2]", g.Positions)
	}
}

func TestMakeRect(t *testing.T) {
	g := MakeRect(3, 1)
	if g.Positions[0] != -1.5 || g.Positions[1] != -0.5 {
		t.Errorf("rect corner = (%v, %v), want (-1.5, -0.5)", g.Positions[0], g.Positions[1])
	}
}

func TestMakeSphere(t *testing.T) {
	g := MakeSphere(0.2, 10, 10)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if g.VertexCount() != 121 {
		t.Errorf("VertexCount = %d, want 121", g.VertexCount())
	}
	if len(g.Indices) != 600 {
		t.Errorf("indices = %d, want 600", len(g.Indices))
	}
	for i := 0; i < len(g.Positions); i += 3 {
		x, y, z := g.Positions[i], g.Positions[i+1], g.Positions[i+2]
		if r := math.Sqrt(float64(x*x + y*y + z*z)); math.Abs(r-0.2) > 1e-5 {
			t.Fatalf("vertex %d at radius %v, want 0.2", i/3, r)
		}
	}
}

func TestMakeSphereClampsBands(t *testing.T) {
	g := MakeSphere(1, 1, 0)
	if g.VertexCount() != 16 {
		t.Errorf("VertexCount = %d, want 16", g.VertexCount())
	}
}

func TestMakeSphereFitsSixteenBitIndices(t *testing.T) {
	g := MakeSphere(1, 300, 300)
	n := g.VertexCount()
	if n > MaxVertices {
		t.Fatalf("VertexCount = %d, want <= %d", n, MaxVertices)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// The last quad ends on the last vertex; a wrapped index would not.
	if got := int(g.Indices[len(g.Indices)-2]); got != n-1 {
		t.Errorf("last quad corner = %d, want %d", got, n-1)
	}
	for i := 0; i < len(g.Indices); i += 3 {
		a, b, c := int(g.Indices[i]), int(g.Indices[i+1]), int(g.Indices[i+2])
		if max(a, b, c)-min(a, b, c) > n/2 {
			t.Fatalf("triangle %d = [%d %d %d] spans a wrapped index", i/3, a, b, c)
		}
	}
}

func TestGeometryValidate(t *testing.T) {
	big := MaxVertices + 1
	tests := []struct {
		name string
		g    Geometry
	}{
		{"positions", Geometry{Positions: []float32{0, 0}}},
		{"normals", Geometry{Positions: []float32{0, 0, 0}, TexCoords: []float32{0, 0}}},
		{"texcoords", Geometry{Positions: []float32{0, 0, 0}, Normals: []float32{0, 0, 1}}},
		{"index count", Geometry{
			Positions: []float32{0, 0, 0}, Normals: []float32{0, 0, 1}, TexCoords: []float32{0, 0},
			Indices: []uint16{0, 0},
		}},
		{"index range", Geometry{
			Positions: []float32{0, 0, 0}, Normals: []float32{0, 0, 1}, TexCoords: []float32{0, 0},
			Indices: []uint16{0, 0, 1},
		}},
		{"vertex count", Geometry{
			Positions: make([]float32, 3*big), Normals: make([]float32, 3*big), TexCoords: make([]float32, 2*big),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.g.Validate(); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("Validate = %v, want ErrInvalidGeometry", err)
			}
		})
	}
}
