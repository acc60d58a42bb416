package ebitendev

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/parallax"
)

// VertexStageNormal is the only vertex stage the device implements. It
// transforms positions by projection * view * model and hands the fragment
// program the world position in Custom0..2 and the world normal, encoded as
// n*0.5+0.5, in the vertex color.
const VertexStageNormal = parallax.VertexStageNormal

// minClipW drops triangles with a vertex at or behind the eye plane.
const minClipW = 1e-4

// buffer is uploaded geometry.
type buffer struct {
	geometry *parallax.Geometry
}

func (b *buffer) Valid() bool { return b != nil && b.geometry != nil }

// triangle is one projected triangle awaiting emission.
type triangle struct {
	i0, i1, i2 uint16
	depth      float32
}

// vertexStage projects g onto a width x height viewport. srcSize scales the
// texture coordinates to source pixels. Triangles are emitted far to near
// so a closed mesh hides its own back side.
func vertexStage(g *parallax.Geometry, proj, view, model mgl32.Mat4, width, height int, srcSize float32) ([]ebiten.Vertex, []uint32) {
	mvp := proj.Mul4(view).Mul4(model)
	normalMat := parallax.NormalMatrix(model)
	n := g.VertexCount()

	verts := make([]ebiten.Vertex, n)
	clipW := make([]float32, n)
	hw, hh := float32(width)/2, float32(height)/2
	for i := range n {
		p := mgl32.Vec4{g.Positions[3*i], g.Positions[3*i+1], g.Positions[3*i+2], 1}
		world := model.Mul4x1(p)
		clip := mvp.Mul4x1(p)
		clipW[i] = clip.W()

		nrm := normalMat.Mul3x1(mgl32.Vec3{g.Normals[3*i], g.Normals[3*i+1], g.Normals[3*i+2]})
		if nrm.Len() > 0 {
			nrm = nrm.Normalize()
		}

		v := ebiten.Vertex{
			SrcX:    g.TexCoords[2*i] * srcSize,
			SrcY:    g.TexCoords[2*i+1] * srcSize,
			ColorR:  nrm.X()*0.5 + 0.5,
			ColorG:  nrm.Y()*0.5 + 0.5,
			ColorB:  nrm.Z()*0.5 + 0.5,
			ColorA:  1,
			Custom0: world.X(),
			Custom1: world.Y(),
			Custom2: world.Z(),
		}
		if clip.W() > minClipW {
			v.DstX = (clip.X()/clip.W() + 1) * hw
			v.DstY = (1 - clip.Y()/clip.W()) * hh
		}
		verts[i] = v
	}

	tris := make([]triangle, 0, len(g.Indices)/3)
	for t := 0; t+2 < len(g.Indices); t += 3 {
		i0, i1, i2 := g.Indices[t], g.Indices[t+1], g.Indices[t+2]
		w0, w1, w2 := clipW[i0], clipW[i1], clipW[i2]
		if w0 <= minClipW || w1 <= minClipW || w2 <= minClipW {
			continue
		}
		tris = append(tris, triangle{i0, i1, i2, (w0 + w1 + w2) / 3})
	}
	sortTriangles(tris)

	indices := make([]uint32, 0, 3*len(tris))
	for _, t := range tris {
		indices = append(indices, uint32(t.i0), uint32(t.i1), uint32(t.i2))
	}
	return verts, indices
}

// sortTriangles orders triangles far to near with insertion order kept on
// ties.
func sortTriangles(tris []triangle) {
	slices.SortStableFunc(tris, func(a, b triangle) int {
		return cmp.Compare(b.depth, a.depth)
	})
}

// callDepth returns the clip w of the model origin, the sort key of a whole
// draw call.
func callDepth(proj, view, model mgl32.Mat4) float32 {
	return proj.Mul4(view).Mul4(model).Mul4x1(mgl32.Vec4{0, 0, 0, 1}).W()
}
