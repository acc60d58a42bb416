package parallax

import "github.com/go-gl/mathgl/mgl32"

// TransformNode multiplies the incoming model matrix by its own matrix for
// its subtree.
type TransformNode struct {
	Group
	matrix mgl32.Mat4
}

// NewTransformNode creates a transform node with matrix m.
func NewTransformNode(name string, m mgl32.Mat4, children ...Node) *TransformNode {
	n := &TransformNode{matrix: m}
	n.init(name, children)
	return n
}

// Matrix returns the node's local matrix.
func (n *TransformNode) Matrix() mgl32.Mat4 {
	return n.matrix
}

// SetMatrix replaces the node's local matrix. Used to animate the node
// between frames.
func (n *TransformNode) SetMatrix(m mgl32.Mat4) {
	n.matrix = m
}

// Render composes the model matrix and renders the subtree.
func (n *TransformNode) Render(ctx *Context) error {
	prev := ctx.Model
	ctx.Model = prev.Mul4(n.matrix)
	defer func() { ctx.Model = prev }()
	return n.renderChildren(ctx)
}

// Transform describes a local transform by its components.
// Rotations are in degrees; a zero Scale means 1.
//
// Composition order:
//
//	Translate * RotateX * RotateY * RotateZ * Scale
type Transform struct {
	Translate mgl32.Vec3
	RotateX   float32
	RotateY   float32
	RotateZ   float32
	Scale     float32
}

// Matrix returns the composed matrix.
func (t Transform) Matrix() mgl32.Mat4 {
	m := mgl32.Translate3D(t.Translate[0], t.Translate[1], t.Translate[2])
	if t.RotateX != 0 {
		m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.RotateX)))
	}
	if t.RotateY != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.RotateY)))
	}
	if t.RotateZ != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.RotateZ)))
	}
	if t.Scale != 0 && t.Scale != 1 {
		m = m.Mul4(mgl32.Scale3D(t.Scale, t.Scale, t.Scale))
	}
	return m
}

// Translation returns the translation column of m.
func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}
