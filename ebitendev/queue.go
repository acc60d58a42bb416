package ebitendev

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawCommand is one queued DrawTrianglesShader32 call.
type drawCommand struct {
	node     string
	vertices []ebiten.Vertex
	indices  []uint32
	shader   *ebiten.Shader
	uniforms map[string]any
	images   [4]*ebiten.Image

	depth     float32 // clip w, larger is farther
	treeOrder int
}

// commandQueue collects one frame of draw calls. Ebitengine has no depth
// buffer, so commands are submitted far to near after a stable sort.
type commandQueue struct {
	commands []drawCommand
}

func (q *commandQueue) push(cmd drawCommand) {
	cmd.treeOrder = len(q.commands)
	q.commands = append(q.commands, cmd)
}

func (q *commandQueue) reset() {
	clear(q.commands)
	q.commands = q.commands[:0]
}

// sort orders the queue far to near. Commands at equal depth keep the order
// they were pushed in, which is scene tree order.
func (q *commandQueue) sort() {
	slices.SortStableFunc(q.commands, func(a, b drawCommand) int {
		return cmp.Or(
			cmp.Compare(b.depth, a.depth),
			cmp.Compare(a.treeOrder, b.treeOrder),
		)
	})
}
