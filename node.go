package parallax

import "fmt"

// Node is the fundamental scene graph element. Every node kind embeds a
// [Group], which owns the node's ordered children.
//
// Render applies the node's contribution to ctx, renders the children in
// insertion order and restores ctx before returning. The first error aborts
// the traversal.
type Node interface {
	Render(ctx *Context) error
	Name() string
	Children() []Node

	group() *Group
}

// Group owns an ordered list of children and contributes no state of its
// own. It is embedded by every node kind and can be used on its own to
// collect siblings.
type Group struct {
	name     string
	parent   *Group
	children []Node
	leaf     bool
}

// NewGroup creates a group node with the given children.
func NewGroup(name string, children ...Node) *Group {
	g := &Group{}
	g.init(name, children)
	return g
}

func (g *Group) init(name string, children []Node) {
	g.name = name
	for _, child := range children {
		g.AddChild(child)
	}
}

func (g *Group) group() *Group { return g }

// Name returns the node's name.
func (g *Group) Name() string { return g.name }

// Render renders the children.
func (g *Group) Render(ctx *Context) error {
	return g.renderChildren(ctx)
}

// renderChildren renders every child in insertion order and stops at the
// first error.
func (g *Group) renderChildren(ctx *Context) error {
	for _, child := range g.children {
		if err := child.Render(ctx); err != nil {
			return err
		}
	}
	return nil
}

// --- Tree construction ---

// AddChild appends child to this node's children.
// Panics if child is nil, already has a parent, is an ancestor of this node
// (cycle), or if this node is a leaf.
func (g *Group) AddChild(child Node) {
	if child == nil {
		panic("parallax: cannot add nil child")
	}
	if g.leaf {
		panic(fmt.Sprintf("parallax: cannot add children to leaf node %q", g.name))
	}
	c := child.group()
	if c.parent != nil {
		panic(fmt.Sprintf("parallax: node %q already has a parent", c.name))
	}
	if isAncestor(c, g) {
		panic("parallax: adding child would create a cycle")
	}
	c.parent = g
	g.children = append(g.children, child)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (g *Group) Children() []Node {
	return g.children
}

// NumChildren returns the number of children.
func (g *Group) NumChildren() int {
	return len(g.children)
}

// ChildAt returns the child at the given index.
func (g *Group) ChildAt(index int) Node {
	return g.children[index]
}

// HasParent reports whether the node is owned by another node.
func (g *Group) HasParent() bool {
	return g.parent != nil
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Group) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// Walk calls fn for n and every descendant in pre-order. Returning false from
// fn skips that node's children.
func Walk(n Node, fn func(n Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children() {
		walk(child, depth+1, fn)
	}
}

// Find returns the first node named name in pre-order, or nil.
func Find(root Node, name string) Node {
	var found Node
	Walk(root, func(n Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Name() == name {
			found = n
			return false
		}
		return true
	})
	return found
}
