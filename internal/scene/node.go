// Package scene provides the renderable node hierarchy: the star, per-body
// groups with mesh/label/ring children, orbit guides and the starfield
// backdrop. Nodes form a tree by construction; parent-relative positions are
// resolved top-down once per frame.
package scene

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-helios/internal/astro"
)

// ErrAttach indicates an attach that would break the tree shape.
var ErrAttach = errors.New("scene: invalid attach")

// Kind tells the rasterizer how to draw a node.
type Kind int

const (
	KindGroup Kind = iota
	KindMesh
	KindLabel
	KindRing
	KindOrbitGuide
	KindStarfield
)

// SurfaceFunc shades a mesh procedurally: surface coordinate (u, v) in
// [-1, 1] across the disc and elapsed simulation time t.
type SurfaceFunc func(u, v, t float64) colorful.Color

// Appearance is the visual state of a node. The bloom compositor swaps this
// wholesale during the extract pass, so everything the rasterizer reads to
// draw a node must live here.
type Appearance struct {
	Glyph   rune
	Color   colorful.Color
	Surface SurfaceFunc // nil for flat-colored nodes
}

// Blackout is the fully unlit appearance substituted for masked nodes.
func Blackout() Appearance {
	return Appearance{Glyph: ' '}
}

// Node is one element of the scene tree.
type Node struct {
	Name       string
	Kind       Kind
	Local      astro.Vec3 // position relative to parent
	World      astro.Vec3 // resolved by ResolveWorld
	Appearance Appearance
	Bloom      bool // participates in the bloom pass
	Visible    bool
	Radius     float64 // mesh/ring/guide radius, scene units
	Text       string  // label text

	parent   *Node
	children []*Node
}

// New creates a detached node.
func New(name string, kind Kind) *Node {
	return &Node{Name: name, Kind: kind, Visible: true}
}

// Attach adds child under n. It refuses a child that already has a parent
// and refuses any attach that would create a cycle, so the scene stays a
// tree by construction.
func (n *Node) Attach(child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrAttach)
	}
	if child.parent != nil {
		return fmt.Errorf("%w: %q already has parent %q", ErrAttach, child.Name, child.parent.Name)
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("%w: %q is an ancestor of %q", ErrAttach, child.Name, n.Name)
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// Detach removes child from n. Returns false if child is not a direct child.
func (n *Node) Detach(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children in attach order.
func (n *Node) Children() []*Node {
	return n.children
}

// Walk visits n and every descendant in pre-order. Returning false from fn
// skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// ResolveWorld composes parent-relative positions top-down so that moving a
// parent implicitly carries its subtree (this is how the moon rides its
// host body).
func (n *Node) ResolveWorld() {
	if n.parent == nil {
		n.World = n.Local
	} else {
		n.World = n.parent.World.Add(n.Local)
	}
	for _, c := range n.children {
		c.ResolveWorld()
	}
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) bool {
		total++
		return true
	})
	return total
}
