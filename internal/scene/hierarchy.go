package scene

import (
	"github.com/Faultbox/posecraft/pkg/math"
)

// Kind tells how a hierarchy is posed.
type Kind int

const (
	// KindRigid is a set of named parts without a skeleton.
	KindRigid Kind = iota
	// KindRigged is a skinned asset with a bone skeleton.
	KindRigged
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	if k == KindRigged {
		return "rigged"
	}
	return "rigid"
}

// Hierarchy is the figure being posed.
type Hierarchy struct {
	// Root is an unnamed group that carries the figure-wide scale.
	Root   *Node
	Kind   Kind
	Source string

	// Bones lists skeleton joints for rigged hierarchies.
	Bones []*Node
	// Parts lists the posable parts of a rigid hierarchy.
	Parts []*Node
}

// NewHierarchy wraps the given top-level nodes in a fresh unnamed root.
func NewHierarchy(kind Kind, source string, top ...*Node) *Hierarchy {
	root := NewNode("")
	for _, n := range top {
		root.Add(n)
	}
	return &Hierarchy{Root: root, Kind: kind, Source: source}
}

// Traverse visits every node, parents before children.
func (h *Hierarchy) Traverse(fn func(*Node)) {
	if h == nil || h.Root == nil {
		return
	}
	h.Root.Traverse(fn)
}

// Named returns every node with a non-empty name, in traversal order.
func (h *Hierarchy) Named() []*Node {
	var out []*Node
	h.Traverse(func(n *Node) {
		if n.Name != "" {
			out = append(out, n)
		}
	})
	return out
}

// Find returns the first node with the given name.
func (h *Hierarchy) Find(name string) *Node {
	var found *Node
	h.Traverse(func(n *Node) {
		if found == nil && n.Name == name {
			found = n
		}
	})
	return found
}

// Len returns the number of named nodes.
func (h *Hierarchy) Len() int {
	return len(h.Named())
}

// Bounds is a world-space axis-aligned box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the box centre.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the diagonal length.
func (b Bounds) Size() float32 {
	return b.Max.Sub(b.Min).Length()
}

// Bounds computes the world-space box around every node below the root.
// Nodes with a shape contribute their scaled extent; others contribute
// their origin. ok is false when the hierarchy has no nodes besides the root.
func (h *Hierarchy) Bounds() (b Bounds, ok bool) {
	h.Traverse(func(n *Node) {
		if n == h.Root {
			return
		}
		for _, p := range nodeCorners(n) {
			if !ok {
				b = Bounds{Min: p, Max: p}
				ok = true
				continue
			}
			b.Min = b.Min.Min(p)
			b.Max = b.Max.Max(p)
		}
	})
	return b, ok
}

// nodeCorners returns the world-space corners of the node's primitive,
// or just its origin if it has none.
func nodeCorners(n *Node) []math.Vec3 {
	world := n.WorldMatrix()
	if n.Shape == ShapeNone {
		return []math.Vec3{world.Translation()}
	}
	half := n.Size.Scale(0.5)
	corners := make([]math.Vec3, 0, 8)
	for _, sx := range []float32{-1, 1} {
		for _, sy := range []float32{-1, 1} {
			for _, sz := range []float32{-1, 1} {
				local := math.Vec3{X: half.X * sx, Y: half.Y * sy, Z: half.Z * sz}
				corners = append(corners, world.TransformVec3(local))
			}
		}
	}
	return corners
}
