// Package scene provides the posable node hierarchy: named nodes with local
// transforms, world-space composition and local-axis rotation.
package scene

import (
	"github.com/Faultbox/posecraft/pkg/math"
)

// Shape is the primitive a node is drawn with.
type Shape int

const (
	ShapeNone Shape = iota
	ShapeBox
	ShapeSphere
	ShapeCapsule
	ShapePlane
)

// String returns the shape name used in logs.
func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCapsule:
		return "capsule"
	case ShapePlane:
		return "plane"
	default:
		return "none"
	}
}

// Node is a posable element of a hierarchy.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation math.Euler
	Scale    math.Vec3

	// Drawing hints. Size is the full extent of the primitive along each
	// local axis before Scale is applied.
	Shape Shape
	Size  math.Vec3
	Color [3]float32

	// Bone is set for skeleton joints of a rigged asset.
	Bone bool

	parent   *Node
	children []*Node
}

// NewNode creates a node with unit scale and no rotation.
func NewNode(name string) *Node {
	return &Node{
		Name:  name,
		Scale: math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It is a no-op if child is not attached to n.
func (n *Node) Remove(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// LocalMatrix returns Translate * Rotate(XYZ) * Scale.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Translate(n.Position.X, n.Position.Y, n.Position.Z).
		Mul(n.Rotation.Mat4()).
		Mul(math.Scale(n.Scale.X, n.Scale.Y, n.Scale.Z))
}

// WorldMatrix composes the local matrices of the full ancestor chain.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().Translation()
}

// RotateOnAxis rotates the node about one of its local axes, composing
// with the current rotation. Angles are not wrapped.
func (n *Node) RotateOnAxis(axis math.Vec3, angle float32) {
	q := n.Rotation.Quat().Mul(math.QuatFromAxisAngle(axis, angle))
	n.Rotation = math.EulerFromQuat(q)
}

// RotateX rotates about the local X axis.
func (n *Node) RotateX(angle float32) {
	n.RotateOnAxis(math.AxisX, angle)
}

// RotateY rotates about the local Y axis.
func (n *Node) RotateY(angle float32) {
	n.RotateOnAxis(math.AxisY, angle)
}

// Traverse visits n and its descendants depth-first, parents before children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}
