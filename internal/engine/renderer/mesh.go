package renderer

import (
	gomath "math"

	"github.com/Faultbox/posecraft/pkg/math"
)

// floatsPerVertex is position (3) + normal (3).
const floatsPerVertex = 6

// Vertices are unit primitives centred on the origin with extent 1 along
// each axis, so a node's Size is applied as a plain scale.

// BoxVertices returns the triangles of a unit cube.
func BoxVertices() []float32 {
	faces := []struct {
		normal math.Vec3
		u, v   math.Vec3
	}{
		{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{X: 1}, math.Vec3{Z: -1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.Vec3{Y: 1}},
	}

	out := make([]float32, 0, 6*6*floatsPerVertex)
	for _, f := range faces {
		c := f.normal.Scale(0.5)
		corner := func(su, sv float32) math.Vec3 {
			return c.Add(f.u.Scale(0.5 * su)).Add(f.v.Scale(0.5 * sv))
		}
		quad := []math.Vec3{
			corner(-1, -1), corner(1, -1), corner(1, 1),
			corner(-1, -1), corner(1, 1), corner(-1, 1),
		}
		for _, p := range quad {
			out = appendVertex(out, p, f.normal)
		}
	}
	return out
}

// PlaneVertices returns a unit quad in the XZ plane facing +Y.
func PlaneVertices() []float32 {
	n := math.Vec3{Y: 1}
	quad := []math.Vec3{
		{X: -0.5, Z: 0.5}, {X: 0.5, Z: 0.5}, {X: 0.5, Z: -0.5},
		{X: -0.5, Z: 0.5}, {X: 0.5, Z: -0.5}, {X: -0.5, Z: -0.5},
	}
	out := make([]float32, 0, len(quad)*floatsPerVertex)
	for _, p := range quad {
		out = appendVertex(out, p, n)
	}
	return out
}

// SphereVertices returns a UV sphere of diameter 1.
func SphereVertices(stacks, slices int) []float32 {
	point := func(i, j int) math.Vec3 {
		phi := gomath.Pi * float64(i) / float64(stacks)
		theta := 2 * gomath.Pi * float64(j) / float64(slices)
		return math.Vec3{
			X: float32(gomath.Sin(phi) * gomath.Cos(theta)),
			Y: float32(gomath.Cos(phi)),
			Z: float32(gomath.Sin(phi) * gomath.Sin(theta)),
		}
	}

	out := make([]float32, 0, stacks*slices*6*floatsPerVertex)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a, b := point(i, j), point(i+1, j)
			c, d := point(i+1, j+1), point(i, j+1)
			for _, p := range []math.Vec3{a, c, b, a, d, c} {
				out = appendVertex(out, p.Scale(0.5), p)
			}
		}
	}
	return out
}

func appendVertex(out []float32, p, n math.Vec3) []float32 {
	return append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
}
