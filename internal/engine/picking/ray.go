// Package picking provides ray casting utilities for selecting objects
// under the pointer.
package picking

import (
	gomath "math"

	"github.com/Faultbox/posecraft/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// NDC converts pixel coordinates to normalized device coordinates (-1..1,
// Y up).
func NDC(screenX, screenY, viewportW, viewportH float32) (x, y float32) {
	return 2.0*screenX/viewportW - 1.0, 1.0 - 2.0*screenY/viewportH
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX, ndcY := NDC(screenX, screenY, viewportW, viewportH)

	// Unproject near and far points
	nearWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	return Ray{
		Origin:    nearWorld,
		Direction: farWorld.Sub(nearWorld).Normalize(),
	}
}

func unproject(inv math.Mat4, p math.Vec4) math.Vec3 {
	w := inv.MulVec4(p)
	if w[3] != 0 {
		w[0] /= w[3]
		w[1] /= w[3]
		w[2] /= w[3]
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// IntersectSphere tests the ray against a sphere.
// Returns the distance to the first intersection in front of the origin.
// If the ray starts inside the sphere, returns the exit distance.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (t float32, hit bool) {
	// |O + tD - C|^2 = r^2 with |D| = 1:
	// t^2 + 2b t + c = 0, b = D.(O-C), c = |O-C|^2 - r^2
	oc := r.Origin.Sub(center)
	b := r.Direction.Dot(oc)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := float32(gomath.Sqrt(float64(disc)))
	t0 := -b - sq
	t1 := -b + sq

	if t1 < 0 {
		return 0, false // Sphere entirely behind the origin
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}
