// Package camera provides the perspective orbit camera used to view and
// pick the figure.
package camera

import (
	gomath "math"

	"github.com/Faultbox/posecraft/internal/engine/picking"
	"github.com/Faultbox/posecraft/pkg/math"
)

const (
	Near = 0.1
	Far  = 200.0
)

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from target
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	fov           float32 // Vertical field of view, degrees
	width, height int
	projection    math.Mat4
}

// NewOrbitCamera creates a camera looking at a standing figure from the
// front.
func NewOrbitCamera(fov float32, width, height int) *OrbitCamera {
	c := &OrbitCamera{
		MinDistance:     0.2,
		MaxDistance:     50.0,
		MaxPitch:        1.55,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		fov:             fov,
		width:           width,
		height:          height,
	}
	c.LookFrom(math.Vec3{Y: 1.5, Z: 3}, math.Vec3{})
	c.updateProjection()
	return c
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Cos(float64(c.Yaw)))

	return c.Target.Add(math.Vec3{X: x, Y: y, Z: z})
}

// LookFrom places the camera at pos looking at target. Distance limits are
// not applied; pitch is clamped.
func (c *OrbitCamera) LookFrom(pos, target math.Vec3) {
	c.Target = target
	off := pos.Sub(target)
	c.Distance = off.Length()
	if c.Distance == 0 {
		c.Distance = c.MinDistance
		c.Pitch, c.Yaw = 0, 0
		return
	}
	horiz := gomath.Hypot(float64(off.X), float64(off.Z))
	c.Pitch = float32(gomath.Atan2(float64(off.Y), horiz))
	c.Yaw = float32(gomath.Atan2(float64(off.X), float64(off.Z)))
	c.clampPitch()
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Target, up)
}

// ProjectionMatrix returns the cached projection.
func (c *OrbitCamera) ProjectionMatrix() math.Mat4 {
	return c.projection
}

// ViewProjection returns projection * view.
func (c *OrbitCamera) ViewProjection() math.Mat4 {
	return c.projection.Mul(c.ViewMatrix())
}

// FOV returns the vertical field of view in degrees.
func (c *OrbitCamera) FOV() float32 {
	return c.fov
}

// Viewport returns the viewport size in pixels.
func (c *OrbitCamera) Viewport() (width, height int) {
	return c.width, c.height
}

// SetFOV changes the vertical field of view and rebuilds the projection.
func (c *OrbitCamera) SetFOV(deg float32) {
	c.fov = deg
	c.updateProjection()
}

// SetViewport records a new drawable size. Called on window resize.
func (c *OrbitCamera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	c.updateProjection()
}

func (c *OrbitCamera) updateProjection() {
	aspect := float32(1)
	if c.height > 0 {
		aspect = float32(c.width) / float32(c.height)
	}
	fovRad := c.fov * gomath.Pi / 180
	c.projection = math.Perspective(fovRad, aspect, Near, Far)
}

// Ray returns the world-space ray under the given window pixel.
func (c *OrbitCamera) Ray(x, y float32) picking.Ray {
	inv := c.ViewProjection().Inverse()
	return picking.ScreenToRay(x, y, float32(c.width), float32(c.height), inv)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.clampPitch()
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

func (c *OrbitCamera) clampPitch() {
	if c.Pitch < -c.MaxPitch {
		c.Pitch = -c.MaxPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}
