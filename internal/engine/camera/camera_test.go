package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/posecraft/pkg/math"
)

func near(a, b math.Vec3) bool {
	return a.Distance(b) < 1e-3
}

func TestLookFromPosition(t *testing.T) {
	tests := []struct {
		name   string
		pos    math.Vec3
		target math.Vec3
	}{
		{"front", math.Vec3{Y: 1, Z: 3}, math.Vec3{Y: 1}},
		{"above front", math.Vec3{X: 1, Y: 2, Z: 2}, math.Vec3{Y: 0.5}},
		{"side", math.Vec3{X: -4}, math.Vec3{}},
		{"top down", math.Vec3{Y: 3, Z: 0.1}, math.Vec3{}},
	}

	c := NewOrbitCamera(45, 800, 600)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.LookFrom(tt.pos, tt.target)
			if got := c.Position(); !near(got, tt.pos) {
				t.Errorf("Position() = %v, want %v", got, tt.pos)
			}
			if c.Target != tt.target {
				t.Errorf("Target = %v, want %v", c.Target, tt.target)
			}
		})
	}
}

func TestPitchClamped(t *testing.T) {
	c := NewOrbitCamera(45, 800, 600)
	c.LookFrom(math.Vec3{Y: 5}, math.Vec3{})
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %v, want %v", c.Pitch, c.MaxPitch)
	}

	c.HandleDrag(0, -10000)
	if c.Pitch != -c.MaxPitch {
		t.Errorf("Pitch after drag = %v, want %v", c.Pitch, -c.MaxPitch)
	}
}

func TestHandleZoomLimits(t *testing.T) {
	c := NewOrbitCamera(45, 800, 600)
	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want %v", c.Distance, c.MinDistance)
	}
	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance = %v, want %v", c.Distance, c.MaxDistance)
	}
}

func TestProjectionOnlyChangesOnResize(t *testing.T) {
	c := NewOrbitCamera(45, 800, 600)
	before := c.ProjectionMatrix()

	c.HandleDrag(30, 10)
	c.LookFrom(math.Vec3{Z: 9}, math.Vec3{})
	if c.ProjectionMatrix() != before {
		t.Error("projection changed without a resize or FOV change")
	}

	c.SetViewport(1600, 600)
	if c.ProjectionMatrix() == before {
		t.Error("projection unchanged after resize")
	}
	w, h := c.Viewport()
	if w != 1600 || h != 600 {
		t.Errorf("Viewport() = %d x %d", w, h)
	}

	resized := c.ProjectionMatrix()
	c.SetViewport(0, 0)
	if c.ProjectionMatrix() != resized {
		t.Error("zero-size viewport changed the projection")
	}

	c.SetFOV(60)
	if c.FOV() != 60 || c.ProjectionMatrix() == resized {
		t.Error("SetFOV did not rebuild the projection")
	}
}

func TestRayThroughCenter(t *testing.T) {
	c := NewOrbitCamera(45, 800, 600)
	c.LookFrom(math.Vec3{Y: 1, Z: 4}, math.Vec3{Y: 1})

	r := c.Ray(400, 300)
	if !near(r.Direction, math.Vec3{Z: -1}) {
		t.Errorf("direction = %v, want (0, 0, -1)", r.Direction)
	}
	if gomath.Abs(float64(r.Origin.Y-1)) > 1e-3 {
		t.Errorf("origin = %v, want y=1", r.Origin)
	}

	// The ray from the centre pixel passes through the target.
	if _, hit := r.IntersectSphere(c.Target, 0.01); !hit {
		t.Error("centre ray misses the target")
	}
}
