package posing

import (
	"go.uber.org/zap"

	"github.com/Faultbox/posecraft/internal/engine/picking"
	"github.com/Faultbox/posecraft/internal/joints"
	"github.com/Faultbox/posecraft/internal/logger"
)

// DefaultSpeed is the rotation in radians per pixel of pointer movement.
const DefaultSpeed = 0.005

// RayCaster builds a world ray from window pixel coordinates.
type RayCaster interface {
	Ray(x, y float32) picking.Ray
}

// Picker finds the marker hit by a ray.
type Picker interface {
	Pick(ray picking.Ray) (*joints.Marker, bool)
}

// Capturer keeps pointer events flowing to the window while a drag is
// active, even outside its bounds.
type Capturer interface {
	Capture()
	Release()
}

// Controller owns the single drag session.
type Controller struct {
	caster   RayCaster
	picker   Picker
	capturer Capturer
	speed    float32
	state    State
	log      *zap.Logger
}

// NewController creates an idle controller. capturer may be nil.
func NewController(caster RayCaster, picker Picker, capturer Capturer, speed float32) *Controller {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Controller{
		caster:   caster,
		picker:   picker,
		capturer: capturer,
		speed:    speed,
		log:      logger.Named("posing"),
	}
}

// State returns the current drag session.
func (c *Controller) State() State {
	return c.state
}

// Handle feeds one pointer event through the state machine and applies
// its effect.
func (c *Controller) Handle(ev Event) {
	var hit *joints.Marker
	if ev.Kind == EventDown && !c.state.Active() {
		if m, ok := c.picker.Pick(c.caster.Ray(ev.X, ev.Y)); ok {
			hit = m
		}
	}

	prev := c.state
	next, d := Step(c.state, ev, hit)
	c.state = next

	if d.Capture {
		c.log.Debug("drag start", zap.String("marker", next.Marker.Name))
		if c.capturer != nil {
			c.capturer.Capture()
		}
	}
	if d.Rotates() {
		c.apply(d)
	}
	if d.Release && prev.Active() {
		c.log.Debug("drag end", zap.String("marker", prev.Marker.Name))
		if c.capturer != nil {
			c.capturer.Release()
		}
	}
}

// PointerDown starts a drag if a marker is under the pointer.
func (c *Controller) PointerDown(x, y float32) {
	c.Handle(Event{Kind: EventDown, X: x, Y: y})
}

// PointerMove rotates the dragged node.
func (c *Controller) PointerMove(x, y float32) {
	c.Handle(Event{Kind: EventMove, X: x, Y: y})
}

// PointerUp ends the drag.
func (c *Controller) PointerUp() {
	c.Handle(Event{Kind: EventUp})
}

// PointerLeave ends the drag when the pointer leaves the window.
func (c *Controller) PointerLeave() {
	c.Handle(Event{Kind: EventLeave})
}

// Reset drops any drag session without touching node rotations. Called
// when the hierarchy the markers point into is replaced.
func (c *Controller) Reset() {
	if c.state.Active() && c.capturer != nil {
		c.capturer.Release()
	}
	c.state = State{}
}

func (c *Controller) apply(d Delta) {
	node := d.Marker.Node
	if node == nil {
		return
	}
	speed := c.speed * d.Factor
	node.RotateX(-d.Move.Y * speed)
	node.RotateY(d.Move.X * speed)
}
