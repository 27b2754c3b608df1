// Package posing turns pointer gestures on joint markers into node
// rotations.
package posing

import (
	"github.com/Faultbox/posecraft/internal/joints"
	"github.com/Faultbox/posecraft/pkg/math"
)

// Phase is the state of the drag state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
)

// String returns the phase name used in logs.
func (p Phase) String() string {
	if p == PhaseDragging {
		return "dragging"
	}
	return "idle"
}

// EventKind identifies a pointer event.
type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
	EventLeave
)

// Event is one pointer event in window pixel coordinates.
type Event struct {
	Kind EventKind
	X, Y float32

	// Pressure is in [0, 1] and only meaningful when HasPressure is set.
	Pressure    float32
	HasPressure bool
}

// Pos returns the pointer position.
func (ev Event) Pos() math.Vec2 {
	return math.Vec2{X: ev.X, Y: ev.Y}
}

// State is the drag session. The zero value is Idle.
type State struct {
	Phase  Phase
	Marker *joints.Marker
	// Last is the pointer position of the previous event.
	Last math.Vec2
}

// Active reports whether a drag session is in progress.
func (s State) Active() bool {
	return s.Phase == PhaseDragging
}

// Delta is the effect of one transition.
type Delta struct {
	// Marker is the dragged marker when Move is non-zero.
	Marker *joints.Marker
	// Move is the pointer movement in pixels since the last event.
	Move math.Vec2
	// Factor scales the base rotation speed.
	Factor float32

	Capture bool
	Release bool
}

// Rotates reports whether the delta changes a node rotation.
func (d Delta) Rotates() bool {
	return d.Marker != nil && d.Move != (math.Vec2{})
}

// PressureFactor returns the speed multiplier for an event. A zero reading
// counts as no pressure.
func PressureFactor(ev Event) float32 {
	if !ev.HasPressure || ev.Pressure == 0 {
		return 1
	}
	return 0.6 + 0.8*ev.Pressure
}

// Step is the drag state machine. hit is the marker under the pointer for
// EventDown and is ignored otherwise.
func Step(s State, ev Event, hit *joints.Marker) (State, Delta) {
	switch ev.Kind {
	case EventDown:
		if s.Active() || hit == nil {
			return s, Delta{}
		}
		return State{Phase: PhaseDragging, Marker: hit, Last: ev.Pos()}, Delta{Capture: true}

	case EventMove:
		if !s.Active() {
			return s, Delta{}
		}
		d := Delta{
			Marker: s.Marker,
			Move:   ev.Pos().Sub(s.Last),
			Factor: PressureFactor(ev),
		}
		s.Last = ev.Pos()
		return s, d

	case EventUp, EventLeave:
		return State{}, Delta{Release: true}
	}
	return s, Delta{}
}
