// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Event types for studio use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventPointerLeave
	EventKeyDown
	EventKeyUp
	EventPointerMove
	EventPointerDown
	EventPointerUp
	EventWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Mod    sdl.Keymod
	Width  int
	Height int

	// Pointer position in window pixels.
	X, Y   float32
	Button uint8

	// Pressure is set for touch and pen contacts.
	Pressure    float32
	HasPressure bool

	WheelY float32
}

// Input handles all input processing.
type Input struct {
	events        []Event
	width, height int
}

// New creates a new input handler for a window of the given size. The
// size is used to convert normalized touch coordinates to pixels.
func New(width, height int) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		width:  width,
		height: height,
	}
}

// Update polls SDL events and converts them to studio events.
// Returns true if the studio should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.convert(event) {
			return true
		}
	}

	return false
}

func (i *Input) convert(event sdl.Event) (quit bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
			i.width, i.height = int(e.Data1), int(e.Data2)
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  i.width,
				Height: i.height,
			})
		case sdl.WINDOWEVENT_LEAVE:
			i.events = append(i.events, Event{Type: EventPointerLeave})
		}

	case *sdl.KeyboardEvent:
		ev := Event{Key: e.Keysym.Scancode, Mod: sdl.Keymod(e.Keysym.Mod)}
		if e.Type == sdl.KEYDOWN {
			ev.Type = EventKeyDown
		} else {
			ev.Type = EventKeyUp
		}
		i.events = append(i.events, ev)

	case *sdl.MouseMotionEvent:
		// Touch input arrives as finger events with pressure.
		if e.Which == sdl.TOUCH_MOUSEID {
			return false
		}
		i.events = append(i.events, Event{
			Type: EventPointerMove,
			X:    float32(e.X),
			Y:    float32(e.Y),
		})

	case *sdl.MouseButtonEvent:
		if e.Which == sdl.TOUCH_MOUSEID {
			return false
		}
		ev := Event{
			X:      float32(e.X),
			Y:      float32(e.Y),
			Button: e.Button,
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			ev.Type = EventPointerDown
		} else {
			ev.Type = EventPointerUp
		}
		i.events = append(i.events, ev)

	case *sdl.MouseWheelEvent:
		y := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			y = -y
		}
		i.events = append(i.events, Event{Type: EventWheel, WheelY: y})

	case *sdl.TouchFingerEvent:
		ev := Event{
			X:           e.X * float32(i.width),
			Y:           e.Y * float32(i.height),
			Button:      sdl.BUTTON_LEFT,
			Pressure:    e.Pressure,
			HasPressure: true,
		}
		switch e.Type {
		case sdl.FINGERDOWN:
			ev.Type = EventPointerDown
		case sdl.FINGERUP:
			ev.Type = EventPointerUp
		default:
			ev.Type = EventPointerMove
		}
		i.events = append(i.events, ev)
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
