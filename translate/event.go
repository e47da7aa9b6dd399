// Package translate turns decoded controller input frames into
// edge-triggered keyboard and mouse events. The engine is pure state
// transformation: every input has defined behavior and nothing in this
// package can fail.
package translate

import "github.com/gipmap/gipmap/mapping"

// MouseButton identifies a mouse button in produced events.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	mouseButtonCount
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "invalid"
	}
}

// Event is one digital output event produced by the engine. The concrete
// types are KeyEvent, MouseButtonEvent and MouseMotionEvent.
type Event interface {
	isEvent()
}

// KeyEvent is a key transition.
type KeyEvent struct {
	Code    mapping.KeyCode
	Pressed bool
}

// MouseButtonEvent is a mouse button transition.
type MouseButtonEvent struct {
	Button  MouseButton
	Pressed bool
}

// MouseMotionEvent is the single flushed cursor delta for one input frame.
// Whether it is delivered as a relative delta or an absolute reposition is
// the consumer's concern.
type MouseMotionEvent struct {
	DX, DY float64
}

func (KeyEvent) isEvent()         {}
func (MouseButtonEvent) isEvent() {}
func (MouseMotionEvent) isEvent() {}
