package translate

import "github.com/gipmap/gipmap/mapping"

// State is the per-session snapshot the engine reads and updates on every
// frame. It is owned by a single goroutine; there is no locking.
//
// The held-key record serves two purposes: duplicate suppression (a stick
// and a button mapped to the same key can never disagree about whether it
// is down) and the guaranteed release-everything drain on shutdown. A key
// left pressed after the process exits is a user-visible failure, so the
// drain is a correctness requirement, not cleanup convenience.
type State struct {
	held      map[mapping.KeyCode]bool
	mouseHeld [mouseButtonCount]bool

	prevButtons uint16

	// Previous trigger levels, stored after un-swapping the wire bytes.
	prevLeftTrigger  uint8
	prevRightTrigger uint8

	prevLeftX, prevLeftY   int16
	prevRightX, prevRightY int16

	pendingDX, pendingDY float64
}

// NewState returns a zeroed session state: nothing held, no pending delta.
func NewState() *State {
	return &State{held: make(map[mapping.KeyCode]bool)}
}

// KeyHeld reports whether the engine currently considers code pressed.
func (s *State) KeyHeld(code mapping.KeyCode) bool {
	return s.held[code]
}

// MouseButtonHeld reports whether the engine currently considers btn pressed.
func (s *State) MouseButtonHeld(btn MouseButton) bool {
	return btn < mouseButtonCount && s.mouseHeld[btn]
}

func (s *State) setKey(code mapping.KeyCode, pressed bool) {
	if pressed {
		s.held[code] = true
	} else {
		delete(s.held, code)
	}
}

func (s *State) setMouseButton(btn MouseButton, pressed bool) {
	s.mouseHeld[btn] = pressed
}
