package translate

import (
	"math"

	"github.com/gipmap/gipmap/gip"
	"github.com/gipmap/gipmap/mapping"
)

// baseMouseSpeed scales curved, sensitivity-weighted stick deflection into
// cursor pixels per input frame.
const baseMouseSpeed = 15.0

// maxAxis is the largest representable stick magnitude.
const maxAxis = 32767.0

// mappedButtons fixes the emission order of button-derived events.
var mappedButtons = []uint16{
	gip.ButtonA, gip.ButtonB, gip.ButtonX, gip.ButtonY,
	gip.ButtonLB, gip.ButtonRB, gip.ButtonLS, gip.ButtonRS,
	gip.ButtonView, gip.ButtonMenu,
	gip.ButtonDPadUp, gip.ButtonDPadDown, gip.ButtonDPadLeft, gip.ButtonDPadRight,
}

// Engine converts input frames into edge-triggered events against a
// compiled keymap. All methods must be called from a single goroutine.
type Engine struct {
	keymap *mapping.Keymap
	state  *State
}

// NewEngine returns an engine with fresh session state.
func NewEngine(km *mapping.Keymap) *Engine {
	return &Engine{keymap: km, state: NewState()}
}

// State exposes the session state for inspection (held keys, shutdown
// bookkeeping). Callers must not mutate it concurrently with Translate.
func (e *Engine) State() *State {
	return e.state
}

// Translate processes one input frame and returns the events it produces,
// in order: button transitions, trigger transitions, stick-derived key
// transitions, then at most one flushed motion event. Identical
// consecutive frames produce no events after the first.
func (e *Engine) Translate(in *gip.InputPacket) []Event {
	var events []Event
	e.buttons(in.Buttons, &events)
	e.triggers(in.LeftTrigger, in.RightTrigger, &events)
	e.stick(&e.keymap.Left, in.LeftStickX, in.LeftStickY, &events)
	e.stick(&e.keymap.Right, in.RightStickX, in.RightStickY, &events)
	e.state.prevLeftX, e.state.prevLeftY = in.LeftStickX, in.LeftStickY
	e.state.prevRightX, e.state.prevRightY = in.RightStickX, in.RightStickY
	e.flushMotion(&events)
	return events
}

// Drain releases everything currently held: one key-up per held key and
// one button-up per held mouse button. It must run on every exit path.
func (e *Engine) Drain() []Event {
	var events []Event
	for code, held := range e.state.held {
		if held {
			events = append(events, KeyEvent{Code: code, Pressed: false})
		}
	}
	e.state.held = make(map[mapping.KeyCode]bool)
	for b := MouseButton(0); b < mouseButtonCount; b++ {
		if e.state.mouseHeld[b] {
			events = append(events, MouseButtonEvent{Button: b, Pressed: false})
			e.state.mouseHeld[b] = false
		}
	}
	return events
}

func (e *Engine) buttons(buttons uint16, events *[]Event) {
	for _, mask := range mappedButtons {
		code, ok := e.keymap.Buttons[mask]
		if !ok {
			continue
		}
		pressed := buttons&mask != 0
		was := e.state.prevButtons&mask != 0
		if pressed == was {
			continue
		}
		*events = append(*events, KeyEvent{Code: code, Pressed: pressed})
		e.state.setKey(code, pressed)
	}
	e.state.prevButtons = buttons
}

func (e *Engine) triggers(rawLeft, rawRight uint8, events *[]Event) {
	// The wire carries the trigger bytes in swapped positions; un-swap
	// before anything looks at them. Preserved from hardware capture, do
	// not "fix" without re-verifying against a real device.
	left, right := rawRight, rawLeft

	e.trigger(&e.keymap.LeftTrigger, left, e.state.prevLeftTrigger, MouseLeft, events)
	e.trigger(&e.keymap.RightTrigger, right, e.state.prevRightTrigger, MouseRight, events)

	e.state.prevLeftTrigger = left
	e.state.prevRightTrigger = right
}

func (e *Engine) trigger(cfg *mapping.TriggerConfig, level, prev uint8, btn MouseButton, events *[]Event) {
	threshold := e.keymap.TriggerThreshold
	pressed := level > threshold
	was := prev > threshold
	if pressed == was {
		return
	}
	switch cfg.Mode {
	case mapping.TriggerMouse:
		*events = append(*events, MouseButtonEvent{Button: btn, Pressed: pressed})
		e.state.setMouseButton(btn, pressed)
	case mapping.TriggerKey:
		*events = append(*events, KeyEvent{Code: cfg.Key, Pressed: pressed})
		e.state.setKey(cfg.Key, pressed)
	case mapping.TriggerDisabled:
	}
}

func (e *Engine) stick(cfg *mapping.StickConfig, rawX, rawY int16, events *[]Event) {
	// The reported axis pair is transposed relative to the stick's
	// physical up/down and left/right; un-swap before applying semantics.
	x, y := applyDeadzone(rawY, rawX, cfg.Deadzone)

	switch cfg.Mode {
	case mapping.StickWASD, mapping.StickArrows:
		e.stickDigital(cfg, x, y, events)
	case mapping.StickMouse:
		e.stickMouse(cfg, x, y)
	case mapping.StickDisabled:
	}
}

func (e *Engine) stickDigital(cfg *mapping.StickConfig, x, y int16, events *[]Event) {
	nx := float64(x) / maxAxis
	ny := float64(y) / maxAxis

	// All four directions are evaluated independently; diagonal input
	// holds two keys at once.
	e.edgeKey(cfg.Up, ny > cfg.DigitalThreshold, events)
	e.edgeKey(cfg.Down, ny < -cfg.DigitalThreshold, events)
	e.edgeKey(cfg.Left, nx < -cfg.DigitalThreshold, events)
	e.edgeKey(cfg.Right, nx > cfg.DigitalThreshold, events)
}

// edgeKey emits a key transition only when the desired state differs from
// the shared held-key record, so sticks and buttons can never disagree
// about ownership of a key code.
func (e *Engine) edgeKey(code mapping.KeyCode, active bool, events *[]Event) {
	if e.state.held[code] == active {
		return
	}
	*events = append(*events, KeyEvent{Code: code, Pressed: active})
	e.state.setKey(code, active)
}

func (e *Engine) stickMouse(cfg *mapping.StickConfig, x, y int16) {
	nx := float64(x) / maxAxis
	// Pushing up must move the cursor up.
	ny := -float64(y) / maxAxis

	dx := responseCurve(nx, cfg.Curve) * cfg.Sensitivity * baseMouseSpeed
	dy := responseCurve(ny, cfg.Curve) * cfg.Sensitivity * baseMouseSpeed

	e.state.pendingDX += dx
	e.state.pendingDY += dy
}

// flushMotion emits the accumulated delta as a single motion event and
// resets the accumulator. At most one motion event leaves the engine per
// input frame no matter how many sticks feed the accumulator.
func (e *Engine) flushMotion(events *[]Event) {
	if e.state.pendingDX == 0 && e.state.pendingDY == 0 {
		return
	}
	*events = append(*events, MouseMotionEvent{DX: e.state.pendingDX, DY: e.state.pendingDY})
	e.state.pendingDX = 0
	e.state.pendingDY = 0
}

// responseCurve applies a sign-preserving power curve: fine control near
// center, fast response at the extremes. Odd-symmetric and monotonically
// increasing for any positive exponent.
func responseCurve(v, exponent float64) float64 {
	if v == 0 {
		return 0
	}
	return math.Copysign(math.Pow(math.Abs(v), exponent), v)
}

// applyDeadzone zeroes the axis pair when its Euclidean magnitude is below
// radius and rescales it onto the boundary when the magnitude exceeds the
// representable maximum, preserving direction.
func applyDeadzone(x, y int16, radius float64) (int16, int16) {
	fx, fy := float64(x), float64(y)
	magnitude := math.Hypot(fx, fy)
	if magnitude < radius {
		return 0, 0
	}
	if magnitude > maxAxis {
		scale := maxAxis / magnitude
		return int16(fx * scale), int16(fy * scale)
	}
	return x, y
}
