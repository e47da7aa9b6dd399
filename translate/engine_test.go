package translate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gipmap/gipmap/gip"
	"github.com/gipmap/gipmap/mapping"
)

func testKeymap() *mapping.Keymap {
	return &mapping.Keymap{
		Buttons: map[uint16]mapping.KeyCode{
			gip.ButtonA:         mapping.KeySpace,
			gip.ButtonB:         mapping.KeyC,
			gip.ButtonX:         mapping.KeyR,
			gip.ButtonY:         mapping.KeyF,
			gip.ButtonLB:        mapping.KeyQ,
			gip.ButtonRB:        mapping.KeyE,
			gip.ButtonLS:        mapping.KeyLeftShift,
			gip.ButtonRS:        mapping.KeyLeftCtrl,
			gip.ButtonView:      mapping.KeyTab,
			gip.ButtonMenu:      mapping.KeyEsc,
			gip.ButtonDPadUp:    mapping.KeyUp,
			gip.ButtonDPadDown:  mapping.KeyDown,
			gip.ButtonDPadLeft:  mapping.KeyLeft,
			gip.ButtonDPadRight: mapping.KeyRight,
		},
		Left: mapping.StickConfig{
			Mode: mapping.StickWASD,
			Up:   mapping.KeyW, Down: mapping.KeyS,
			Left: mapping.KeyA, Right: mapping.KeyD,
			Sensitivity: 1.5, Curve: 1.8, Deadzone: 8000, DigitalThreshold: 0.3,
		},
		Right: mapping.StickConfig{
			Mode:        mapping.StickMouse,
			Sensitivity: 1.5, Curve: 1.8, Deadzone: 8000, DigitalThreshold: 0.3,
		},
		LeftTrigger:      mapping.TriggerConfig{Mode: mapping.TriggerMouse},
		RightTrigger:     mapping.TriggerConfig{Mode: mapping.TriggerMouse},
		TriggerThreshold: 127,
	}
}

func keyEvents(events []Event) []KeyEvent {
	var out []KeyEvent
	for _, ev := range events {
		if ke, ok := ev.(KeyEvent); ok {
			out = append(out, ke)
		}
	}
	return out
}

func motionEvents(events []Event) []MouseMotionEvent {
	var out []MouseMotionEvent
	for _, ev := range events {
		if me, ok := ev.(MouseMotionEvent); ok {
			out = append(out, me)
		}
	}
	return out
}

func TestButtonsEdgeTriggered(t *testing.T) {
	e := NewEngine(testKeymap())

	events := e.Translate(&gip.InputPacket{Buttons: gip.ButtonA})
	require.Equal(t, []Event{KeyEvent{Code: mapping.KeySpace, Pressed: true}}, events)
	assert.True(t, e.State().KeyHeld(mapping.KeySpace))

	events = e.Translate(&gip.InputPacket{Buttons: 0})
	require.Equal(t, []Event{KeyEvent{Code: mapping.KeySpace, Pressed: false}}, events)
	assert.False(t, e.State().KeyHeld(mapping.KeySpace))
}

func TestButtonEventCountMatchesChangedBits(t *testing.T) {
	tests := []struct {
		name   string
		m1, m2 uint16
		want   int
	}{
		{"no change", gip.ButtonA | gip.ButtonRB, gip.ButtonA | gip.ButtonRB, 0},
		{"one press", 0, gip.ButtonA, 1},
		{"press and release", gip.ButtonA, gip.ButtonB, 2},
		{"all mapped flip", 0, 0xfff0 | gip.ButtonMenu | gip.ButtonView, 14},
		{"unmapped bits ignored", 0, gip.ButtonSync | gip.ButtonGuide, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(testKeymap())
			e.Translate(&gip.InputPacket{Buttons: tt.m1})
			events := e.Translate(&gip.InputPacket{Buttons: tt.m2})
			assert.Len(t, keyEvents(events), tt.want)
		})
	}
}

func TestIdenticalFramesAreIdempotent(t *testing.T) {
	e := NewEngine(testKeymap())
	frame := &gip.InputPacket{
		Buttons:      gip.ButtonA | gip.ButtonDPadLeft,
		RightTrigger: 200, // logical left trigger after un-swap
		LeftStickX:   30000,
	}

	first := e.Translate(frame)
	assert.NotEmpty(t, first)
	for i := 0; i < 5; i++ {
		assert.Empty(t, e.Translate(frame), "repeat %d must emit nothing", i)
	}
}

func TestTriggersUnswappedAndThresholded(t *testing.T) {
	e := NewEngine(testKeymap())

	// Raw left trigger byte drives the logical RIGHT trigger.
	events := e.Translate(&gip.InputPacket{LeftTrigger: 200})
	require.Equal(t, []Event{MouseButtonEvent{Button: MouseRight, Pressed: true}}, events)
	assert.True(t, e.State().MouseButtonHeld(MouseRight))
	assert.False(t, e.State().MouseButtonHeld(MouseLeft))

	// Below threshold releases it; raw right byte presses the logical left.
	events = e.Translate(&gip.InputPacket{LeftTrigger: 100, RightTrigger: 128})
	require.Len(t, events, 2)
	assert.Contains(t, events, MouseButtonEvent{Button: MouseRight, Pressed: false})
	assert.Contains(t, events, MouseButtonEvent{Button: MouseLeft, Pressed: true})
}

func TestTriggerKeyMode(t *testing.T) {
	km := testKeymap()
	km.LeftTrigger = mapping.TriggerConfig{Mode: mapping.TriggerKey, Key: mapping.KeyZ}
	e := NewEngine(km)

	events := e.Translate(&gip.InputPacket{RightTrigger: 255})
	require.Equal(t, []Event{KeyEvent{Code: mapping.KeyZ, Pressed: true}}, events)
}

func TestTriggerDisabledEmitsNothing(t *testing.T) {
	km := testKeymap()
	km.LeftTrigger.Mode = mapping.TriggerDisabled
	km.RightTrigger.Mode = mapping.TriggerDisabled
	e := NewEngine(km)

	assert.Empty(t, e.Translate(&gip.InputPacket{LeftTrigger: 255, RightTrigger: 255}))
}

func TestStickDigitalAxisUnswap(t *testing.T) {
	// Raw (x=20000, y=0): after the axis un-swap the deflection is
	// logically upward, so exactly the up key goes down.
	e := NewEngine(testKeymap())
	events := e.Translate(&gip.InputPacket{LeftStickX: 20000})
	require.Equal(t, []Event{KeyEvent{Code: mapping.KeyW, Pressed: true}}, events)

	events = e.Translate(&gip.InputPacket{})
	require.Equal(t, []Event{KeyEvent{Code: mapping.KeyW, Pressed: false}}, events)
}

func TestStickDigitalDiagonal(t *testing.T) {
	e := NewEngine(testKeymap())
	events := e.Translate(&gip.InputPacket{LeftStickX: 20000, LeftStickY: 20000})
	keys := keyEvents(events)
	require.Len(t, keys, 2)
	assert.Contains(t, keys, KeyEvent{Code: mapping.KeyW, Pressed: true})
	assert.Contains(t, keys, KeyEvent{Code: mapping.KeyD, Pressed: true})
}

func TestStickInsideDeadzoneIsCentered(t *testing.T) {
	e := NewEngine(testKeymap())
	// Magnitude ~7070 < 8000, would clear the 0.3 threshold if not zeroed.
	events := e.Translate(&gip.InputPacket{LeftStickX: 5000, LeftStickY: 5000})
	assert.Empty(t, events)
}

func TestStickDisabledIgnoresInput(t *testing.T) {
	km := testKeymap()
	km.Left.Mode = mapping.StickDisabled
	km.Right.Mode = mapping.StickDisabled
	e := NewEngine(km)
	assert.Empty(t, e.Translate(&gip.InputPacket{LeftStickX: 32767, RightStickY: -32768}))
}

func TestSingleMotionEventPerFrame(t *testing.T) {
	km := testKeymap()
	km.Left.Mode = mapping.StickMouse
	e := NewEngine(km)

	events := e.Translate(&gip.InputPacket{
		LeftStickX:  20000,
		LeftStickY:  -15000,
		RightStickX: -25000,
		RightStickY: 10000,
	})
	require.Len(t, motionEvents(events), 1)
	require.Len(t, events, 1)
}

func TestMouseMotionDirection(t *testing.T) {
	e := NewEngine(testKeymap())

	// Right stick raw x drives logical vertical after un-swap; positive
	// raw x means push up, which must move the cursor up (negative dy).
	events := e.Translate(&gip.InputPacket{RightStickX: 20000})
	motions := motionEvents(events)
	require.Len(t, motions, 1)
	assert.Zero(t, motions[0].DX)
	assert.Negative(t, motions[0].DY)

	// Fresh frame with raw y deflection: logical horizontal.
	events = e.Translate(&gip.InputPacket{RightStickY: 20000})
	motions = motionEvents(events)
	require.Len(t, motions, 1)
	assert.Positive(t, motions[0].DX)
	assert.Zero(t, motions[0].DY)
}

func TestMotionAccumulatorResetsAfterFlush(t *testing.T) {
	e := NewEngine(testKeymap())
	first := motionEvents(e.Translate(&gip.InputPacket{RightStickY: 20000}))
	second := motionEvents(e.Translate(&gip.InputPacket{RightStickY: 20000}))
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.InDelta(t, first[0].DX, second[0].DX, 1e-9)
}

func TestDrainReleasesEverythingHeld(t *testing.T) {
	e := NewEngine(testKeymap())
	e.Translate(&gip.InputPacket{
		Buttons:     gip.ButtonA | gip.ButtonB,
		LeftTrigger: 255, // logical right trigger: mouse right down
	})

	events := e.Drain()
	require.Len(t, events, 3)
	assert.Contains(t, events, KeyEvent{Code: mapping.KeySpace, Pressed: false})
	assert.Contains(t, events, KeyEvent{Code: mapping.KeyC, Pressed: false})
	assert.Contains(t, events, MouseButtonEvent{Button: MouseRight, Pressed: false})

	// Nothing left to release.
	assert.Empty(t, e.Drain())
	assert.False(t, e.State().KeyHeld(mapping.KeySpace))
	assert.False(t, e.State().MouseButtonHeld(MouseRight))
}

func TestApplyDeadzone(t *testing.T) {
	t.Run("below radius zeroes both axes", func(t *testing.T) {
		x, y := applyDeadzone(4000, 4000, 8000)
		assert.Zero(t, x)
		assert.Zero(t, y)
	})
	t.Run("inside range passes through", func(t *testing.T) {
		x, y := applyDeadzone(9000, -2000, 8000)
		assert.Equal(t, int16(9000), x)
		assert.Equal(t, int16(-2000), y)
	})
	t.Run("excess magnitude rescales onto boundary", func(t *testing.T) {
		x, y := applyDeadzone(-32768, -32768, 8000)
		magnitude := math.Hypot(float64(x), float64(y))
		assert.InDelta(t, maxAxis, magnitude, 1.0)
		// Direction preserved.
		assert.Negative(t, x)
		assert.Negative(t, y)
		assert.Equal(t, x, y)
	})
}

func TestResponseCurve(t *testing.T) {
	exponents := []float64{1.0, 1.8, 3.0}
	for _, exp := range exponents {
		// Odd symmetry.
		for _, v := range []float64{0, 0.1, 0.25, 0.5, 0.9, 1.0} {
			assert.InDelta(t, -responseCurve(v, exp), responseCurve(-v, exp), 1e-12)
		}
		// Monotonically increasing on [0, 1].
		prev := -1.0
		for v := 0.0; v <= 1.0; v += 0.05 {
			cur := responseCurve(v, exp)
			assert.Greater(t, cur, prev, "exponent %v at %v", exp, v)
			prev = cur
		}
	}
	assert.InDelta(t, 1.0, responseCurve(1.0, 1.8), 1e-12)
	assert.InDelta(t, 0.0, responseCurve(0.0, 1.8), 1e-12)
}
