// Package mapping defines the user-editable controller profile and its
// compiled, numeric form consumed by the translation engine.
package mapping

import (
	"errors"
	"fmt"

	"github.com/gipmap/gipmap/gip"
)

// StickMode selects how an analog stick is translated.
type StickMode string

const (
	StickWASD     StickMode = "wasd"
	StickArrows   StickMode = "arrows"
	StickMouse    StickMode = "mouse"
	StickDisabled StickMode = "disabled"
)

// TriggerMode selects how an analog trigger is translated.
type TriggerMode string

const (
	TriggerMouse    TriggerMode = "mouse"
	TriggerKey      TriggerMode = "key"
	TriggerDisabled TriggerMode = "disabled"
)

// Profile is the user-facing controller mapping. It is populated by kong
// from flags, environment and config files, loaded once before the input
// loop starts, and immutable afterwards. Key bindings are key names; use
// Compile to resolve them into the numeric Keymap the engine reads.
type Profile struct {
	Buttons  ButtonBindings  `embed:"" prefix:"buttons."`
	Sticks   StickBindings   `embed:"" prefix:"sticks."`
	Triggers TriggerBindings `embed:"" prefix:"triggers."`

	StreamingMode bool `help:"Deliver mouse motion as relative deltas, for remote-desktop and game-streaming consumers" default:"false" env:"GIPMAP_STREAMING_MODE"`
}

// ButtonBindings maps each controller button to a keyboard key name.
type ButtonBindings struct {
	A         string `help:"Key for the A button" default:"space"`
	B         string `help:"Key for the B button" default:"c"`
	X         string `help:"Key for the X button" default:"r"`
	Y         string `help:"Key for the Y button" default:"f"`
	LB        string `help:"Key for the left bumper" default:"q"`
	RB        string `help:"Key for the right bumper" default:"e"`
	LS        string `help:"Key for the left stick click" default:"leftshift"`
	RS        string `help:"Key for the right stick click" default:"leftctrl"`
	View      string `help:"Key for the View button" default:"tab"`
	Menu      string `help:"Key for the Menu button" default:"esc"`
	DPadUp    string `help:"Key for d-pad up" default:"up"`
	DPadDown  string `help:"Key for d-pad down" default:"down"`
	DPadLeft  string `help:"Key for d-pad left" default:"left"`
	DPadRight string `help:"Key for d-pad right" default:"right"`
}

// StickBindings configures both analog sticks.
type StickBindings struct {
	LeftMode  StickMode `help:"Left stick behavior" enum:"wasd,arrows,mouse,disabled" default:"wasd"`
	RightMode StickMode `help:"Right stick behavior" enum:"wasd,arrows,mouse,disabled" default:"mouse"`

	LeftUp     string `help:"Key for left stick up (wasd mode)" default:"w"`
	LeftDown   string `help:"Key for left stick down (wasd mode)" default:"s"`
	LeftLeft   string `help:"Key for left stick left (wasd mode)" default:"a"`
	LeftRight  string `help:"Key for left stick right (wasd mode)" default:"d"`
	RightUp    string `help:"Key for right stick up (wasd mode)" default:"i"`
	RightDown  string `help:"Key for right stick down (wasd mode)" default:"k"`
	RightLeft  string `help:"Key for right stick left (wasd mode)" default:"j"`
	RightRight string `help:"Key for right stick right (wasd mode)" default:"l"`

	Sensitivity      float64 `help:"Mouse-mode cursor speed multiplier" default:"1.5"`
	Curve            float64 `help:"Mouse-mode response curve exponent; 1.0 is linear" default:"1.8"`
	Deadzone         int     `help:"Stick deadzone radius, 0-32767" default:"8000"`
	DigitalThreshold float64 `help:"Normalized deflection required to press a direction key" default:"0.3"`
}

// TriggerBindings configures both analog triggers.
type TriggerBindings struct {
	LeftMode  TriggerMode `help:"Left trigger behavior" enum:"mouse,key,disabled" default:"mouse"`
	RightMode TriggerMode `help:"Right trigger behavior" enum:"mouse,key,disabled" default:"mouse"`
	LeftKey   string      `help:"Key for the left trigger (key mode)" default:"z"`
	RightKey  string      `help:"Key for the right trigger (key mode)" default:"x"`
	Threshold uint8       `help:"Trigger pull level, 0-255, that counts as pressed" default:"127"`
}

// Keymap is the compiled profile: every name resolved to a key code, every
// range validated. The translation engine reads this and nothing else.
type Keymap struct {
	Buttons map[uint16]KeyCode

	Left  StickConfig
	Right StickConfig

	LeftTrigger      TriggerConfig
	RightTrigger     TriggerConfig
	TriggerThreshold uint8

	StreamingMode bool
}

// StickConfig is the compiled per-stick configuration. In arrows mode the
// direction keys are already the arrow keys.
type StickConfig struct {
	Mode             StickMode
	Up, Down         KeyCode
	Left, Right      KeyCode
	Sensitivity      float64
	Curve            float64
	Deadzone         float64
	DigitalThreshold float64
}

// TriggerConfig is the compiled per-trigger configuration.
type TriggerConfig struct {
	Mode TriggerMode
	Key  KeyCode
}

// Compile resolves and validates the profile. It fails with the offending
// binding named so a typo in a config file is easy to find.
func (p *Profile) Compile() (*Keymap, error) {
	var errs []error
	resolve := func(binding, name string) KeyCode {
		code, err := LookupKey(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", binding, err))
		}
		return code
	}

	km := &Keymap{
		Buttons: map[uint16]KeyCode{
			gip.ButtonA:         resolve("buttons.a", p.Buttons.A),
			gip.ButtonB:         resolve("buttons.b", p.Buttons.B),
			gip.ButtonX:         resolve("buttons.x", p.Buttons.X),
			gip.ButtonY:         resolve("buttons.y", p.Buttons.Y),
			gip.ButtonLB:        resolve("buttons.lb", p.Buttons.LB),
			gip.ButtonRB:        resolve("buttons.rb", p.Buttons.RB),
			gip.ButtonLS:        resolve("buttons.ls", p.Buttons.LS),
			gip.ButtonRS:        resolve("buttons.rs", p.Buttons.RS),
			gip.ButtonView:      resolve("buttons.view", p.Buttons.View),
			gip.ButtonMenu:      resolve("buttons.menu", p.Buttons.Menu),
			gip.ButtonDPadUp:    resolve("buttons.dpad-up", p.Buttons.DPadUp),
			gip.ButtonDPadDown:  resolve("buttons.dpad-down", p.Buttons.DPadDown),
			gip.ButtonDPadLeft:  resolve("buttons.dpad-left", p.Buttons.DPadLeft),
			gip.ButtonDPadRight: resolve("buttons.dpad-right", p.Buttons.DPadRight),
		},
		TriggerThreshold: p.Triggers.Threshold,
		StreamingMode:    p.StreamingMode,
	}

	shared := StickConfig{
		Sensitivity:      p.Sticks.Sensitivity,
		Curve:            p.Sticks.Curve,
		Deadzone:         float64(p.Sticks.Deadzone),
		DigitalThreshold: p.Sticks.DigitalThreshold,
	}
	km.Left = shared
	km.Left.Mode = p.Sticks.LeftMode
	km.Right = shared
	km.Right.Mode = p.Sticks.RightMode

	switch p.Sticks.LeftMode {
	case StickWASD:
		km.Left.Up = resolve("sticks.left-up", p.Sticks.LeftUp)
		km.Left.Down = resolve("sticks.left-down", p.Sticks.LeftDown)
		km.Left.Left = resolve("sticks.left-left", p.Sticks.LeftLeft)
		km.Left.Right = resolve("sticks.left-right", p.Sticks.LeftRight)
	case StickArrows:
		km.Left.Up, km.Left.Down, km.Left.Left, km.Left.Right = KeyUp, KeyDown, KeyLeft, KeyRight
	case StickMouse, StickDisabled:
	default:
		errs = append(errs, fmt.Errorf("sticks.left-mode: unknown mode %q", p.Sticks.LeftMode))
	}
	switch p.Sticks.RightMode {
	case StickWASD:
		km.Right.Up = resolve("sticks.right-up", p.Sticks.RightUp)
		km.Right.Down = resolve("sticks.right-down", p.Sticks.RightDown)
		km.Right.Left = resolve("sticks.right-left", p.Sticks.RightLeft)
		km.Right.Right = resolve("sticks.right-right", p.Sticks.RightRight)
	case StickArrows:
		km.Right.Up, km.Right.Down, km.Right.Left, km.Right.Right = KeyUp, KeyDown, KeyLeft, KeyRight
	case StickMouse, StickDisabled:
	default:
		errs = append(errs, fmt.Errorf("sticks.right-mode: unknown mode %q", p.Sticks.RightMode))
	}

	switch p.Triggers.LeftMode {
	case TriggerMouse, TriggerDisabled:
		km.LeftTrigger.Mode = p.Triggers.LeftMode
	case TriggerKey:
		km.LeftTrigger = TriggerConfig{Mode: TriggerKey, Key: resolve("triggers.left-key", p.Triggers.LeftKey)}
	default:
		errs = append(errs, fmt.Errorf("triggers.left-mode: unknown mode %q", p.Triggers.LeftMode))
	}
	switch p.Triggers.RightMode {
	case TriggerMouse, TriggerDisabled:
		km.RightTrigger.Mode = p.Triggers.RightMode
	case TriggerKey:
		km.RightTrigger = TriggerConfig{Mode: TriggerKey, Key: resolve("triggers.right-key", p.Triggers.RightKey)}
	default:
		errs = append(errs, fmt.Errorf("triggers.right-mode: unknown mode %q", p.Triggers.RightMode))
	}

	if p.Sticks.Deadzone < 0 || p.Sticks.Deadzone > 32767 {
		errs = append(errs, fmt.Errorf("sticks.deadzone: %d outside 0-32767", p.Sticks.Deadzone))
	}
	if p.Sticks.Curve <= 0 {
		errs = append(errs, fmt.Errorf("sticks.curve: %v must be positive", p.Sticks.Curve))
	}
	if p.Sticks.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("sticks.sensitivity: %v must be positive", p.Sticks.Sensitivity))
	}
	if p.Sticks.DigitalThreshold <= 0 || p.Sticks.DigitalThreshold >= 1 {
		errs = append(errs, fmt.Errorf("sticks.digital-threshold: %v outside (0,1)", p.Sticks.DigitalThreshold))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return km, nil
}
