// Package sink delivers translated events to the operating system. The
// uinput sink creates virtual keyboard and mouse devices; the console sink
// logs events for dry runs.
package sink

import (
	"fmt"
	"math"

	"github.com/bendahl/uinput"

	"github.com/gipmap/gipmap/mapping"
	"github.com/gipmap/gipmap/translate"
)

const uinputPath = "/dev/uinput"

// Uinput injects events through virtual input devices. The kernel only
// accepts whole-pixel relative motion, so fractional deltas are carried
// over to the next move instead of being dropped.
type Uinput struct {
	keyboard uinput.Keyboard
	mouse    uinput.Mouse

	x, y                 float64
	residualX, residualY float64
}

// NewUinput creates the virtual keyboard and mouse. Requires write access
// to /dev/uinput.
func NewUinput() (*Uinput, error) {
	keyboard, err := uinput.CreateKeyboard(uinputPath, []byte("gipmap virtual keyboard"))
	if err != nil {
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}
	mouse, err := uinput.CreateMouse(uinputPath, []byte("gipmap virtual mouse"))
	if err != nil {
		keyboard.Close()
		return nil, fmt.Errorf("create virtual mouse: %w", err)
	}
	return &Uinput{keyboard: keyboard, mouse: mouse}, nil
}

func (u *Uinput) Key(code mapping.KeyCode, pressed bool) error {
	if pressed {
		return u.keyboard.KeyDown(int(code))
	}
	return u.keyboard.KeyUp(int(code))
}

func (u *Uinput) MouseButton(btn translate.MouseButton, pressed bool) error {
	switch btn {
	case translate.MouseLeft:
		if pressed {
			return u.mouse.LeftPress()
		}
		return u.mouse.LeftRelease()
	case translate.MouseRight:
		if pressed {
			return u.mouse.RightPress()
		}
		return u.mouse.RightRelease()
	case translate.MouseMiddle:
		if pressed {
			return u.mouse.MiddlePress()
		}
		return u.mouse.MiddleRelease()
	default:
		return fmt.Errorf("unknown mouse button %v", btn)
	}
}

func (u *Uinput) MouseMove(dx, dy float64) error {
	wholeX, wholeY := u.split(dx, dy)
	if wholeX == 0 && wholeY == 0 {
		return nil
	}
	if err := u.mouse.Move(wholeX, wholeY); err != nil {
		return err
	}
	u.x += float64(wholeX)
	u.y += float64(wholeY)
	return nil
}

func (u *Uinput) MouseMoveTo(x, y float64) error {
	return u.MouseMove(x-u.x, y-u.y)
}

// CursorPosition reports the position of the virtual cursor. uinput offers
// no way to query the real pointer, so the sink tracks every move it makes
// from an origin of (0,0).
func (u *Uinput) CursorPosition() (float64, float64, error) {
	return u.x, u.y, nil
}

// split folds the carried fractional remainder into the incoming delta and
// returns the whole-pixel part, keeping the new remainder.
func (u *Uinput) split(dx, dy float64) (int32, int32) {
	fx := dx + u.residualX
	fy := dy + u.residualY
	wholeX := math.Trunc(fx)
	wholeY := math.Trunc(fy)
	u.residualX = fx - wholeX
	u.residualY = fy - wholeY
	return int32(wholeX), int32(wholeY)
}

// Close destroys the virtual devices. Held keys must be drained before
// closing; destroying a device with keys down leaves them stuck in some
// compositors.
func (u *Uinput) Close() error {
	kerr := u.keyboard.Close()
	merr := u.mouse.Close()
	if kerr != nil {
		return kerr
	}
	return merr
}
