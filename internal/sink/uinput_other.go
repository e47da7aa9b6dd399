//go:build !linux

package sink

import (
	"errors"

	"github.com/gipmap/gipmap/mapping"
	"github.com/gipmap/gipmap/translate"
)

// Uinput is only available on Linux. Other platforms can still use the
// console sink for dry runs.
type Uinput struct{}

var errUnsupported = errors.New("uinput sink requires linux")

func NewUinput() (*Uinput, error) { return nil, errUnsupported }

func (u *Uinput) Key(mapping.KeyCode, bool) error               { return errUnsupported }
func (u *Uinput) MouseButton(translate.MouseButton, bool) error { return errUnsupported }
func (u *Uinput) MouseMove(float64, float64) error              { return errUnsupported }
func (u *Uinput) MouseMoveTo(float64, float64) error            { return errUnsupported }
func (u *Uinput) CursorPosition() (float64, float64, error)     { return 0, 0, errUnsupported }
func (u *Uinput) Close() error                                  { return nil }
