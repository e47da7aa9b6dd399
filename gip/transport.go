package gip

import (
	"errors"
	"time"
)

var (
	// ErrTimeout reports that a bounded read elapsed without a frame. This
	// is the expected idle outcome, not a failure.
	ErrTimeout = errors.New("gip: read timed out")
	// ErrDisconnected reports that the device is gone. The caller must stop
	// reading and release all injected key and button state.
	ErrDisconnected = errors.New("gip: device disconnected")
)

// Transport is the interrupt-style byte transport the protocol runs over.
// Read fills buf with at most one complete frame and returns the byte
// count; it returns ErrTimeout when the bound elapses and ErrDisconnected
// when the device is gone.
type Transport interface {
	Read(buf []byte, timeout time.Duration) (int, error)
	Write(data []byte, timeout time.Duration) error
}
