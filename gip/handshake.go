package gip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// HandshakeState is the position of the power-on sequence.
type HandshakeState uint8

const (
	AwaitAnnounce HandshakeState = iota
	Acknowledging
	PoweringOn
	Streaming
)

func (s HandshakeState) String() string {
	switch s {
	case AwaitAnnounce:
		return "await-announce"
	case Acknowledging:
		return "acknowledging"
	case PoweringOn:
		return "powering-on"
	case Streaming:
		return "streaming"
	default:
		return "invalid"
	}
}

// Handshake drives the one-time initialization a controller requires before
// it streams input: acknowledge every announce (a device may announce
// several logical sub-devices), then power it on.
//
// There is no terminal failure state. I/O errors during the sequence are
// collected and returned, but the machine still ends in Streaming: some
// devices begin streaming without completing every step, and the input
// loop's own disconnect handling covers the rest.
type Handshake struct {
	// Attempts bounds the announce reads so a device that is already
	// streaming (and will never announce again) cannot hang initialization.
	Attempts int
	// ReadTimeout bounds each announce read; a timeout advances the machine.
	ReadTimeout time.Duration
	// WriteTimeout bounds the acknowledge and power-on writes.
	WriteTimeout time.Duration
	// SettleDelay is how long the device gets to power up before Streaming.
	SettleDelay time.Duration

	tr     Transport
	logger *slog.Logger
	state  HandshakeState
}

// NewHandshake returns a handshake machine with the default budget.
func NewHandshake(tr Transport, logger *slog.Logger) *Handshake {
	return &Handshake{
		Attempts:     5,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: time.Second,
		SettleDelay:  500 * time.Millisecond,
		tr:           tr,
		logger:       logger,
	}
}

// State returns the current handshake state.
func (h *Handshake) State() HandshakeState {
	return h.state
}

// Run executes the full sequence. The returned error aggregates any I/O
// failures encountered along the way; the machine is in Streaming on
// return regardless, unless the context was cancelled first.
func (h *Handshake) Run(ctx context.Context) error {
	var errs []error

	buf := make([]byte, 64)
	h.state = AwaitAnnounce
	for attempt := 0; attempt < h.Attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := h.tr.Read(buf, h.ReadTimeout)
		if errors.Is(err, ErrTimeout) {
			// Nothing more to announce; the device is ready.
			break
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("announce read: %w", err))
			continue
		}
		frame, err := Decode(buf[:n])
		if err != nil {
			h.logger.Debug("dropping malformed handshake frame", "error", err)
			continue
		}
		h.logger.Debug("handshake frame",
			"command", CommandName(frame.Header.Command),
			"sequence", frame.Header.Sequence)
		if frame.Header.Command != CmdAnnounce {
			continue
		}
		h.state = Acknowledging
		if err := h.tr.Write(EncodeAcknowledge(frame.Header.Sequence), h.WriteTimeout); err != nil {
			errs = append(errs, fmt.Errorf("acknowledge write: %w", err))
		}
		// Stay in announce-wait to absorb further sub-device announces.
		h.state = AwaitAnnounce
	}

	h.state = PoweringOn
	if err := h.tr.Write(EncodePowerOn(), h.WriteTimeout); err != nil {
		errs = append(errs, fmt.Errorf("power-on write: %w", err))
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(h.SettleDelay):
	}

	h.state = Streaming
	return errors.Join(errs...)
}
