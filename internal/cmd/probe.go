package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gipmap/gipmap/gip"
	"github.com/gipmap/gipmap/internal/log"
	"github.com/gipmap/gipmap/internal/transport"
)

// Probe dumps raw frames from the controller without translating anything.
// Useful for checking a device before trusting it with a full session, and
// for capturing wire traces.
type Probe struct {
	Device transport.Config `embed:"" prefix:"device."`

	Duration  time.Duration `help:"How long to listen. 0 listens until interrupted." default:"10s"`
	Handshake bool          `help:"Run the power-on handshake before listening." default:"true" negatable:""`
}

// Run is called by Kong when the probe command is executed.
func (p *Probe) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if p.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Duration)
		defer cancel()
	}

	tr, err := transport.Open(p.Device, logger)
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()

	// Probe always dumps to stdout regardless of the log configuration.
	traced := transport.WithTrace(tr, log.NewFrame(os.Stdout))

	if p.Handshake {
		handshake := gip.NewHandshake(traced, logger)
		if err := handshake.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Warn("handshake degraded, continuing", "error", err)
		}
	}

	buf := make([]byte, 64)
	for ctx.Err() == nil {
		n, err := traced.Read(buf, 100*time.Millisecond)
		if errors.Is(err, gip.ErrTimeout) {
			continue
		}
		if errors.Is(err, gip.ErrDisconnected) {
			logger.Info("controller disconnected")
			return nil
		}
		if err != nil {
			logger.Warn("read failed", "error", err)
			continue
		}
		if frame, err := gip.Decode(buf[:n]); err == nil && frame.Input != nil {
			logger.Debug("input frame",
				"buttons", frame.Input.Buttons,
				"lx", frame.Input.LeftStickX, "ly", frame.Input.LeftStickY,
				"rx", frame.Input.RightStickX, "ry", frame.Input.RightStickY)
		}
	}
	return nil
}
