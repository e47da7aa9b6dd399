// Package cmd holds the kong command implementations behind the gipmap CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/gipmap/gipmap/gip"
	"github.com/gipmap/gipmap/internal/log"
	"github.com/gipmap/gipmap/internal/loop"
	"github.com/gipmap/gipmap/internal/sink"
	"github.com/gipmap/gipmap/internal/transport"
	"github.com/gipmap/gipmap/mapping"
)

type Run struct {
	Device  transport.Config `embed:"" prefix:"device."`
	Profile mapping.Profile  `embed:"" prefix:"profile."`

	ReadTimeout       time.Duration `help:"Input poll timeout." default:"10ms" env:"GIPMAP_READ_TIMEOUT"`
	HandshakeAttempts int           `help:"Announce reads attempted before powering on." default:"5" env:"GIPMAP_HANDSHAKE_ATTEMPTS"`
	DryRun            bool          `help:"Log events instead of injecting them."`
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, frames log.FrameLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keymap, err := r.Profile.Compile()
	if err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		printSummary(&r.Profile, keymap)
	}

	tr, err := transport.Open(r.Device, logger)
	if err != nil {
		return err
	}
	defer func() { _ = tr.Close() }()
	traced := transport.WithTrace(tr, frames)

	handshake := gip.NewHandshake(traced, logger)
	handshake.Attempts = r.HandshakeAttempts
	if err := handshake.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// The device may stream anyway; let the input loop decide.
		logger.Warn("handshake degraded, continuing", "error", err)
	}
	logger.Info("handshake complete", "state", handshake.State().String())

	events, err := r.openSink(logger)
	if err != nil {
		return err
	}

	l := loop.New(traced, keymap, events, logger)
	l.ReadTimeout = r.ReadTimeout

	err = l.Run(ctx)
	closeErr := events.Close()
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutting down")
		return closeErr
	case errors.Is(err, gip.ErrDisconnected):
		return fmt.Errorf("controller disconnected: %w", err)
	default:
		return errors.Join(err, closeErr)
	}
}

// eventSink is a loop.Sink the command can also close.
type eventSink interface {
	loop.Sink
	Close() error
}

func (r *Run) openSink(logger *slog.Logger) (eventSink, error) {
	if r.DryRun {
		return sink.NewConsole(logger), nil
	}
	s, err := sink.NewUinput()
	if err != nil {
		return nil, fmt.Errorf("open event sink: %w", err)
	}
	return s, nil
}

func printSummary(p *mapping.Profile, km *mapping.Keymap) {
	fmt.Printf("gipmap: %d buttons bound, left stick %s, right stick %s, triggers %s/%s\n",
		len(km.Buttons), p.Sticks.LeftMode, p.Sticks.RightMode,
		p.Triggers.LeftMode, p.Triggers.RightMode)
	if km.StreamingMode {
		fmt.Println("motion delivery: relative (streaming)")
	} else {
		fmt.Println("motion delivery: absolute")
	}
}
