// Package loop runs the steady-state session: read a frame, translate it,
// deliver the resulting events, forever, until the context is cancelled or
// the device disappears.
package loop

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gipmap/gipmap/gip"
	"github.com/gipmap/gipmap/internal/log"
	"github.com/gipmap/gipmap/mapping"
	"github.com/gipmap/gipmap/translate"
)

// Sink receives the translated events. CursorPosition is consulted only
// when motion is delivered absolutely.
type Sink interface {
	Key(code mapping.KeyCode, pressed bool) error
	MouseButton(btn translate.MouseButton, pressed bool) error
	MouseMove(dx, dy float64) error
	MouseMoveTo(x, y float64) error
	CursorPosition() (x, y float64, err error)
}

// Loop owns the read-translate-deliver cycle.
type Loop struct {
	// ReadTimeout bounds each transport read. Short enough that context
	// cancellation is noticed promptly.
	ReadTimeout time.Duration

	tr     gip.Transport
	engine *translate.Engine
	sink   Sink
	// streaming selects relative motion delivery; otherwise motion is
	// posted as an absolute reposition of the cursor.
	streaming bool
	logger    *slog.Logger
}

// New builds a loop. The streaming flag comes from the compiled keymap so
// the whole profile travels together.
func New(tr gip.Transport, km *mapping.Keymap, sink Sink, logger *slog.Logger) *Loop {
	return &Loop{
		ReadTimeout: 10 * time.Millisecond,
		tr:          tr,
		engine:      translate.NewEngine(km),
		sink:        sink,
		streaming:   km.StreamingMode,
		logger:      logger,
	}
}

// Run blocks until ctx is cancelled or the transport reports a disconnect.
// Every exit path drains held keys and mouse buttons through the sink
// first; a key left pressed after exit is a user-visible failure.
//
// Read timeouts are the idle heartbeat and are silently retried. Malformed
// frames are dropped. Sink failures are logged but never fatal: losing one
// event is better than tearing down the session mid-game.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		for _, ev := range l.engine.Drain() {
			l.deliver(ev)
		}
	}()

	buf := make([]byte, 64)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n, rerr := l.tr.Read(buf, l.ReadTimeout)
		if errors.Is(rerr, gip.ErrTimeout) {
			continue
		}
		if errors.Is(rerr, gip.ErrDisconnected) {
			l.logger.Info("controller disconnected")
			return rerr
		}
		if rerr != nil {
			l.logger.Warn("transport read failed", "error", rerr)
			continue
		}

		frame, derr := gip.Decode(buf[:n])
		if derr != nil {
			l.logger.Debug("dropping malformed frame", "error", derr)
			continue
		}

		switch frame.Header.Command {
		case gip.CmdInput:
			for _, ev := range l.engine.Translate(frame.Input) {
				l.deliver(ev)
			}
		case gip.CmdGuideButton:
			l.logger.Log(ctx, log.LevelTrace, "guide frame", "sequence", frame.Header.Sequence)
		default:
			l.logger.Log(ctx, log.LevelTrace, "ignoring frame",
				"command", gip.CommandName(frame.Header.Command))
		}
	}
}

func (l *Loop) deliver(ev translate.Event) {
	var err error
	switch e := ev.(type) {
	case translate.KeyEvent:
		err = l.sink.Key(e.Code, e.Pressed)
	case translate.MouseButtonEvent:
		err = l.sink.MouseButton(e.Button, e.Pressed)
	case translate.MouseMotionEvent:
		err = l.motion(e)
	}
	if err != nil {
		l.logger.Warn("event delivery failed", "error", err)
	}
}

// motion applies the configured delivery convention: streaming consumers
// get the raw delta, local use repositions the cursor at current + delta.
func (l *Loop) motion(e translate.MouseMotionEvent) error {
	if l.streaming {
		return l.sink.MouseMove(e.DX, e.DY)
	}
	x, y, err := l.sink.CursorPosition()
	if err != nil {
		return err
	}
	return l.sink.MouseMoveTo(x+e.DX, y+e.DY)
}
