package gip_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gipmap/gipmap/gip"
)

// scriptTransport replays a fixed sequence of reads and records writes.
type scriptTransport struct {
	reads    [][]byte
	readErrs []error
	pos      int
	writes   [][]byte
	writeErr error
}

func (s *scriptTransport) Read(buf []byte, _ time.Duration) (int, error) {
	if s.pos >= len(s.reads) && s.pos >= len(s.readErrs) {
		return 0, gip.ErrTimeout
	}
	i := s.pos
	s.pos++
	if i < len(s.readErrs) && s.readErrs[i] != nil {
		return 0, s.readErrs[i]
	}
	return copy(buf, s.reads[i]), nil
}

func (s *scriptTransport) Write(data []byte, _ time.Duration) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.writes = append(s.writes, cp)
	return s.writeErr
}

func announceFrame(seq byte) []byte {
	return []byte{gip.CmdAnnounce, 0x20, seq, 0x00}
}

func newHandshake(tr gip.Transport) *gip.Handshake {
	h := gip.NewHandshake(tr, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.SettleDelay = 0
	return h
}

func TestHandshakeAcknowledgesAnnounces(t *testing.T) {
	tr := &scriptTransport{reads: [][]byte{announceFrame(0x01), announceFrame(0x02)}}
	h := newHandshake(tr)

	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, gip.Streaming, h.State())

	// Two acks echoing the announce sequences, then the power-on frame.
	require.Len(t, tr.writes, 3)
	assert.Equal(t, gip.EncodeAcknowledge(0x01), tr.writes[0])
	assert.Equal(t, gip.EncodeAcknowledge(0x02), tr.writes[1])
	assert.Equal(t, gip.EncodePowerOn(), tr.writes[2])
}

func TestHandshakeTimeoutAdvances(t *testing.T) {
	// Device already streaming: first read times out immediately.
	tr := &scriptTransport{}
	h := newHandshake(tr)

	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, gip.Streaming, h.State())
	require.Len(t, tr.writes, 1)
	assert.Equal(t, gip.EncodePowerOn(), tr.writes[0])
}

func TestHandshakeAttemptsBounded(t *testing.T) {
	// A device that announces forever must not hang initialization.
	reads := make([][]byte, 20)
	for i := range reads {
		reads[i] = announceFrame(byte(i))
	}
	tr := &scriptTransport{reads: reads}
	h := newHandshake(tr)
	h.Attempts = 3

	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, gip.Streaming, h.State())
	assert.Equal(t, 3, tr.pos)
	assert.Len(t, tr.writes, 4) // 3 acks + power-on
}

func TestHandshakeDegradedStillStreams(t *testing.T) {
	wantErr := errors.New("pipe stalled")
	tr := &scriptTransport{
		reads:    [][]byte{announceFrame(0x09)},
		writeErr: wantErr,
	}
	h := newHandshake(tr)

	err := h.Run(context.Background())
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, gip.Streaming, h.State())
}

func TestHandshakeIgnoresMalformedAndUnrelatedFrames(t *testing.T) {
	tr := &scriptTransport{reads: [][]byte{
		{gip.CmdStatus},         // shorter than a header, dropped
		{gip.CmdStatus, 0x20, 0x05, 0x00}, // not an announce
		announceFrame(0x07),
	}}
	h := newHandshake(tr)

	require.NoError(t, h.Run(context.Background()))
	require.Len(t, tr.writes, 2)
	assert.Equal(t, gip.EncodeAcknowledge(0x07), tr.writes[0])
	assert.Equal(t, gip.EncodePowerOn(), tr.writes[1])
}

func TestHandshakeReadErrorRecorded(t *testing.T) {
	tr := &scriptTransport{
		readErrs: []error{gip.ErrDisconnected},
	}
	h := newHandshake(tr)
	h.Attempts = 1

	err := h.Run(context.Background())
	assert.ErrorIs(t, err, gip.ErrDisconnected)
	assert.Equal(t, gip.Streaming, h.State())
}

func TestHandshakeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr := &scriptTransport{}
	h := newHandshake(tr)

	err := h.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotEqual(t, gip.Streaming, h.State())
}
