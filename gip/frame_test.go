package gip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gipmap/gipmap/gip"
)

func TestDecodeInput(t *testing.T) {
	buf := []byte{
		gip.CmdInput, 0x00, 0x07, 0x0e, // header
		0x10, 0x01, // buttons: A | dpad-up
		0x40,       // left trigger byte
		0x80,       // right trigger byte
		0xd2, 0x04, // LX = 1234
		0x2e, 0xfb, // LY = -1234
		0xff, 0x7f, // RX = 32767
		0x00, 0x80, // RY = -32768
	}

	frame, err := gip.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, gip.CmdInput, frame.Header.Command)
	assert.Equal(t, byte(0x07), frame.Header.Sequence)
	require.NotNil(t, frame.Input)
	assert.Equal(t, gip.ButtonA|gip.ButtonDPadUp, frame.Input.Buttons)
	assert.Equal(t, uint8(0x40), frame.Input.LeftTrigger)
	assert.Equal(t, uint8(0x80), frame.Input.RightTrigger)
	assert.Equal(t, int16(1234), frame.Input.LeftStickX)
	assert.Equal(t, int16(-1234), frame.Input.LeftStickY)
	assert.Equal(t, int16(32767), frame.Input.RightStickX)
	assert.Equal(t, int16(-32768), frame.Input.RightStickY)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want error
	}{
		{name: "empty", buf: nil, want: gip.ErrShortFrame},
		{name: "below header size", buf: []byte{gip.CmdInput, 0x00, 0x01}, want: gip.ErrShortFrame},
		{
			name: "input frame shorter than payload",
			buf:  []byte{gip.CmdInput, 0x00, 0x01, 0x0e, 0x10, 0x00, 0x00, 0x00},
			want: gip.ErrTruncatedInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gip.Decode(tt.buf)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeControlFrame(t *testing.T) {
	// Control frames only need the header; a short payload is fine.
	frame, err := gip.Decode([]byte{gip.CmdGuideButton, 0x20, 0x03, 0x02, 0x01, 0x5b})
	require.NoError(t, err)
	assert.Equal(t, gip.CmdGuideButton, frame.Header.Command)
	assert.Nil(t, frame.Input)
}

func TestEncodeAcknowledge(t *testing.T) {
	got := gip.EncodeAcknowledge(0x2a)
	want := []byte{
		gip.CmdAcknowledge, 0x20, 0x2a, 0x09,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	assert.Equal(t, want, got)
}

func TestEncodePowerOn(t *testing.T) {
	assert.Equal(t, []byte{gip.CmdPower, 0x20, 0x00, 0x01, 0x00}, gip.EncodePowerOn())
}
