// Package gip implements the vendor input protocol spoken by Xbox-family
// controllers over their USB interrupt endpoints: frame decoding, the
// outgoing control frames, and the power-on handshake.
//
// The transport is message oriented; every interrupt read delivers at most
// one frame. There is no streaming reassembly: a read shorter than the
// structure it claims to carry is rejected whole.
package gip

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// HeaderSize is the fixed size of the frame header.
	HeaderSize = 4
	// InputPacketSize is the total size of an input frame including header.
	InputPacketSize = HeaderSize + 12
)

var (
	// ErrShortFrame is returned when a read carries fewer bytes than the header.
	ErrShortFrame = errors.New("gip: frame shorter than header")
	// ErrTruncatedInput is returned when an input frame is shorter than the
	// input payload it declares.
	ErrTruncatedInput = errors.New("gip: truncated input frame")
)

// Header is the four-byte frame header common to all GIP frames.
type Header struct {
	Command  byte
	Flags    byte
	Sequence byte
	Length   byte
}

// InputPacket is the payload of a CmdInput frame.
//
// The analog fields are raw wire values. Two wire quirks are deliberately
// NOT corrected here: the left/right trigger byte positions are swapped,
// and each stick's axis pair is transposed relative to its physical
// up/down and left/right meaning. Consumers un-swap before applying
// semantics; see translate.Engine.
type InputPacket struct {
	Buttons      uint16
	LeftTrigger  uint8
	RightTrigger uint8
	LeftStickX   int16
	LeftStickY   int16
	RightStickX  int16
	RightStickY  int16
}

// Frame is one decoded frame. Input is non-nil only for CmdInput frames.
type Frame struct {
	Header Header
	Input  *InputPacket
}

// Decode interprets one transport read as a frame. Reads shorter than the
// header, and input frames shorter than the full input packet, are
// rejected rather than partially parsed.
func Decode(buf []byte) (Frame, error) {
	if len(buf) < HeaderSize {
		return Frame{}, fmt.Errorf("%w: got %d bytes", ErrShortFrame, len(buf))
	}
	f := Frame{
		Header: Header{
			Command:  buf[0],
			Flags:    buf[1],
			Sequence: buf[2],
			Length:   buf[3],
		},
	}
	if f.Header.Command != CmdInput {
		return f, nil
	}
	if len(buf) < InputPacketSize {
		return Frame{}, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncatedInput, len(buf), InputPacketSize)
	}
	p := buf[HeaderSize:]
	f.Input = &InputPacket{
		Buttons:      binary.LittleEndian.Uint16(p[0:2]),
		LeftTrigger:  p[2],
		RightTrigger: p[3],
		LeftStickX:   int16(binary.LittleEndian.Uint16(p[4:6])),
		LeftStickY:   int16(binary.LittleEndian.Uint16(p[6:8])),
		RightStickX:  int16(binary.LittleEndian.Uint16(p[8:10])),
		RightStickY:  int16(binary.LittleEndian.Uint16(p[10:12])),
	}
	return f, nil
}

// EncodeAcknowledge builds the acknowledge control frame for an announce.
// The sequence number must be echoed verbatim from the announce frame.
func EncodeAcknowledge(sequence byte) []byte {
	return []byte{
		CmdAcknowledge, 0x20, sequence, 0x09,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
}

// EncodePowerOn builds the power-on control frame that starts input
// streaming.
func EncodePowerOn() []byte {
	return []byte{CmdPower, 0x20, 0x00, 0x01, 0x00}
}
