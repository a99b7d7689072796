package smartaudio

import (
	"errors"
	"fmt"
)

var (
	// ErrFrameTooShort indicates a candidate frame below the 5-byte minimum
	ErrFrameTooShort = errors.New("frame too short")
	// ErrBadChecksum indicates a CRC-8 mismatch
	ErrBadChecksum = errors.New("bad checksum")
)

// Frame is a validated SmartAudio frame. It exists only for the duration of
// one request/response exchange.
type Frame struct {
	Command byte
	Payload []byte
}

// BuildFrame constructs a complete frame for the given command and payload.
// The CRC is computed over the command, length and payload bytes. Payloads of
// 256 bytes or more are a caller error: the single-byte length field wraps.
func BuildFrame(command byte, payload []byte) []byte {
	frame := make([]byte, 0, 5+len(payload))
	frame = append(frame, SyncByte, HeaderByte, command, byte(len(payload)))
	frame = append(frame, payload...)
	frame = append(frame, Checksum(frame[2:]))
	return frame
}

// ValidateFrame checks a complete candidate frame and decodes it. The CRC is
// recomputed over everything between the header byte and the trailing CRC byte
// (command, length and payload) and compared against the last byte of raw.
//
// The caller drops invalid frames silently; the returned errors carry detail
// for logging only, never for the wire.
func ValidateFrame(raw []byte) (*Frame, error) {
	if len(raw) < MinFrameSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFrameTooShort, len(raw))
	}
	want := Checksum(raw[2 : len(raw)-1])
	got := raw[len(raw)-1]
	if got != want {
		return nil, fmt.Errorf("%w: got 0x%02X, expected 0x%02X", ErrBadChecksum, got, want)
	}
	length := int(raw[3])
	payload := raw[4 : 4+min(length, len(raw)-MinFrameSize)]
	return &Frame{Command: raw[2], Payload: payload}, nil
}

// String returns a debug representation of the frame
func (f *Frame) String() string {
	return fmt.Sprintf("Frame{cmd=0x%02X, len=%d}", f.Command, len(f.Payload))
}
