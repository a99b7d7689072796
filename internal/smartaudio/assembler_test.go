package smartaudio

import (
	"bytes"
	"testing"
)

// feedAll pushes a byte stream through the assembler and collects every
// completed candidate frame.
func feedAll(a *Assembler, stream []byte) [][]byte {
	var frames [][]byte
	for _, b := range stream {
		if frame := a.Feed(b); frame != nil {
			frames = append(frames, frame)
		}
	}
	return frames
}

func TestAssemblerSingleFrame(t *testing.T) {
	tests := []struct {
		name   string
		stream []byte
	}{
		{
			name:   "zero-length payload",
			stream: []byte{0xAA, 0x55, 0x01, 0x00, 0x0B},
		},
		{
			name:   "one-byte payload",
			stream: []byte{0xAA, 0x55, 0x02, 0x01, 0x82, 0x48},
		},
		{
			name:   "two-byte payload",
			stream: []byte{0xAA, 0x55, 0x04, 0x02, 0x16, 0xA8, 0xFA},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := feedAll(NewAssembler(), tt.stream)
			if len(frames) != 1 {
				t.Fatalf("assembled %d frames, want 1", len(frames))
			}
			if !bytes.Equal(frames[0], tt.stream) {
				t.Errorf("frame = % X, want % X", frames[0], tt.stream)
			}
		})
	}
}

func TestAssemblerResync(t *testing.T) {
	valid := []byte{0xAA, 0x55, 0x04, 0x02, 0x16, 0xA8, 0xFA}

	tests := []struct {
		name   string
		stream []byte
	}{
		{
			name:   "leading garbage",
			stream: append([]byte{0x00, 0x42, 0x7E}, valid...),
		},
		{
			name: "stray sync byte then wrong header",
			// A lone 0xAA followed by a non-header byte must discard the
			// candidate and still catch the following frame.
			stream: append([]byte{0xAA, 0x00}, valid...),
		},
		{
			name:   "interrupted frame prefix",
			stream: append([]byte{0xAA, 0x55, 0x03, 0x05, 0x01}, valid...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := feedAll(NewAssembler(), tt.stream)
			if tt.name == "interrupted frame prefix" {
				// The interrupted frame swallows part of the valid one as
				// payload; its candidate fails CRC and nothing valid follows.
				for _, f := range frames {
					if _, err := ValidateFrame(f); err == nil {
						t.Errorf("interrupted prefix produced a CRC-valid frame: % X", f)
					}
				}
				return
			}
			if len(frames) != 1 {
				t.Fatalf("assembled %d frames, want 1", len(frames))
			}
			if !bytes.Equal(frames[0], valid) {
				t.Errorf("frame = % X, want % X", frames[0], valid)
			}
		})
	}
}

func TestAssemblerBackToBackFrames(t *testing.T) {
	first := []byte{0xAA, 0x55, 0x01, 0x00, 0x0B}
	second := []byte{0xAA, 0x55, 0x05, 0x01, 0x0F, 0x86}

	frames := feedAll(NewAssembler(), append(append([]byte{}, first...), second...))
	if len(frames) != 2 {
		t.Fatalf("assembled %d frames, want 2", len(frames))
	}
	if !bytes.Equal(frames[0], first) {
		t.Errorf("first frame = % X, want % X", frames[0], first)
	}
	if !bytes.Equal(frames[1], second) {
		t.Errorf("second frame = % X, want % X", frames[1], second)
	}
}

// The assembler resets after every candidate, valid CRC or not
func TestAssemblerResetsAfterCorruptFrame(t *testing.T) {
	corrupt := []byte{0xAA, 0x55, 0x01, 0x00, 0xFF}
	valid := []byte{0xAA, 0x55, 0x01, 0x00, 0x0B}

	a := NewAssembler()
	frames := feedAll(a, append(append([]byte{}, corrupt...), valid...))
	if len(frames) != 2 {
		t.Fatalf("assembled %d candidates, want 2", len(frames))
	}
	if _, err := ValidateFrame(frames[0]); err == nil {
		t.Error("corrupt candidate passed validation")
	}
	if _, err := ValidateFrame(frames[1]); err != nil {
		t.Errorf("valid frame after corrupt one failed validation: %v", err)
	}
}

// Returned frames must stay intact when the assembler keeps running
func TestAssemblerFrameIsACopy(t *testing.T) {
	valid := []byte{0xAA, 0x55, 0x01, 0x00, 0x0B}
	a := NewAssembler()

	frames := feedAll(a, valid)
	if len(frames) != 1 {
		t.Fatalf("assembled %d frames, want 1", len(frames))
	}
	frame := frames[0]
	feedAll(a, []byte{0xAA, 0x55, 0x05, 0x01, 0x0F, 0x86})
	if !bytes.Equal(frame, valid) {
		t.Errorf("earlier frame mutated by later input: % X", frame)
	}
}
