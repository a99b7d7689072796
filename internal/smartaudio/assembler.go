package smartaudio

// assemblerState enumerates the positions of the frame reassembly state
// machine, one state per frame field.
type assemblerState int

const (
	stateSync assemblerState = iota
	stateHeader
	stateCommand
	stateLength
	stateData
	stateCrc
)

// Assembler reassembles SmartAudio frames from a raw byte stream. It is
// purely reactive: it consumes exactly one byte per Feed call, never reads
// ahead and never blocks. Garbage between frames is discarded by
// resynchronizing on the next sync byte.
type Assembler struct {
	state    assemblerState
	buf      []byte
	count    int // bytes consumed since the last reset
	frameEnd int // count at which the payload is exhausted
}

// NewAssembler creates an assembler waiting for a sync byte
func NewAssembler() *Assembler {
	return &Assembler{state: stateSync}
}

// Feed consumes a single byte. When the byte completes a candidate frame, the
// full frame (sync through CRC) is returned and the assembler resets to wait
// for the next sync byte; otherwise Feed returns nil. The returned slice is a
// copy and remains valid across subsequent calls.
//
// Feed performs no integrity checking beyond framing; candidates still need
// ValidateFrame.
func (a *Assembler) Feed(b byte) []byte {
	a.buf = append(a.buf, b)
	a.count++

	switch a.state {
	case stateSync:
		if b == SyncByte {
			a.state = stateHeader
		} else {
			a.reset()
		}
	case stateHeader:
		if b == HeaderByte {
			a.state = stateCommand
		} else {
			a.reset()
		}
	case stateCommand:
		// The command byte is recorded, not validated; dispatch decides later.
		a.state = stateLength
	case stateLength:
		a.frameEnd = a.count + int(b)
		if b == 0 {
			a.state = stateCrc
		} else {
			a.state = stateData
		}
	case stateData:
		if a.count >= a.frameEnd {
			a.state = stateCrc
		}
	case stateCrc:
		frame := make([]byte, len(a.buf))
		copy(frame, a.buf)
		a.reset()
		return frame
	}
	return nil
}

// reset discards the candidate buffer and returns to hunting for a sync byte
func (a *Assembler) reset() {
	a.state = stateSync
	a.buf = a.buf[:0]
	a.count = 0
	a.frameEnd = 0
}
