package smartaudio

import "errors"

// ErrUnknownCommand indicates that neither the raw nor the shifted command id
// matched a known handler. The frame is dropped without a reply.
var ErrUnknownCommand = errors.New("unknown command")

// Command is the closed set of logical SmartAudio commands
type Command int

const (
	GetSettings Command = iota
	SetPower
	SetChannel
	SetFrequency
	SetMode
)

// resolveCommand maps a wire command id to a logical command. The raw id is
// tried first, then the shifted id (raw << 1), since peers use both
// conventions depending on revision.
func resolveCommand(id byte) (Command, bool) {
	if cmd, ok := rawCommand(id); ok {
		return cmd, true
	}
	return rawCommand(id >> 1)
}

func rawCommand(id byte) (Command, bool) {
	switch id {
	case CmdGetSettings:
		return GetSettings, true
	case CmdSetPower:
		return SetPower, true
	case CmdSetChannel:
		return SetChannel, true
	case CmdSetFrequency:
		return SetFrequency, true
	case CmdSetMode:
		return SetMode, true
	}
	return 0, false
}

// Dispatcher routes validated frames to command handlers operating on a single
// Settings instance. It keeps no state of its own between calls.
type Dispatcher struct {
	settings *Settings
}

// NewDispatcher creates a dispatcher bound to the given settings
func NewDispatcher(settings *Settings) *Dispatcher {
	return &Dispatcher{settings: settings}
}

// Dispatch resolves the frame's command and invokes its handler. It returns
// the encoded response frame, or nil when the command is unknown or the
// payload is malformed (SmartAudio has no NAK; silence is the only error
// signal on the wire).
func (d *Dispatcher) Dispatch(f *Frame) ([]byte, error) {
	cmd, ok := resolveCommand(f.Command)
	if !ok {
		return nil, ErrUnknownCommand
	}

	switch cmd {
	case GetSettings:
		return d.handleGetSettings(), nil
	case SetPower:
		return d.handleSetPower(f.Payload), nil
	case SetChannel:
		return d.handleSetChannel(f.Payload), nil
	case SetFrequency:
		return d.handleSetFrequency(f.Payload), nil
	case SetMode:
		return d.handleSetMode(f.Payload), nil
	}
	return nil, ErrUnknownCommand
}

// handleGetSettings reports the current settings. The response command id and
// payload shape depend on the protocol revision; V2.1 appends the current
// power in dBm and the full power level table.
func (d *Dispatcher) handleGetSettings() []byte {
	s := d.settings
	freqHi := byte(s.Frequency >> 8)
	freqLo := byte(s.Frequency)

	switch s.Version {
	case VersionV1:
		return BuildFrame(RespSettingsV1, []byte{s.Channel, s.PowerIndex, s.Mode, freqHi, freqLo})
	case VersionV21:
		// Clamp a power index outside the table instead of panicking; a
		// misconfigured profile must not take the engine down.
		idx := int(s.PowerIndex)
		if idx >= len(s.PowerLevels) {
			idx = len(s.PowerLevels) - 1
		}
		var dbm byte
		if idx >= 0 {
			dbm = s.PowerLevels[idx]
		}
		payload := []byte{s.Channel, s.PowerIndex, s.Mode, freqHi, freqLo, dbm, byte(len(s.PowerLevels))}
		payload = append(payload, s.PowerLevels...)
		return BuildFrame(RespSettingsV21, payload)
	default:
		return BuildFrame(RespSettingsV2, []byte{s.Channel, s.PowerIndex, s.Mode, freqHi, freqLo})
	}
}

// handleSetPower stores the new power index with the top bit masked off.
// Only the power field is 7-bit; channel, mode and frequency keep full width.
func (d *Dispatcher) handleSetPower(data []byte) []byte {
	if len(data) < 1 {
		return nil
	}
	d.settings.PowerIndex = data[0] & 0x7F
	return BuildFrame(CmdSetPower, []byte{d.settings.PowerIndex, 0x01})
}

// handleSetChannel stores the new channel and clears the mode flags
func (d *Dispatcher) handleSetChannel(data []byte) []byte {
	if len(data) < 1 {
		return nil
	}
	d.settings.Channel = data[0]
	d.settings.Mode = 0b00000
	return BuildFrame(CmdSetChannel, []byte{d.settings.Channel, 0x01})
}

// handleSetFrequency stores the big-endian frequency and marks the mode as
// frequency-locked. The response echoes the request bytes verbatim.
func (d *Dispatcher) handleSetFrequency(data []byte) []byte {
	if len(data) < 2 {
		return nil
	}
	d.settings.Frequency = uint16(data[0])<<8 | uint16(data[1])
	d.settings.Mode = 0b00001
	return BuildFrame(CmdSetFrequency, []byte{data[0], data[1], 0x01})
}

// handleSetMode stores the raw mode flag byte
func (d *Dispatcher) handleSetMode(data []byte) []byte {
	if len(data) < 1 {
		return nil
	}
	d.settings.Mode = data[0]
	return BuildFrame(CmdSetMode, []byte{data[0], 0x01})
}
