package smartaudio

import "fmt"

// Version identifies the SmartAudio protocol revision spoken by the device.
// The revision determines the GET_SETTINGS response command id and payload
// shape; all other commands behave identically across revisions.
type Version int

const (
	VersionV1 Version = iota + 1
	VersionV2
	VersionV21
)

// ParseVersion converts a user-supplied revision string ("1", "2" or "2.1")
// to a Version. The numeric alias "3" for V2.1 is accepted for compatibility
// with older emulator configurations.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1":
		return VersionV1, nil
	case "2":
		return VersionV2, nil
	case "2.1", "3":
		return VersionV21, nil
	}
	return 0, fmt.Errorf("unknown SmartAudio version %q (want 1, 2 or 2.1)", s)
}

// String returns the human-readable revision name
func (v Version) String() string {
	switch v {
	case VersionV1:
		return "V1"
	case VersionV2:
		return "V2"
	case VersionV21:
		return "V2.1"
	default:
		return fmt.Sprintf("unknown(%d)", int(v))
	}
}

// Settings holds the mutable state of the emulated VTX. One instance lives
// for the lifetime of the process and is handed to each engine in turn, so
// the device keeps its configuration across reconnects. Nothing is persisted
// to disk.
type Settings struct {
	Version     Version
	Channel     byte
	PowerIndex  byte   // index into PowerLevels, 7-bit (top bit masked on write)
	Mode        byte   // opaque flag bits, stored and echoed without interpretation
	Frequency   uint16 // MHz, wraps by construction
	PowerLevels []byte // dBm values, indexable by PowerIndex (V2.1 only on the wire)
}

// NewSettings returns a Settings with the emulator defaults: SmartAudio V2,
// channel 1, power index 0, mode 0b00010 (unlocked), 5865 MHz and the example
// V2.1 power table [0, 14, 20, 26] dBm.
func NewSettings() *Settings {
	return &Settings{
		Version:     VersionV2,
		Channel:     1,
		PowerIndex:  0,
		Mode:        0b00010,
		Frequency:   5865,
		PowerLevels: []byte{0x00, 0x0E, 0x14, 0x1A},
	}
}

// String returns a log-friendly summary of the current settings
func (s *Settings) String() string {
	return fmt.Sprintf("Settings{version=%s, channel=%d, power=%d, mode=0b%05b, frequency=%d MHz, levels=%v}",
		s.Version, s.Channel, s.PowerIndex, s.Mode, s.Frequency, s.PowerLevels)
}
