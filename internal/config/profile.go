package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vkopitsa/vtx-emulator/internal/smartaudio"
)

// Profile is the on-disk emulator configuration. Every field is optional;
// missing values keep the emulator defaults, so a profile only needs to name
// what it changes.
type Profile struct {
	Device  DeviceProfile  `yaml:"device"`
	Network NetworkProfile `yaml:"network"`
}

// DeviceProfile describes the initial state of the emulated VTX
type DeviceProfile struct {
	Version     string `yaml:"version"` // "1", "2" or "2.1"
	Channel     uint8  `yaml:"channel"`
	Power       uint8  `yaml:"power"`        // power index into the level table
	Frequency   uint16 `yaml:"frequency"`    // MHz
	Mode        uint8  `yaml:"mode"`         // raw mode flag bits
	PowerLevels []int  `yaml:"power_levels"` // dBm values, max 255 each
}

// NetworkProfile describes where and how the emulator attaches to its peer
type NetworkProfile struct {
	Host       string   `yaml:"host"`
	Port       int      `yaml:"port"`
	MaxRetries int      `yaml:"max_retries"` // connect mode reconnect budget
	RetryDelay Duration `yaml:"retry_delay"` // initial backoff delay
}

// Duration adds human-readable YAML parsing to time.Duration. Profiles may
// write either a Go duration string ("1s", "500ms") or a bare number of
// seconds, which older emulator configurations used.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var seconds float64
	if err := value.Decode(&seconds); err != nil {
		return fmt.Errorf("invalid duration %q", value.Value)
	}
	*d = Duration(time.Duration(seconds * float64(time.Second)))
	return nil
}

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String formats the duration the way time.Duration does
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultProfile returns a profile matching the emulator defaults: a
// SmartAudio V2 device on channel 1 at 5865 MHz, attaching to port 5762 with
// a 1s initial retry delay and a 5000-attempt budget.
func DefaultProfile() *Profile {
	return &Profile{
		Device: DeviceProfile{
			Version:     "2",
			Channel:     1,
			Power:       0,
			Frequency:   5865,
			Mode:        0b00010,
			PowerLevels: []int{0x00, 0x0E, 0x14, 0x1A},
		},
		Network: NetworkProfile{
			Host:       "127.0.0.1",
			Port:       5762,
			MaxRetries: 5000,
			RetryDelay: Duration(time.Second),
		},
	}
}

// Load reads a YAML profile from path on top of the defaults
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	profile := DefaultProfile()
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return profile, nil
}

// Validate checks the profile for values the device model cannot represent
func (p *Profile) Validate() error {
	if _, err := smartaudio.ParseVersion(p.Device.Version); err != nil {
		return err
	}
	for i, level := range p.Device.PowerLevels {
		if level < 0 || level > 0xFF {
			return fmt.Errorf("power level %d out of range: %d (want 0-255)", i, level)
		}
	}
	if len(p.Device.PowerLevels) == 0 && p.Device.Version == "2.1" {
		return fmt.Errorf("a V2.1 device needs at least one power level")
	}
	if p.Network.Port < 1 || p.Network.Port > 65535 {
		return fmt.Errorf("port out of range: %d", p.Network.Port)
	}
	if p.Network.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative: %d", p.Network.MaxRetries)
	}
	if p.Network.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must not be negative: %s", p.Network.RetryDelay)
	}
	return nil
}

// Settings converts the device section into the initial device state
func (p *Profile) Settings() (*smartaudio.Settings, error) {
	version, err := smartaudio.ParseVersion(p.Device.Version)
	if err != nil {
		return nil, err
	}

	levels := make([]byte, len(p.Device.PowerLevels))
	for i, level := range p.Device.PowerLevels {
		levels[i] = byte(level)
	}

	settings := smartaudio.NewSettings()
	settings.Version = version
	settings.Channel = p.Device.Channel
	settings.PowerIndex = p.Device.Power & 0x7F
	settings.Mode = p.Device.Mode
	settings.Frequency = p.Device.Frequency
	if len(levels) > 0 {
		settings.PowerLevels = levels
	}
	return settings, nil
}

// Addr returns the host:port the network section points at
func (p *Profile) Addr() string {
	return fmt.Sprintf("%s:%d", p.Network.Host, p.Network.Port)
}
