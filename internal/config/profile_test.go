package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vkopitsa/vtx-emulator/internal/smartaudio"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeProfile(t, `
device:
  version: "2.1"
  channel: 2
  power: 1
  frequency: 5800
  power_levels: [0, 14, 20, 26, 32]
network:
  port: 5763
  max_retries: 10
`)

	profile, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	settings, err := profile.Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if settings.Version != smartaudio.VersionV21 {
		t.Errorf("version = %v, want V2.1", settings.Version)
	}
	if settings.Channel != 2 {
		t.Errorf("channel = %d, want 2", settings.Channel)
	}
	if settings.PowerIndex != 1 {
		t.Errorf("power index = %d, want 1", settings.PowerIndex)
	}
	if settings.Frequency != 5800 {
		t.Errorf("frequency = %d, want 5800", settings.Frequency)
	}
	if len(settings.PowerLevels) != 5 || settings.PowerLevels[4] != 32 {
		t.Errorf("power levels = %v, want [0 14 20 26 32]", settings.PowerLevels)
	}

	// Unspecified network fields keep their defaults
	if profile.Network.Host != "127.0.0.1" {
		t.Errorf("host = %q, want default 127.0.0.1", profile.Network.Host)
	}
	if profile.Addr() != "127.0.0.1:5763" {
		t.Errorf("addr = %q, want 127.0.0.1:5763", profile.Addr())
	}
	if profile.Network.MaxRetries != 10 {
		t.Errorf("max retries = %d, want 10", profile.Network.MaxRetries)
	}
	if profile.Network.RetryDelay.Std() != time.Second {
		t.Errorf("retry delay = %s, want default 1s", profile.Network.RetryDelay)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown version",
			content: "device:\n  version: \"4\"\n",
		},
		{
			name:    "power level too large",
			content: "device:\n  power_levels: [0, 300]\n",
		},
		{
			name:    "port out of range",
			content: "network:\n  port: 70000\n",
		},
		{
			name:    "negative retries",
			content: "network:\n  max_retries: -1\n",
		},
		{
			name:    "not yaml",
			content: "{{{",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeProfile(t, tt.content)); err == nil {
				t.Errorf("Load() accepted invalid profile:\n%s", tt.content)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() accepted a missing file")
	}
}

func TestDefaultProfileMatchesDeviceDefaults(t *testing.T) {
	settings, err := DefaultProfile().Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	want := smartaudio.NewSettings()
	if settings.Version != want.Version || settings.Channel != want.Channel ||
		settings.PowerIndex != want.PowerIndex || settings.Mode != want.Mode ||
		settings.Frequency != want.Frequency {
		t.Errorf("default profile settings %s differ from device defaults %s", settings, want)
	}
}
