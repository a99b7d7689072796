package emulator

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/vkopitsa/vtx-emulator/internal/smartaudio"
)

// exchange runs the engine against an in-memory connection, writes the given
// request stream and returns everything the engine answered.
func exchange(t *testing.T, settings *smartaudio.Settings, stream []byte) []byte {
	t.Helper()

	client, device := net.Pipe()
	defer client.Close()

	engine := New(settings)
	done := make(chan error, 1)
	go func() {
		defer device.Close()
		done <- engine.Run(device, "test")
	}()

	if _, err := client.Write(stream); err != nil {
		t.Fatalf("write request stream: %v", err)
	}

	// Collect responses until the device goes quiet
	var out bytes.Buffer
	buf := make([]byte, 256)
	for {
		_ = client.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		n, err := client.Read(buf)
		out.Write(buf[:n])
		if err != nil {
			break
		}
	}

	_ = client.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("engine returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("engine did not stop after connection close")
	}

	return out.Bytes()
}

func TestEngineGetSettings(t *testing.T) {
	request := smartaudio.BuildFrame(smartaudio.CmdGetSettings, nil)
	want := []byte{0xAA, 0x55, 0x09, 0x05, 0x01, 0x00, 0x02, 0x16, 0xE9, 0x88}

	got := exchange(t, smartaudio.NewSettings(), request)
	if !bytes.Equal(got, want) {
		t.Errorf("response = % X, want % X", got, want)
	}
}

func TestEngineCommandSequence(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(smartaudio.BuildFrame(smartaudio.CmdSetChannel, []byte{0x05}))
	stream.Write(smartaudio.BuildFrame(smartaudio.CmdSetFrequency, []byte{0x16, 0xA8}))
	stream.Write(smartaudio.BuildFrame(smartaudio.CmdSetPower, []byte{0x82}))

	settings := smartaudio.NewSettings()
	responses := exchange(t, settings, stream.Bytes())

	var want bytes.Buffer
	want.Write(smartaudio.BuildFrame(smartaudio.CmdSetChannel, []byte{0x05, 0x01}))
	want.Write(smartaudio.BuildFrame(smartaudio.CmdSetFrequency, []byte{0x16, 0xA8, 0x01}))
	want.Write(smartaudio.BuildFrame(smartaudio.CmdSetPower, []byte{0x02, 0x01}))
	if !bytes.Equal(responses, want.Bytes()) {
		t.Errorf("responses = % X, want % X", responses, want.Bytes())
	}

	if settings.Channel != 5 {
		t.Errorf("channel = %d, want 5", settings.Channel)
	}
	if settings.Frequency != 5800 {
		t.Errorf("frequency = %d, want 5800", settings.Frequency)
	}
	if settings.PowerIndex != 2 {
		t.Errorf("power index = %d, want 2", settings.PowerIndex)
	}
	// SET_FREQUENCY marks the mode as frequency-locked; SET_POWER leaves it
	if settings.Mode != 0b00001 {
		t.Errorf("mode = 0b%05b, want 0b00001", settings.Mode)
	}
}

// Garbage and corrupt frames must produce no reply and must not prevent a
// later valid frame from being answered.
func TestEngineSilentOnBadTraffic(t *testing.T) {
	var stream bytes.Buffer
	// line noise with a stray sync byte, then a frame with a bad CRC, then a
	// well-formed frame for a command the device does not know
	stream.Write([]byte{0x00, 0xFF, 0xAA, 0x13})
	stream.Write([]byte{0xAA, 0x55, 0x01, 0x00, 0xFF})
	stream.Write(smartaudio.BuildFrame(0x7E, []byte{0x01}))
	stream.Write(smartaudio.BuildFrame(smartaudio.CmdSetMode, []byte{0x04}))

	got := exchange(t, smartaudio.NewSettings(), stream.Bytes())
	want := smartaudio.BuildFrame(smartaudio.CmdSetMode, []byte{0x04, 0x01})
	if !bytes.Equal(got, want) {
		t.Errorf("responses = % X, want only the SET_MODE reply % X", got, want)
	}
}

func TestEngineStopsOnEOF(t *testing.T) {
	client, device := net.Pipe()
	engine := New(smartaudio.NewSettings())

	done := make(chan error, 1)
	go func() {
		done <- engine.Run(device, "test")
	}()

	_ = client.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil on clean close", err)
		}
	case <-time.After(time.Second):
		t.Fatal("engine did not stop on EOF")
	}
}
