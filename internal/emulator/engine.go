package emulator

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vkopitsa/vtx-emulator/internal/logging"
	"github.com/vkopitsa/vtx-emulator/internal/smartaudio"
)

// Engine drives the SmartAudio protocol over a single byte stream. It owns a
// frame assembler and a dispatcher bound to the device settings, and processes
// the stream strictly one byte at a time: consume a byte, possibly write one
// response frame, consume the next byte.
//
// An Engine serves exactly one connection. The Settings it mutates may outlive
// it (the emulated device keeps its configuration across reconnects), but must
// never be driven by two engines concurrently.
type Engine struct {
	settings   *smartaudio.Settings
	assembler  *smartaudio.Assembler
	dispatcher *smartaudio.Dispatcher
}

// New creates an engine operating on the given device settings
func New(settings *smartaudio.Settings) *Engine {
	return &Engine{
		settings:   settings,
		assembler:  smartaudio.NewAssembler(),
		dispatcher: smartaudio.NewDispatcher(settings),
	}
}

// Settings returns the device settings the engine mutates
func (e *Engine) Settings() *smartaudio.Settings {
	return e.settings
}

// Run consumes rw until end of stream, answering every well-formed request.
// Corrupt frames and unknown commands are logged and dropped without a reply;
// only transport failures end the loop. A clean end of stream (the peer closed
// the connection) returns nil.
func (e *Engine) Run(rw io.ReadWriter, remoteAddr string) error {
	reader := bufio.NewReader(rw)

	for {
		b, err := reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				logging.LogConnection(remoteAddr, "connection_closed_by_peer")
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}

		raw := e.assembler.Feed(b)
		if raw == nil {
			continue
		}
		logging.LogRawBytes("Assembled candidate frame", raw)

		frame, err := smartaudio.ValidateFrame(raw)
		if err != nil {
			// Checksum mismatch or truncated candidate: drop it silently,
			// SmartAudio has no NAK.
			logging.Warn("Dropping invalid frame",
				zap.String("remote_addr", remoteAddr),
				zap.Error(err),
			)
			continue
		}

		resp, err := e.dispatcher.Dispatch(frame)
		if err != nil {
			logging.Warn("No handler for command",
				zap.String("remote_addr", remoteAddr),
				zap.String("frame", frame.String()),
				zap.Error(err),
			)
			continue
		}
		if resp == nil {
			continue
		}

		logging.LogFrame(remoteAddr, "sent", resp)
		if _, err := rw.Write(resp); err != nil {
			return fmt.Errorf("write failed: %w", err)
		}
		logging.Info("Answered request",
			zap.String("remote_addr", remoteAddr),
			zap.String("request", frame.String()),
			zap.String("settings", e.settings.String()),
		)
	}
}
