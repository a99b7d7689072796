package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/vkopitsa/vtx-emulator/internal/emulator"
	"github.com/vkopitsa/vtx-emulator/internal/logging"
	"github.com/vkopitsa/vtx-emulator/internal/smartaudio"
)

// maxRetryDelay caps the exponential reconnect delay
const maxRetryDelay = 60 * time.Second

// Dialer attaches the emulator to a serial-over-TCP endpoint, the way a VTX
// plugs into a flight controller's UART. SITL-style harnesses expose their
// serial ports as TCP listeners; the emulator dials in and speaks SmartAudio
// over the connection.
//
// On connection failure the dialer retries with an exponentially growing
// delay (doubling from InitialDelay up to one minute) until MaxRetries
// consecutive failures, which is terminal. A connection that was established
// and later closed resets the retry budget.
type Dialer struct {
	Addr         string
	MaxRetries   int
	InitialDelay time.Duration

	settings *smartaudio.Settings
}

// NewDialer creates a dialer for the given endpoint and device settings
func NewDialer(addr string, maxRetries int, initialDelay time.Duration, settings *smartaudio.Settings) *Dialer {
	return &Dialer{
		Addr:         addr,
		MaxRetries:   maxRetries,
		InitialDelay: initialDelay,
		settings:     settings,
	}
}

// Run dials and serves until ctx is cancelled or the retry budget is
// exhausted. Device settings survive reconnects; each connection gets a fresh
// engine and frame assembler.
func (d *Dialer) Run(ctx context.Context) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = d.InitialDelay
	policy.Multiplier = 2
	policy.MaxInterval = maxRetryDelay
	// Deterministic doubling is easier to reason about in harness logs, and
	// the budget is bounded by MaxRetries rather than wall time.
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0
	policy.Reset()

	retries := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", d.Addr)
		if err != nil {
			retries++
			if retries >= d.MaxRetries {
				return fmt.Errorf("giving up after %d connection attempts: %w", retries, err)
			}
			delay := policy.NextBackOff()
			logging.Warn("Connection failed, retrying",
				zap.String("addr", d.Addr),
				zap.Duration("delay", delay),
				zap.Int("attempt", retries),
				zap.Int("max_attempts", d.MaxRetries),
			)
			if !sleep(ctx, delay) {
				return ctx.Err()
			}
			continue
		}

		logging.LogConnection(d.Addr, "connected")
		engine := emulator.New(d.settings)
		if err := engine.Run(conn, d.Addr); err != nil {
			logging.Warn("Connection ended with error",
				zap.String("addr", d.Addr),
				zap.Error(err),
			)
		}
		_ = conn.Close()

		// A served connection resets the backoff; the peer restarting is not
		// a failure.
		retries = 0
		policy.Reset()
		if !sleep(ctx, time.Second) {
			return ctx.Err()
		}
	}
}

// sleep waits for d unless ctx ends first; it reports whether the full delay
// elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
