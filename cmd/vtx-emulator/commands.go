package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vkopitsa/vtx-emulator/internal/config"
	"github.com/vkopitsa/vtx-emulator/internal/logging"
	"github.com/vkopitsa/vtx-emulator/internal/server"
	"github.com/vkopitsa/vtx-emulator/internal/smartaudio"
	"github.com/vkopitsa/vtx-emulator/internal/ui"
)

// Shared flags
var (
	profilePath string
	saVersion   string
	channel     uint8
	power       uint8
	frequency   uint16
	powerLevels []int
	host        string
	port        int
	logLevel    string

	// connect mode
	maxRetries int
	retryDelay time.Duration

	// listen mode
	wsPort   int
	announce bool
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Dial into a serial-over-TCP endpoint and answer as the VTX",
	Long: `Connect to a host exposing a serial port over TCP (the SITL convention)
and speak SmartAudio on the connection.

Failed connection attempts are retried with an exponentially growing delay,
doubling from the initial delay up to one minute, until the retry budget is
exhausted. A connection that was established and later dropped resets the
budget.`,
	Example: `  # Attach to a SITL harness on the default port
  vtx-emulator connect

  # Emulate a SmartAudio V2.1 device on channel 2
  vtx-emulator connect --sa-version 2.1 --channel 2 --power-levels 0,14,20,26,32

  # Custom endpoint with verbose protocol logging
  vtx-emulator connect --host 10.0.0.5 --port 5763 --log-level debug

  # Load everything from a profile
  vtx-emulator connect --config emulator.yaml`,
	RunE: runConnect,
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Accept SmartAudio clients on a local TCP port",
	Long: `Listen for SmartAudio clients on a local TCP port and answer as the VTX.

One client is served at a time; device state persists across connections for
the emulator's lifetime. The listener can announce itself over mDNS as a
_smartaudio._tcp service and optionally bridge the byte stream to WebSocket
clients.`,
	Example: `  # Listen on the default port
  vtx-emulator listen

  # Announce over mDNS and enable the WebSocket bridge
  vtx-emulator listen --announce --ws-port 8762

  # Emulate a V1 device on a custom port
  vtx-emulator listen --sa-version 1 --port 5763`,
	RunE: runListen,
}

func init() {
	for _, cmd := range []*cobra.Command{connectCmd, listenCmd} {
		cmd.Flags().StringVar(&profilePath, "config", "", "Path to a YAML device profile (flags override it)")
		cmd.Flags().StringVar(&saVersion, "sa-version", "2", "SmartAudio version to emulate (1, 2 or 2.1)")
		cmd.Flags().Uint8Var(&channel, "channel", 1, "Initial channel")
		cmd.Flags().Uint8Var(&power, "power", 0, "Initial power index")
		cmd.Flags().Uint16Var(&frequency, "frequency", 5865, "Initial frequency in MHz")
		cmd.Flags().IntSliceVar(&powerLevels, "power-levels", nil, "Power level table in dBm (V2.1)")
		cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error; silent when unset)")
	}

	connectCmd.Flags().StringVar(&host, "host", "127.0.0.1", "Endpoint host to dial")
	connectCmd.Flags().IntVar(&port, "port", 5762, "Endpoint port to dial")
	connectCmd.Flags().IntVar(&maxRetries, "retries", 5000, "Maximum consecutive connection attempts")
	connectCmd.Flags().DurationVar(&retryDelay, "delay", time.Second, "Initial delay between connection attempts")

	listenCmd.Flags().StringVar(&host, "host", "", "Listen address (empty = all interfaces)")
	listenCmd.Flags().IntVar(&port, "port", 5762, "Listen port")
	listenCmd.Flags().IntVar(&wsPort, "ws-port", 0, "WebSocket bridge port (0 = disabled)")
	listenCmd.Flags().BoolVar(&announce, "announce", false, "Announce the listener over mDNS")
}

// loadProfile merges the optional profile file with explicitly set flags.
// Flags win over the file; the file wins over built-in defaults.
func loadProfile(cmd *cobra.Command) (*config.Profile, error) {
	profile := config.DefaultProfile()
	if profilePath != "" {
		loaded, err := config.Load(profilePath)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}

	if cmd.Flags().Changed("sa-version") {
		profile.Device.Version = saVersion
	}
	if cmd.Flags().Changed("channel") {
		profile.Device.Channel = channel
	}
	if cmd.Flags().Changed("power") {
		profile.Device.Power = power
	}
	if cmd.Flags().Changed("frequency") {
		profile.Device.Frequency = frequency
	}
	if cmd.Flags().Changed("power-levels") {
		profile.Device.PowerLevels = powerLevels
	}
	if cmd.Flags().Changed("host") {
		profile.Network.Host = host
	}
	if cmd.Flags().Changed("port") {
		profile.Network.Port = port
	}
	if cmd.Flags().Changed("retries") {
		profile.Network.MaxRetries = maxRetries
	}
	if cmd.Flags().Changed("delay") {
		profile.Network.RetryDelay = config.Duration(retryDelay)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

func printBanner(mode string, settings *smartaudio.Settings, extra ...[2]string) {
	levels := make([]string, len(settings.PowerLevels))
	for i, l := range settings.PowerLevels {
		levels[i] = fmt.Sprintf("%d", l)
	}

	banner := ui.NewBanner("VTX Emulator", mode).
		Add("SmartAudio", settings.Version.String()).
		Add("Channel", fmt.Sprintf("%d", settings.Channel)).
		Add("Power index", fmt.Sprintf("%d", settings.PowerIndex)).
		Add("Frequency", fmt.Sprintf("%d MHz", settings.Frequency)).
		Add("Power levels", strings.Join(levels, ", ")+" dBm")
	for _, p := range extra {
		banner.Add(p[0], p[1])
	}
	fmt.Println(banner.Render())
}

func runConnect(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile(cmd)
	if err != nil {
		return err
	}
	settings, err := profile.Settings()
	if err != nil {
		return err
	}
	if err := logging.Initialize(logLevel); err != nil {
		return err
	}
	defer logging.Sync()

	printBanner("connect tcp://"+profile.Addr(), settings,
		[2]string{"Max retries", fmt.Sprintf("%d", profile.Network.MaxRetries)},
		[2]string{"Retry delay", profile.Network.RetryDelay.String()},
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dialer := server.NewDialer(profile.Addr(), profile.Network.MaxRetries, profile.Network.RetryDelay.Std(), settings)
	if err := dialer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runListen(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile(cmd)
	if err != nil {
		return err
	}
	settings, err := profile.Settings()
	if err != nil {
		return err
	}

	printBanner(fmt.Sprintf("listen tcp://%s", profile.Addr()), settings)

	srv, err := server.New(&server.Config{
		Host:     profile.Network.Host,
		Port:     profile.Network.Port,
		WSPort:   wsPort,
		Announce: announce,
		LogLevel: logLevel,
	}, settings)
	if err != nil {
		return err
	}
	defer logging.Sync()

	return srv.Start()
}
