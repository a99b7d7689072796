// Vtx-emulator emulates a SmartAudio video transmitter over TCP.
//
// It lets flight-controller firmware and other SmartAudio clients exercise
// their VTX control code against a realistic peer without physical hardware.
// The emulator either dials into a serial-over-TCP endpoint (the SITL
// convention) or accepts one client at a time on a local listener.
//
// Usage:
//
//	vtx-emulator connect [flags]
//	vtx-emulator listen [flags]
//
// See 'vtx-emulator --help' for available options.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkopitsa/vtx-emulator/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vtx-emulator",
	Short: "SmartAudio VTX emulator",
	Long: `A SmartAudio video transmitter emulator for testing flight-controller
firmware without physical hardware.

The emulator speaks SmartAudio V1, V2 and V2.1 over TCP. In connect mode it
dials into a serial-over-TCP endpoint the way a VTX hangs off a UART; in
listen mode it accepts a single client at a time on a local port, optionally
announcing itself over mDNS and bridging to WebSocket clients.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(listenCmd)
	rootCmd.AddCommand(versionCmd)
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vtx-emulator %s\n", version.Full())
	},
}
