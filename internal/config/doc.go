// Package config loads the emulator's YAML device profile.
//
// A profile describes the initial state of the emulated VTX (protocol
// revision, channel, power index, frequency, power level table) and the
// network endpoint the emulator attaches to. Every field is optional;
// omitted values keep the built-in defaults, so a minimal profile can be
// a single line:
//
//	device:
//	  version: "2.1"
//
// A complete profile:
//
//	device:
//	  version: "2.1"
//	  channel: 2
//	  power: 1
//	  frequency: 5800
//	  power_levels: [0, 14, 20, 26, 32]
//	network:
//	  host: 127.0.0.1
//	  port: 5762
//	  max_retries: 10
//	  retry_delay: 1s
//
// The profile is read once at startup. The emulator never writes it back;
// state changed over the wire lives only for the process lifetime.
package config
