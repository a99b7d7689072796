// Package logging provides structured logging for the VTX emulator.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the emulator. It provides both general logging
// functions and specialized functions for protocol-specific logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (hex dumps, frame assembly, dispatch)
//   - Info: Normal operations (connections, state changes)
//   - Warn: Non-fatal issues (CRC mismatches, unknown commands, retries)
//   - Error: Fatal issues (startup failures, exhausted reconnect budget)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Settings changed",
//	    zap.String("field", "channel"),
//	    zap.Uint8("value", 5),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogConnection(remoteAddr, "connection_accepted")
//	logging.LogFrame(remoteAddr, "received", frameBytes)
//	logging.LogRawBytes("Assembler candidate", buf)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When no level is set (flag or VTX_LOG_LEVEL), logging is silent. This keeps
// the emulator quiet when driven from test harness scripts that parse stdout.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
