// Package server contains the transport collaborators of the VTX emulator.
//
// The protocol engine itself is transport-agnostic; this package attaches it
// to the outside world in one of three ways:
//
//   - Dialer: connect out to a serial-over-TCP endpoint, the way a physical
//     VTX hangs off a flight controller UART. This matches SITL-style test
//     harnesses, which expose their serial ports as TCP listeners. Failed
//     connections are retried with exponential backoff.
//   - Server: accept one TCP client at a time and answer it directly. The
//     listener can announce itself over mDNS so harnesses on the local
//     network find it without configuration.
//   - WSBridge: the same byte stream carried over WebSocket binary messages,
//     for tooling that cannot open raw sockets.
//
// All transports drive the same engine; none of them interpret protocol
// bytes. Transport failures never reach the protocol core.
package server
