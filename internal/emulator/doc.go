// Package emulator binds the SmartAudio protocol core to a byte transport.
//
// The engine is deliberately transport-agnostic: anything that can read and
// write bytes (a net.Conn, a WebSocket bridge, an in-memory pipe in tests)
// can carry the protocol. The engine consumes the stream one byte at a time,
// mirroring the half-duplex serial link the protocol was designed for, and
// writes at most one response frame per assembled request.
//
// The transport collaborators live in the server package; this package only
// knows about an io.ReadWriter.
package emulator
