// Package smartaudio implements the device side of the SmartAudio protocol.
//
// SmartAudio is a half-duplex serial control protocol spoken between a flight
// controller and a video transmitter (VTX). This package contains everything
// needed to answer as the VTX: frame encoding and validation, the CRC-8
// integrity check, the byte-stream reassembly state machine, and the command
// handlers that mutate the emulated device settings.
//
// # Frame Format
//
// Every SmartAudio frame has the same shape on the wire:
//
//	[0]  0xAA     Sync byte
//	[1]  0x55     Header byte
//	[2]  command  Command id
//	[3]  length   Payload length in bytes
//	[4+] payload  Command payload (length bytes)
//	[N]  crc      CRC-8 (polynomial 0xD5) over command, length and payload
//
// All multi-byte quantities are big-endian. The CRC never covers the sync and
// header bytes, nor itself.
//
// # Command Encodings
//
// Real-world SmartAudio peers encode command ids in one of two conventions,
// depending on protocol revision: the raw id (GET_SETTINGS=0x01, SET_POWER=0x02,
// SET_CHANNEL=0x03, SET_FREQUENCY=0x04, SET_MODE=0x05) or the same id shifted
// left by one bit. Both encodings are accepted on input and resolve to the same
// handler; responses always carry the raw id.
//
// # Protocol Revisions
//
// The emulated device can speak V1, V2 or V2.1. The revision only affects the
// GET_SETTINGS response: each revision answers with its own response command id
// (0x01, 0x09 or 0x11) and V2.1 additionally reports the device's power level
// table.
//
// # Usage
//
//	settings := smartaudio.NewSettings()
//	dispatcher := smartaudio.NewDispatcher(settings)
//	assembler := smartaudio.NewAssembler()
//
//	for each received byte b:
//	    raw := assembler.Feed(b)
//	    if raw == nil {
//	        continue
//	    }
//	    frame, err := smartaudio.ValidateFrame(raw)
//	    if err != nil {
//	        continue // corrupt frame, drop silently
//	    }
//	    if resp := dispatcher.Dispatch(frame); resp != nil {
//	        conn.Write(resp)
//	    }
//
// # Error Handling
//
// SmartAudio has no negative-acknowledgement frame type. Corrupt frames,
// unknown commands and malformed payloads all produce no reply; the errors
// returned by ValidateFrame exist for logging only.
//
// # Thread Safety
//
// Frame encoding, validation and the checksum are stateless and safe for
// concurrent use. An Assembler and the Settings it feeds belong to a single
// connection and must not be shared without external synchronization.
package smartaudio
