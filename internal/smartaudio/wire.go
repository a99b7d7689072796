package smartaudio

// Frame delimiter bytes
const (
	SyncByte   = 0xAA
	HeaderByte = 0x55
)

// Raw command ids as sent by a SmartAudio client. Peers using the shifted
// convention send these values left-shifted by one bit.
const (
	CmdGetSettings  = 0x01
	CmdSetPower     = 0x02
	CmdSetChannel   = 0x03
	CmdSetFrequency = 0x04
	CmdSetMode      = 0x05
)

// GET_SETTINGS response command ids, one per protocol revision.
const (
	RespSettingsV1  = 0x01
	RespSettingsV2  = 0x09
	RespSettingsV21 = 0x11
)

// MinFrameSize is the smallest complete frame: sync, header, command, a zero
// length byte and the CRC.
const MinFrameSize = 5
