package s25f

// Command opcodes for the S25FL/S25FS family. RDAR and WRAR take a
// register address and only exist on chips with more than one set of
// status and control registers; the rest are the common JEDEC set.
const (
	opWriteEnable byte = 0x06
	opReadStatus  byte = 0x05
	opReadID      byte = 0x9f
	opBlockErase  byte = 0xd8

	opReadAnyReg  byte = 0x65
	opWriteAnyReg byte = 0x71

	opResetEnable byte = 0x66
	opReset       byte = 0x99
	opLegacyReset byte = 0xf0
)

// Command is a single command/response exchange: the frame to clock out
// and the number of response bytes to clock back in.
type Command struct {
	Tx []byte
	Rx int
}

// Chain is an ordered list of commands that must be issued back to back
// with no other traffic in between. The write-enable latch set by one
// command is consumed by the very next command the chip sees, so a
// broken chain corrupts the sequence.
type Chain []Command

// appendAddr24 packs a 24-bit address most-significant byte first.
func appendAddr24(frame []byte, addr uint32) []byte {
	return append(frame, byte(addr>>16), byte(addr>>8), byte(addr))
}
