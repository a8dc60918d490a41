package types

// Single bit masks of an 8-bit register, used to address the flags of
// the hardware registers by position.
const (
	Bit0 uint8 = 1 << iota
	Bit1
	Bit2
	Bit3
	Bit4
	Bit5
	Bit6
	Bit7
)
