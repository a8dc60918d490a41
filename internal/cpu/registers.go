package cpu

import "github.com/thelolagemann/gomeboy-core/pkg/utils"

// Register represents a GB Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair represents a pair of GB Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return utils.BytesToUint16(*r.High, *r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High, *r.Low = utils.Uint16ToBytes(value)
}

// Registers represents the GB CPU registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// registerIndex returns a Register pointer for the given index, as
// encoded in bits 0-2 or 3-5 of an opcode. Index 6 encodes (HL) and
// has no register.
func (c *CPU) registerIndex(index uint8) *Register {
	switch index & 7 {
	case 0:
		return &c.B
	case 1:
		return &c.C
	case 2:
		return &c.D
	case 3:
		return &c.E
	case 4:
		return &c.H
	case 5:
		return &c.L
	case 7:
		return &c.A
	}
	return nil
}

var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// pair returns the value of the register pair encoded in bits 4-5
// of an opcode (BC, DE, HL, SP).
func (c *CPU) pair(index uint8) uint16 {
	switch index & 3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		return c.HL.Uint16()
	}
	return c.SP
}

// setPair sets the register pair encoded in bits 4-5 of an opcode
// (BC, DE, HL, SP).
func (c *CPU) setPair(index uint8, value uint16) {
	switch index & 3 {
	case 0:
		c.BC.SetUint16(value)
	case 1:
		c.DE.SetUint16(value)
	case 2:
		c.HL.SetUint16(value)
	default:
		c.SP = value
	}
}

var pairNames = [4]string{"BC", "DE", "HL", "SP"}

// stackPair returns the register pair encoded in bits 4-5 of a
// PUSH or POP opcode (BC, DE, HL, AF).
func (c *CPU) stackPair(index uint8) *RegisterPair {
	switch index & 3 {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	}
	return c.AF
}

var stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
