package cpu

import "github.com/thelolagemann/gomeboy-core/internal/types"

type Flag = uint8

const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero Flag = types.Bit7
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract Flag = types.Bit6
	// FlagHalfCarry is set when the last operation carried from
	// (or borrowed into) bit 3, or bit 11 for 16-bit additions.
	FlagHalfCarry Flag = types.Bit5
	// FlagCarry is set when the last operation carried from (or
	// borrowed into) bit 7, or bit 15 for 16-bit additions.
	FlagCarry Flag = types.Bit4
)

// setFlags replaces the flags in the F register. The lower nibble
// of F always reads 0.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	if zero {
		c.F |= FlagZero
	}
	if subtract {
		c.F |= FlagSubtract
	}
	if halfCarry {
		c.F |= FlagHalfCarry
	}
	if carry {
		c.F |= FlagCarry
	}
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&flag != 0
}

// condition evaluates the condition encoded in bits 3-4 of a
// conditional jump, call or return.
//
//	00 - NZ
//	01 - Z
//	10 - NC
//	11 - C
func (c *CPU) condition(opcode uint8) bool {
	switch opcode >> 3 & 3 {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	}
	return c.isFlagSet(FlagCarry)
}

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}
