package cpu

import (
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/bits"
)

// add is a helper function for adding two bytes together and
// setting the flags accordingly.
//
// Used by:
//
//	ADD A, n
//	ADC A, n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, shouldCarry bool) {
	var carry uint8
	if shouldCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	sum := uint16(c.A) + uint16(n) + uint16(carry)
	sumHalf := c.A&0xF + n&0xF + carry
	c.setFlags(uint8(sum) == 0, false, sumHalf > 0xF, sum > 0xFF)
	c.A = uint8(sum)
}

// sub is a helper function for subtracting two bytes together and
// setting the flags accordingly. The result is only stored in A
// when store is true, which lets CP share the flag logic.
//
// Used by:
//
//	SUB A, n
//	SBC A, n
//	CP n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, shouldCarry bool, store bool) {
	var carry int16
	if shouldCarry && c.isFlagSet(FlagCarry) {
		carry = 1
	}
	diff := int16(c.A) - int16(n) - carry
	diffHalf := int16(c.A&0xF) - int16(n&0xF) - carry

	c.setFlags(uint8(diff) == 0, true, diffHalf < 0, diff < 0)
	if store {
		c.A = uint8(diff)
	}
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N, H, C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N, H, C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// alu performs the arithmetic or logic operation encoded in bits 3-5
// of opcodes 0x80 - 0xBF and 0xC6 - 0xFE on A and n.
func (c *CPU) alu(op uint8, n uint8) {
	switch op & 7 {
	case 0:
		c.add(n, false)
	case 1:
		c.add(n, true)
	case 2:
		c.sub(n, false, true)
	case 3:
		c.sub(n, true, true)
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	case 7:
		c.sub(n, false, false)
	}
}

var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from lower nibble.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 0x01
	c.setFlags(incremented == 0, false, n&0xF == 0xF, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 0x01
	c.setFlags(decremented == 0, true, n&0xF == 0, c.isFlagSet(FlagCarry))
	return decremented
}

// addUint16 is a helper function for adding two uint16 values together and
// setting the flags accordingly.
//
// Used by:
//
//	ADD HL, nn
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addUint16(a, b uint16) uint16 {
	sum := uint32(a) + uint32(b)
	c.setFlags(c.isFlagSet(FlagZero), false, (a&0xFFF)+(b&0xFFF) > 0xFFF, sum > 0xFFFF)
	return uint16(sum)
}

// addSPSigned adds the signed operand e to SP and returns the result,
// without storing it.
//
// Used by:
//
//	ADD SP, e
//	LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3 of the low byte.
//	C - Set if carry from bit 7 of the low byte.
func (c *CPU) addSPSigned(e uint8) uint16 {
	result := uint16(int32(c.SP) + int32(int8(e)))
	tmpVal := c.SP ^ uint16(int8(e)) ^ result
	c.setFlags(false, false, tmpVal&0x10 == 0x10, tmpVal&0x100 == 0x100)
	return result
}

// daa decimal adjusts the A register after a BCD addition or
// subtraction.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set if the adjustment carried.
func (c *CPU) daa() {
	a := c.A
	carry := c.isFlagSet(FlagCarry)
	if !c.isFlagSet(FlagSubtract) {
		if carry || a > 0x99 {
			a += 0x60
			carry = true
		}
		if c.isFlagSet(FlagHalfCarry) || a&0xF > 0x9 {
			a += 0x06
		}
	} else {
		if carry {
			a -= 0x60
		}
		if c.isFlagSet(FlagHalfCarry) {
			a -= 0x06
		}
	}
	c.A = a
	c.setFlags(a == 0, c.isFlagSet(FlagSubtract), false, carry)
}

// rotate performs the rotate, shift or swap operation encoded in bits
// 3-5 of opcodes 0xCB00 - 0xCB3F on n, and returns the result.
//
//	RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - The bit shifted out, reset for SWAP.
func (c *CPU) rotate(op uint8, n uint8) uint8 {
	var result uint8
	var carry bool
	switch op & 7 {
	case 0: // RLC
		result = n<<1 | n>>7
		carry = n&types.Bit7 != 0
	case 1: // RRC
		result = n>>1 | n<<7
		carry = n&types.Bit0 != 0
	case 2: // RL
		result = n << 1
		if c.isFlagSet(FlagCarry) {
			result |= types.Bit0
		}
		carry = n&types.Bit7 != 0
	case 3: // RR
		result = n >> 1
		if c.isFlagSet(FlagCarry) {
			result |= types.Bit7
		}
		carry = n&types.Bit0 != 0
	case 4: // SLA
		result = n << 1
		carry = n&types.Bit7 != 0
	case 5: // SRA
		result = n>>1 | n&types.Bit7
		carry = n&types.Bit0 != 0
	case 6: // SWAP
		result = n<<4 | n>>4
	case 7: // SRL
		result = n >> 1
		carry = n&types.Bit0 != 0
	}
	c.setFlags(result == 0, false, false, carry)
	return result
}

var rotateNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// testBit tests the bit at the given position in the given value.
//
//	BIT n, r
//	n = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit n of r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(value uint8, bit uint8) {
	c.setFlags(!bits.Test(value, bit), false, true, c.isFlagSet(FlagCarry))
}
