package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// loadRegisterToRegister defines LD r, r' (0x40 - 0x7F), except for
// HALT (0x76).
//
//	LD r, r'   1 cycle
//	LD r, (HL) 2 cycles
//	LD (HL), r 2 cycles
func loadRegisterToRegister(opcode uint8) {
	dst, src := opcode>>3&7, opcode&7
	name := fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src])

	switch {
	case src == 6:
		DefineInstruction(opcode, name, 0, nil, func(c *CPU) {
			*c.registerIndex(dst) = c.bus.Read(c.HL.Uint16())
		})
	case dst == 6:
		DefineInstruction(opcode, name, 0, nil, func(c *CPU) {
			c.bus.Write(c.HL.Uint16(), *c.registerIndex(src))
		})
	default:
		DefineInstruction(opcode, name, 0, func(c *CPU) {
			*c.registerIndex(dst) = *c.registerIndex(src)
		})
	}
}

// loadImmediate defines LD r, d8 (0x06, 0x0E, ..., 0x3E).
//
//	LD r, d8   2 cycles
//	LD (HL), d8 3 cycles
func loadImmediate(opcode uint8) {
	dst := opcode >> 3 & 7
	name := fmt.Sprintf("LD %s, d8", registerNames[dst])

	if dst == 6 {
		DefineInstruction(opcode, name, 1, nil,
			func(c *CPU) { c.lo = c.readOperand() },
			func(c *CPU) { c.bus.Write(c.HL.Uint16(), c.lo) },
		)
		return
	}
	DefineInstruction(opcode, name, 1, nil, func(c *CPU) {
		*c.registerIndex(dst) = c.readOperand()
	})
}

// loadRegister16 defines LD rr, d16 (0x01, 0x11, 0x21, 0x31).
func loadRegister16(opcode uint8) {
	rr := opcode >> 4 & 3
	DefineInstruction(opcode, fmt.Sprintf("LD %s, d16", pairNames[rr]), 2, nil,
		func(c *CPU) { c.lo = c.readOperand() },
		func(c *CPU) {
			c.hi = c.readOperand()
			c.setPair(rr, c.address())
		},
	)
}

// indirectAddress returns the address used by LD (rr), A and
// LD A, (rr) and applies the post increment or decrement of HL.
//
//	0 - (BC)
//	1 - (DE)
//	2 - (HL+)
//	3 - (HL-)
func (c *CPU) indirectAddress(index uint8) uint16 {
	switch index & 3 {
	case 0:
		return c.BC.Uint16()
	case 1:
		return c.DE.Uint16()
	case 2:
		hl := c.HL.Uint16()
		c.HL.SetUint16(hl + 1)
		return hl
	}
	hl := c.HL.Uint16()
	c.HL.SetUint16(hl - 1)
	return hl
}

var indirectNames = [4]string{"(BC)", "(DE)", "(HL+)", "(HL-)"}

func init() {
	for opcode := 0x40; opcode < 0x80; opcode++ {
		if opcode == 0x76 {
			continue
		}
		loadRegisterToRegister(uint8(opcode))
	}
	for i := uint8(0); i < 8; i++ {
		loadImmediate(0x06 | i<<3)
	}
	for i := uint8(0); i < 4; i++ {
		loadRegister16(0x01 | i<<4)

		index := i
		DefineInstruction(0x02|i<<4, fmt.Sprintf("LD %s, A", indirectNames[i]), 0, nil, func(c *CPU) {
			c.bus.Write(c.indirectAddress(index), c.A)
		})
		DefineInstruction(0x0A|i<<4, fmt.Sprintf("LD A, %s", indirectNames[i]), 0, nil, func(c *CPU) {
			c.A = c.bus.Read(c.indirectAddress(index))
		})
	}

	DefineInstruction(0x08, "LD (a16), SP", 2, nil,
		func(c *CPU) { c.lo = c.readOperand() },
		func(c *CPU) { c.hi = c.readOperand() },
		func(c *CPU) { c.bus.Write(c.address(), uint8(c.SP)) },
		func(c *CPU) { c.bus.Write(c.address()+1, uint8(c.SP>>8)) },
	)

	// high page loads
	DefineInstruction(0xE0, "LDH (a8), A", 1, nil,
		func(c *CPU) { c.lo = c.readOperand() },
		func(c *CPU) { c.bus.Write(types.IOStart|uint16(c.lo), c.A) },
	)
	DefineInstruction(0xF0, "LDH A, (a8)", 1, nil,
		func(c *CPU) { c.lo = c.readOperand() },
		func(c *CPU) { c.A = c.bus.Read(types.IOStart | uint16(c.lo)) },
	)
	DefineInstruction(0xE2, "LD (C), A", 0, nil, func(c *CPU) {
		c.bus.Write(types.IOStart|uint16(c.C), c.A)
	})
	DefineInstruction(0xF2, "LD A, (C)", 0, nil, func(c *CPU) {
		c.A = c.bus.Read(types.IOStart | uint16(c.C))
	})

	// absolute loads
	DefineInstruction(0xEA, "LD (a16), A", 2, nil,
		func(c *CPU) { c.lo = c.readOperand() },
		func(c *CPU) { c.hi = c.readOperand() },
		func(c *CPU) { c.bus.Write(c.address(), c.A) },
	)
	DefineInstruction(0xFA, "LD A, (a16)", 2, nil,
		func(c *CPU) { c.lo = c.readOperand() },
		func(c *CPU) { c.hi = c.readOperand() },
		func(c *CPU) { c.A = c.bus.Read(c.address()) },
	)

	// stack pointer loads
	DefineInstruction(0xF8, "LD HL, SP+r8", 1, nil,
		func(c *CPU) { c.lo = c.readOperand() },
		func(c *CPU) { c.HL.SetUint16(c.addSPSigned(c.lo)) },
	)
	DefineInstruction(0xF9, "LD SP, HL", 0, nil, func(c *CPU) {
		c.SP = c.HL.Uint16()
	})

	// stack operations
	for i := uint8(0); i < 4; i++ {
		index := i
		DefineInstruction(0xC5|i<<4, "PUSH "+stackPairNames[i], 0, nil,
			func(c *CPU) { c.SP-- },
			func(c *CPU) {
				c.bus.Write(c.SP, *c.stackPair(index).High)
				c.SP--
			},
			func(c *CPU) { c.bus.Write(c.SP, *c.stackPair(index).Low) },
		)
		DefineInstruction(0xC1|i<<4, "POP "+stackPairNames[i], 0, nil,
			func(c *CPU) {
				c.lo = c.bus.Read(c.SP)
				c.SP++
			},
			func(c *CPU) {
				c.hi = c.bus.Read(c.SP)
				c.SP++
				c.stackPair(index).SetUint16(c.address())
				// the lower nibble of F is not backed by a flag
				c.F &= 0xF0
			},
		)
	}
}
