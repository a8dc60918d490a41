package cpu

import "fmt"

// incrementDecrement defines INC r and DEC r (0x04, 0x05, ..., 0x3D).
//
//	INC r      1 cycle
//	INC (HL)   3 cycles
func incrementDecrement(opcode uint8) {
	reg := opcode >> 3 & 7
	dec := opcode&1 == 1
	name := "INC " + registerNames[reg]
	if dec {
		name = "DEC " + registerNames[reg]
	}
	op := func(c *CPU, n uint8) uint8 {
		if dec {
			return c.decrement(n)
		}
		return c.increment(n)
	}

	if reg == 6 {
		DefineInstruction(opcode, name, 0, nil,
			func(c *CPU) { c.lo = c.bus.Read(c.HL.Uint16()) },
			func(c *CPU) { c.bus.Write(c.HL.Uint16(), op(c, c.lo)) },
		)
		return
	}
	DefineInstruction(opcode, name, 0, func(c *CPU) {
		r := c.registerIndex(reg)
		*r = op(c, *r)
	})
}

// arithmetic defines the 8-bit ALU operations on A (0x80 - 0xBF).
//
//	ADD A, r   1 cycle
//	ADD A, (HL) 2 cycles
func arithmetic(opcode uint8) {
	op, src := opcode>>3&7, opcode&7
	name := fmt.Sprintf("%s %s", aluNames[op], registerNames[src])

	if src == 6 {
		DefineInstruction(opcode, name, 0, nil, func(c *CPU) {
			c.alu(op, c.bus.Read(c.HL.Uint16()))
		})
		return
	}
	DefineInstruction(opcode, name, 0, func(c *CPU) {
		c.alu(op, *c.registerIndex(src))
	})
}

func init() {
	for i := uint8(0); i < 8; i++ {
		incrementDecrement(0x04 | i<<3)
		incrementDecrement(0x05 | i<<3)

		op := i
		DefineInstruction(0xC6|i<<3, aluNames[i]+" d8", 1, nil, func(c *CPU) {
			c.alu(op, c.readOperand())
		})
	}
	for opcode := 0x80; opcode < 0xC0; opcode++ {
		arithmetic(uint8(opcode))
	}

	// 16-bit arithmetic
	for i := uint8(0); i < 4; i++ {
		rr := i
		DefineInstruction(0x03|i<<4, "INC "+pairNames[i], 0, nil, func(c *CPU) {
			c.setPair(rr, c.pair(rr)+1)
		})
		DefineInstruction(0x0B|i<<4, "DEC "+pairNames[i], 0, nil, func(c *CPU) {
			c.setPair(rr, c.pair(rr)-1)
		})
		DefineInstruction(0x09|i<<4, "ADD HL, "+pairNames[i], 0, nil, func(c *CPU) {
			c.HL.SetUint16(c.addUint16(c.HL.Uint16(), c.pair(rr)))
		})
	}

	DefineInstruction(0xE8, "ADD SP, r8", 1, nil,
		func(c *CPU) { c.lo = c.readOperand() },
		func(c *CPU) { c.vector = c.addSPSigned(c.lo) },
		func(c *CPU) { c.SP = c.vector },
	)
}
