package cpu

import "fmt"

// returnSteps pop PC off the stack over three machine cycles.
var returnSteps = []step{
	func(c *CPU) {
		c.lo = c.bus.Read(c.SP)
		c.SP++
	},
	func(c *CPU) {
		c.hi = c.bus.Read(c.SP)
		c.SP++
	},
	func(c *CPU) { c.PC = c.address() },
}

// callSteps push PC onto the stack and jump to the address collected
// in lo and hi, over three machine cycles.
var callSteps = []step{
	func(c *CPU) { c.SP-- },
	func(c *CPU) {
		c.bus.Write(c.SP, uint8(c.PC>>8))
		c.SP--
	},
	func(c *CPU) {
		c.bus.Write(c.SP, uint8(c.PC))
		c.PC = c.address()
	},
}

func readLow(c *CPU) { c.lo = c.readOperand() }

func readHigh(c *CPU) { c.hi = c.readOperand() }

// readHighConditional reads the high byte of the operand and skips
// the rest of the instruction if the condition fails.
func readHighConditional(c *CPU) {
	c.hi = c.readOperand()
	if !c.condition(c.current.opcode) {
		c.skip()
	}
}

func jumpRelative(c *CPU) {
	c.PC = uint16(int32(c.PC) + int32(int8(c.lo)))
}

func concat(steps ...[]step) []step {
	var s []step
	for _, st := range steps {
		s = append(s, st...)
	}
	return s
}

func init() {
	DefineInstruction(0x18, "JR r8", 1, nil, readLow, jumpRelative)
	DefineInstruction(0xC3, "JP a16", 2, nil, readLow, readHigh, func(c *CPU) { c.PC = c.address() })
	DefineInstruction(0xE9, "JP HL", 0, func(c *CPU) { c.PC = c.HL.Uint16() })
	DefineInstruction(0xCD, "CALL a16", 2, nil, concat([]step{readLow, readHigh}, callSteps)...)
	DefineInstruction(0xC9, "RET", 0, nil, returnSteps...)

	// RETI enables interrupts without the delay of EI
	DefineInstruction(0xD9, "RETI", 0, nil, concat(returnSteps[:2], []step{func(c *CPU) {
		c.PC = c.address()
		c.irq.IME = true
	}})...)

	for i := uint8(0); i < 4; i++ {
		cc := conditionNames[i]

		// JR cc, r8  3/2 cycles
		DefineConditional(0x20|i<<3, fmt.Sprintf("JR %s, r8", cc), 1, 2,
			func(c *CPU) {
				c.lo = c.readOperand()
				if !c.condition(c.current.opcode) {
					c.skip()
				}
			},
			jumpRelative,
		)
		// JP cc, a16  4/3 cycles
		DefineConditional(0xC2|i<<3, fmt.Sprintf("JP %s, a16", cc), 2, 3,
			readLow, readHighConditional, func(c *CPU) { c.PC = c.address() },
		)
		// CALL cc, a16  6/3 cycles
		DefineConditional(0xC4|i<<3, fmt.Sprintf("CALL %s, a16", cc), 2, 3,
			concat([]step{readLow, readHighConditional}, callSteps)...,
		)
		// RET cc  5/2 cycles
		DefineConditional(0xC0|i<<3, fmt.Sprintf("RET %s", cc), 0, 2,
			concat([]step{func(c *CPU) {
				if !c.condition(c.current.opcode) {
					c.skip()
				}
			}}, returnSteps)...,
		)
	}

	// RST n  4 cycles
	for i := uint8(0); i < 8; i++ {
		vector := uint16(i) << 3
		DefineInstruction(0xC7|i<<3, fmt.Sprintf("RST %02XH", vector), 0, nil,
			func(c *CPU) { c.SP-- },
			func(c *CPU) {
				c.bus.Write(c.SP, uint8(c.PC>>8))
				c.SP--
			},
			func(c *CPU) {
				c.bus.Write(c.SP, uint8(c.PC))
				c.PC = vector
			},
		)
	}
}
