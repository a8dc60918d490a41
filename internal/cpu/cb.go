package cpu

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/pkg/bits"
)

// defineCB defines the instruction for the 0xCB opcode. Bits 6-7
// select the operation, bits 3-5 the rotate or bit index, and bits
// 0-2 the operand.
//
//	00 - RLC, RRC, RL, RR, SLA, SRA, SWAP, SRL
//	01 - BIT n
//	10 - RES n
//	11 - SET n
//
// Register operands take 2 cycles, (HL) takes 4 cycles except for
// BIT, which does not write back and takes 3.
func defineCB(opcode uint8) {
	x, y, z := opcode>>6, opcode>>3&7, opcode&7

	var name string
	var op func(c *CPU, n uint8) uint8
	switch x {
	case 0:
		name = fmt.Sprintf("%s %s", rotateNames[y], registerNames[z])
		op = func(c *CPU, n uint8) uint8 { return c.rotate(y, n) }
	case 1:
		name = fmt.Sprintf("BIT %d, %s", y, registerNames[z])
		if z == 6 {
			DefineInstructionCB(opcode, name, nil, func(c *CPU) {
				c.testBit(c.bus.Read(c.HL.Uint16()), y)
			})
			return
		}
		DefineInstructionCB(opcode, name, func(c *CPU) {
			c.testBit(*c.registerIndex(z), y)
		})
		return
	case 2:
		name = fmt.Sprintf("RES %d, %s", y, registerNames[z])
		op = func(c *CPU, n uint8) uint8 { return bits.Reset(n, y) }
	case 3:
		name = fmt.Sprintf("SET %d, %s", y, registerNames[z])
		op = func(c *CPU, n uint8) uint8 { return bits.Set(n, y) }
	}

	if z == 6 {
		DefineInstructionCB(opcode, name, nil,
			func(c *CPU) { c.lo = c.bus.Read(c.HL.Uint16()) },
			func(c *CPU) { c.bus.Write(c.HL.Uint16(), op(c, c.lo)) },
		)
		return
	}
	DefineInstructionCB(opcode, name, func(c *CPU) {
		r := c.registerIndex(z)
		*r = op(c, *r)
	})
}

func init() {
	for opcode := 0; opcode < 0x100; opcode++ {
		defineCB(uint8(opcode))
	}
}
