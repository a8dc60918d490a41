package cpu

import "github.com/thelolagemann/gomeboy-core/internal/types"

// halt handles the HALT instruction.
//
//   - IME set: the CPU halts until an interrupt is pending, which is
//     then dispatched.
//   - IME reset, no interrupt pending: the CPU halts until an interrupt
//     is pending, and then resumes without dispatching it.
//   - IME reset, interrupt pending: the CPU does not halt, and the byte
//     following HALT is read twice (the HALT bug).
//
// When EI directly precedes HALT and an interrupt is pending, the
// interrupt is dispatched with the address of the HALT pushed, so that
// HALT is executed again once the handler returns.
func (c *CPU) halt() {
	switch {
	case c.irq.IME:
		if c.eiDelayed && c.irq.HasInterrupts() {
			c.PC--
			return
		}
		c.mode = ModeHalt
	case c.irq.HasInterrupts():
		c.haltBug = true
	default:
		c.mode = ModeHalt
	}
}

// stop handles the STOP instruction. The divider is reset. If an
// interrupt is pending STOP behaves as a 1-byte NOP, otherwise the
// padding byte is skipped and the CPU stops until a button is pressed.
func (c *CPU) stop() {
	c.bus.Write(types.DIV, 0)
	if c.irq.HasInterrupts() {
		return
	}
	c.PC++
	c.mode = ModeStop
}

// rotateAccumulator performs RLCA, RRCA, RLA or RRA. Unlike the 0xCB
// rotates, the zero flag is always reset.
func (c *CPU) rotateAccumulator(op uint8) {
	c.A = c.rotate(op, c.A)
	c.F &^= FlagZero
}

func init() {
	DefineInstruction(0x00, "NOP", 0, nil)
	DefineInstruction(0x10, "STOP", 0, (*CPU).stop)
	DefineInstruction(0x76, "HALT", 0, (*CPU).halt)
	DefineInstruction(0xF3, "DI", 0, func(c *CPU) {
		c.irq.IME = false
		c.eiPending = false
	})
	DefineInstruction(0xFB, "EI", 0, func(c *CPU) {
		c.eiPending = true
	})

	DefineInstruction(0x07, "RLCA", 0, func(c *CPU) { c.rotateAccumulator(0) })
	DefineInstruction(0x0F, "RRCA", 0, func(c *CPU) { c.rotateAccumulator(1) })
	DefineInstruction(0x17, "RLA", 0, func(c *CPU) { c.rotateAccumulator(2) })
	DefineInstruction(0x1F, "RRA", 0, func(c *CPU) { c.rotateAccumulator(3) })

	DefineInstruction(0x27, "DAA", 0, (*CPU).daa)
	// CPL complements A.
	//
	//	N, H - Set.
	DefineInstruction(0x2F, "CPL", 0, func(c *CPU) {
		c.A = 0xFF ^ c.A
		c.F |= FlagSubtract | FlagHalfCarry
	})
	// SCF sets the carry flag.
	DefineInstruction(0x37, "SCF", 0, func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	// CCF complements the carry flag.
	DefineInstruction(0x3F, "CCF", 0, func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})
}
