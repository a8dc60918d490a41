// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// PostBootDiv is the value of the internal divider once the
// DMG boot ROM hands over control to the cartridge.
const PostBootDiv uint16 = 0xABCC

// bits holds the divider bit watched for a falling edge for
// each of the clock selects of types.TAC.
//
//	00 = bit 9 (every 1024 ticks)
//	01 = bit 3 (every 16 ticks)
//	10 = bit 5 (every 64 ticks)
//	11 = bit 7 (every 256 ticks)
var bits = [4]uint16{1 << 9, 1 << 3, 1 << 5, 1 << 7}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
//
// The divider counts oscillator ticks, so it is advanced by
// 4 every machine cycle. TIMA is incremented on the falling
// edge of (enabled && divider&selected bit), which is why
// writes to DIV and TAC may increment TIMA.
type Controller struct {
	div uint16

	tima uint8
	tma  uint8
	tac  uint8

	enabled    bool
	currentBit uint16
	lastSignal bool

	// overflow is set for the machine cycle during which
	// TIMA reads 0 after overflowing.
	overflow bool
	// reloaded is set for the machine cycle during which
	// TIMA is reloaded from TMA.
	reloaded bool

	irq *interrupts.Service
}

// NewController returns a new timer controller.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		irq:        irq,
		currentBit: bits[0],
	}
}

// Reset sets the internal divider to div and clears the
// timer registers.
func (c *Controller) Reset(div uint16) {
	c.div = div
	c.tima, c.tma, c.tac = 0, 0, 0
	c.enabled = false
	c.currentBit = bits[0]
	c.overflow, c.reloaded = false, false
	c.lastSignal = c.signal()
}

// Tick ticks the timer controller by 1 M-Cycle (4 T-Cycles).
func (c *Controller) Tick() {
	c.reloaded = false
	if c.overflow {
		c.overflow = false
		c.tima = c.tma
		c.irq.Request(interrupts.Timer)
		c.reloaded = true
	}

	c.div += 4
	c.detectEdge()
}

// Div returns the full 16-bit internal divider.
func (c *Controller) Div() uint16 {
	return c.div
}

// Read returns the value of one of the timer registers.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(c.div >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0xF8
	}
	return 0xFF
}

// Write writes value to one of the timer registers.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		c.div = 0
		c.detectEdge()
	case types.TIMA:
		// writes to TIMA are ignored on the cycle it is reloaded,
		// and cancel the reload on the cycle it overflowed
		if !c.reloaded {
			c.tima = value
			c.overflow = false
		}
	case types.TMA:
		c.tma = value
		if c.reloaded {
			c.tima = value
		}
	case types.TAC:
		c.tac = value & 0x07
		c.enabled = value&types.Bit2 != 0
		c.currentBit = bits[value&0b11]
		c.detectEdge()
	}
}

func (c *Controller) signal() bool {
	return c.enabled && c.div&c.currentBit != 0
}

// detectEdge increments TIMA when the watched signal goes
// from high to low.
func (c *Controller) detectEdge() {
	s := c.signal()
	if c.lastSignal && !s {
		c.tima++
		if c.tima == 0 {
			c.overflow = true
		}
	}
	c.lastSignal = s
}
