// Package serial provides the serial port of the Game Boy, which
// shifts a byte out through SB while shifting the byte of the linked
// device in.
package serial

import (
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/scheduler"
	"github.com/thelolagemann/gomeboy-core/internal/timer"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

const (
	// ticksPerBit is the number of oscillator ticks between two bit
	// transfers on the internal clock (8192Hz).
	ticksPerBit = 512
)

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, data holds the next byte to be sent. AKA types.SB
// During a transfer, it has a mix of the incoming data and the outgoing data.
// each cycle, the leftmost bit of data is sent to the attached device, and
// shifted out of data, and the incoming bit is shifted into data.
//
// example:
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Cycle 1: data = o6 o5 o4 o3 o2 o1 o0 i0
//	Cycle 2: data = o5 o4 o3 o2 o1 o0 i0 i1
//	...
//	Cycle 8: data = i0 i1 i2 i3 i4 i5 i6 i7
//
// Where o0-o7 are the outgoing bits, and i0-i7 are the incoming bits.
type Controller struct {
	data            uint8
	count           uint8 // the number of bits that have been transferred.
	InternalClock   bool  // if true, this controller is the master.
	TransferRequest bool  // if true, a transfer has been requested.

	AttachedDevice Device // the device that is attached to this controller.

	irq   *interrupts.Service
	timer *timer.Controller
	s     *scheduler.Scheduler
}

// NewController creates a new Controller. A Controller is responsible for
// sending and receiving data to and from devices. It is also responsible for
// triggering serial interrupts.
//
// By default, the Controller is attached to a nullDevice, which acts as if
// there is no device attached. If you want to attach a device, use the
// Controller.Attach method.
func NewController(irq *interrupts.Service, t *timer.Controller, s *scheduler.Scheduler) *Controller {
	c := &Controller{
		AttachedDevice: nullDevice{},
		irq:            irq,
		timer:          t,
		s:              s,
	}
	s.RegisterEvent(scheduler.SerialBitTransfer, c.transferBit)
	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// Read returns the value of types.SB or types.SC.
func (c *Controller) Read(address uint16) uint8 {
	if address == types.SB {
		return c.data
	}
	v := uint8(0x7E) // bits 1-6 are unused
	if c.InternalClock {
		v |= types.Bit0
	}
	if c.TransferRequest {
		v |= types.Bit7
	}
	return v
}

// Write writes to types.SB or types.SC. Setting bit 7 of types.SC
// starts a transfer, which is clocked by this controller when bit 0
// is set, or by the attached device otherwise.
func (c *Controller) Write(address uint16, value uint8) {
	if address == types.SB {
		c.data = value
		return
	}
	c.InternalClock = value&types.Bit0 != 0
	c.TransferRequest = value&types.Bit7 != 0
	c.count = 0

	c.s.DescheduleEvent(scheduler.SerialBitTransfer)
	if c.TransferRequest && c.InternalClock {
		c.scheduleBit()
	}
}

// scheduleBit schedules the first bit transfer on the next falling
// edge of bit 8 of the divider.
func (c *Controller) scheduleBit() {
	ticks := ticksPerBit - uint64(c.timer.Div())&(ticksPerBit-1)
	c.s.ScheduleEvent(scheduler.SerialBitTransfer, ticks/4)
}

func (c *Controller) transferBit() {
	if !c.InternalClock || !c.TransferRequest {
		return
	}
	bit := c.AttachedDevice.Send()
	c.AttachedDevice.Receive(c.data&types.Bit7 == types.Bit7)

	c.shift(bit)
	if c.TransferRequest {
		c.s.ScheduleEvent(scheduler.SerialBitTransfer, ticksPerBit/4)
	}
}

// shift shifts bit into the data register, completing the transfer
// after the eighth bit.
func (c *Controller) shift(bit bool) {
	c.data <<= 1
	if bit {
		c.data |= 1
	}
	c.checkTransfer()
}

// checkTransfer checks if a transfer has been completed, and if so,
// triggers a serial interrupt, and clears the transfer request.
func (c *Controller) checkTransfer() {
	if c.count++; c.count == 8 {
		c.count = 0
		c.TransferRequest = false
		c.irq.Request(interrupts.Serial)
	}
}

// Send returns the leftmost bit of the data register, unless
// the caller is the master, in which case it always returns true.
// This is because the master is driving the clock, and thus should
// not be trying to read from its own data register.
func (c *Controller) Send() bool {
	if c.InternalClock {
		return true
	}
	return c.data&types.Bit7 == types.Bit7
}

// Receive receives a bit from the attached device, and shifts it into
// the data register. If the caller is the master, or no transfer was
// requested, it does nothing.
func (c *Controller) Receive(bit bool) {
	if !c.InternalClock && c.TransferRequest {
		c.shift(bit)
	}
}
