// Package interrupts implements the interrupt controller of the
// Game Boy, which holds the enable mask (types.IE), the request
// mask (types.IF) and the interrupt master enable (IME).
package interrupts

import (
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// Source identifies one of the five interrupt sources. The value
// of a Source is its bit index in the IF and IE registers, which
// is also its priority; lower values are serviced first.
type Source uint8

const (
	// VBlank is requested every time the video unit enters
	// the vertical blanking period.
	VBlank Source = iota
	// LCD is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCD
	// Timer is requested when the timer overflows
	// (types.TIMA > 0xFF).
	Timer
	// Serial is requested when a serial transfer is
	// completed.
	Serial
	// Joypad is requested when any of types.P1 bits 0-3
	// go from high to low.
	Joypad
)

const (
	VBlankFlag = types.Bit0
	LCDFlag    = types.Bit1
	TimerFlag  = types.Bit2
	SerialFlag = types.Bit3
	JoypadFlag = types.Bit4

	// mask covers the bits of IF and IE that are backed by a source.
	mask = 0x1F
)

// Flag returns the bit of the Source in the IF and IE registers.
func (s Source) Flag() uint8 {
	return 1 << s
}

// Vector returns the address the CPU jumps to when servicing s.
func (s Source) Vector() uint16 {
	return 0x0040 + uint16(s)*8
}

func (s Source) String() string {
	switch s {
	case VBlank:
		return "VBlank"
	case LCD:
		return "LCD"
	case Timer:
		return "Timer"
	case Serial:
		return "Serial"
	case Joypad:
		return "Joypad"
	}
	return "Unknown"
}

// Service is the interrupt service, used to request
// interrupts and to resolve the interrupt to be serviced.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt
// vector, and the corresponding bit in the Flag register
// will be cleared.
//
// The IME is set by the EI and RETI instructions, and
// cleared by DI and by dispatching an interrupt.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
	IME    bool  // interrupt master enable
}

// NewService returns a new Service.
func NewService() *Service {
	return &Service{}
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled, regardless of IME.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&mask != 0
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register. Requesting
// an interrupt that is already latched has no effect.
func (s *Service) Request(src Source) {
	s.Flag |= src.Flag()
}

// Clear acknowledges the specified interrupt, by clearing
// the corresponding bit in the Flag register.
func (s *Service) Clear(src Source) {
	s.Flag &^= src.Flag()
}

// HighestPending returns the highest priority interrupt that
// is both requested and enabled. The second return value is
// false if there is none.
func (s *Service) HighestPending() (Source, bool) {
	pending := s.Enable & s.Flag & mask
	if pending == 0 {
		return 0, false
	}
	for src := VBlank; src <= Joypad; src++ {
		if pending&src.Flag() != 0 {
			return src, true
		}
	}
	return 0, false
}

// ReadFlag returns the value of types.IF as seen on the bus;
// the upper 3 bits are always set.
func (s *Service) ReadFlag() uint8 {
	return s.Flag | 0xE0
}

// WriteFlag replaces the pending mask. Only the lower 5
// bits are used.
func (s *Service) WriteFlag(v uint8) {
	s.Flag = v & mask
}
