// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/bits"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// State holds the state of the buttons, the lower 4 bits
	// for the action buttons and the upper 4 bits for the
	// direction buttons. A 0 in a bit indicates that the button
	// is pressed.
	State Button

	selected uint8
	irq      *interrupts.Service
}

// New returns a new joypad state, with every button released
// and neither group selected.
func New(irq *interrupts.Service) *State {
	return &State{
		State:    0xFF,
		selected: types.Bit4 | types.Bit5,
		irq:      irq,
	}
}

// lines returns the input lines P10-P13 for the selected groups.
func (s *State) lines() uint8 {
	lines := uint8(0x0F)
	if s.selected&types.Bit4 == 0 {
		lines &= s.State >> 4
	}
	if s.selected&types.Bit5 == 0 {
		lines &= s.State & 0x0F
	}
	return lines
}

// update requests the joypad interrupt when one of the input lines
// went low.
func (s *State) update(before uint8) {
	if before&^s.lines() != 0 {
		s.irq.Request(interrupts.Joypad)
	}
}

// Read returns the value of the P1 register.
func (s *State) Read(uint16) uint8 {
	return 0xC0 | s.selected | s.lines()
}

// Write selects the button groups read through the P1 register.
func (s *State) Write(_ uint16, value uint8) {
	before := s.lines()
	s.selected = value & (types.Bit4 | types.Bit5)
	s.update(before)
}

// Press presses a button.
func (s *State) Press(button Button) {
	before := s.lines()
	// reset the button bit in the state (0 = pressed)
	s.State = bits.Reset(s.State, button)
	s.update(before)
}

// Release releases a button.
func (s *State) Release(button Button) {
	// set the button bit in the state (1 = released)
	s.State = bits.Set(s.State, button)
}
