package cpu

import (
	"errors"
	"fmt"
)

// ErrIllegalOpcode is wrapped by every IllegalOpcodeError.
var ErrIllegalOpcode = errors.New("cpu: illegal opcode")

// IllegalOpcodeError is returned once the CPU has fetched one of the
// opcodes that lock up the DMG (0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB,
// 0xEC, 0xED, 0xF4, 0xFC, 0xFD).
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("%v 0x%02X at 0x%04X", ErrIllegalOpcode, e.Opcode, e.PC)
}

func (e *IllegalOpcodeError) Unwrap() error {
	return ErrIllegalOpcode
}
