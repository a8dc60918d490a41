package types

import "fmt"

// HardwareRegisters is a table of the side-effecting hardware
// registers, indexed by the address of the hardware register
// ANDed with 0x007F.
type HardwareRegisters [IORegisterSize]*HardwareRegister

// Register adds a hardware register for the given address. Either
// of read or write may be nil, in which case reads return 0xFF and
// writes are ignored respectively.
func (h *HardwareRegisters) Register(address HardwareAddress, name string, write func(v uint8), read func() uint8) {
	if address < IOStart || address >= HRAMStart {
		panic(fmt.Sprintf("hardware: %s address 0x%04X outside of I/O window", name, address))
	}
	if h[address&0x007F] != nil {
		panic(fmt.Sprintf("hardware: address 0x%04X has already been reserved by %s", address, h[address&0x007F].Name))
	}
	h[address&0x007F] = &HardwareRegister{
		Address: address,
		Name:    name,
		write:   write,
		read:    read,
	}
}

// Lookup returns the hardware register for the given address, or
// nil if the address has no side effects.
func (h *HardwareRegisters) Lookup(address uint16) *HardwareRegister {
	if address < IOStart || address >= HRAMStart {
		return nil
	}
	return h[address&0x007F]
}

// HardwareRegister represents a hardware register of the Game
// Boy. Reading or writing a hardware register may have side
// effects beyond plain storage.
type HardwareRegister struct {
	Address HardwareAddress
	Name    string

	write func(v uint8)
	read  func() uint8
}

// Read returns the value of the hardware register.
func (h *HardwareRegister) Read() uint8 {
	if h.read == nil {
		return NoRead()
	}
	return h.read()
}

// Write writes the value to the hardware register.
func (h *HardwareRegister) Write(value uint8) {
	if h.write != nil {
		h.write(value)
	}
}

// NoRead is a convenience function to return a read function that
// always returns 0xFF. This is useful for hardware IO that
// are not readable.
func NoRead() uint8 {
	return 0xFF
}
