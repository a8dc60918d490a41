package cartridge

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC, only up to 32kB of ROM and an optional 8kB
// of external RAM.
type ROMCartridge struct {
	*base
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(b *base) *ROMCartridge {
	return &ROMCartridge{base: b}
}

// ReadMapped returns the value at the given address.
func (r *ROMCartridge) ReadMapped(address uint16) (uint8, error) {
	switch {
	case address < 0x4000:
		return r.readROM(0, address), nil
	case isROM(address):
		return r.readROM(1, address), nil
	case isRAM(address):
		return r.readRAM(0, address), nil
	}
	return 0xFF, unmapped(address)
}

// WriteMapped writes the value to the external RAM, writes to the
// ROM are ignored.
func (r *ROMCartridge) WriteMapped(address uint16, value uint8) error {
	switch {
	case isROM(address):
	case isRAM(address):
		r.writeRAM(0, address, value)
	default:
		return unmapped(address)
	}
	return nil
}
