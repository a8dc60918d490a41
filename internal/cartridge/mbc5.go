package cartridge

// MemoryBankedCartridge5 represents a MBC5 cartridge, with up to 8MB of ROM
// selected by a 9-bit bank number (bank 0 may be mapped to 0x4000) and up
// to 128kB of external RAM.
type MemoryBankedCartridge5 struct {
	*base

	ramEnabled bool
	romBank    uint16
	ramBank    uint8
	rumble     bool
}

// NewMemoryBankedCartridge5 returns a new MemoryBankedCartridge5 cartridge.
func NewMemoryBankedCartridge5(b *base) *MemoryBankedCartridge5 {
	t := b.header.CartridgeType
	return &MemoryBankedCartridge5{
		base:    b,
		romBank: 1,
		rumble:  t == MBC5RUMBLE || t == MBC5RUMBLERAM || t == MBC5RUMBLERAMBATT,
	}
}

// ReadMapped returns the value from the cartridges ROM or RAM, depending
// on the bank selected.
func (m *MemoryBankedCartridge5) ReadMapped(address uint16) (uint8, error) {
	switch {
	case address < 0x4000:
		return m.readROM(0, address), nil
	case isROM(address):
		return m.readROM(int(m.romBank), address), nil
	case isRAM(address):
		if !m.ramEnabled {
			return 0xFF, nil
		}
		return m.readRAM(int(m.ramBank), address), nil
	}
	return 0xFF, unmapped(address)
}

// WriteMapped attempts to switch the ROM or RAM bank, or writes to the
// external RAM.
func (m *MemoryBankedCartridge5) WriteMapped(address uint16, value uint8) error {
	switch {
	case address < 0x2000:
		m.ramEnabled = value == 0x0A
	case address < 0x3000:
		// ROM bank number (lower 8 bits)
		m.romBank = m.romBank&0x100 | uint16(value)
	case address < 0x4000:
		// ROM bank number (upper 1 bit)
		m.romBank = m.romBank&0xFF | uint16(value&0x01)<<8
	case address < 0x6000:
		// bit 3 drives the rumble motor on rumble cartridges
		if m.rumble {
			value &= 0x07
		}
		m.ramBank = value & 0x0F
	case isROM(address):
	case isRAM(address):
		if m.ramEnabled {
			m.writeRAM(int(m.ramBank), address, value)
		}
	default:
		return unmapped(address)
	}
	return nil
}
