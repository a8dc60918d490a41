package cartridge

// MemoryBankedCartridge2 represents a MBC2 cartridge, with up to 256kB of
// ROM and 512 half-bytes of built-in RAM, mirrored across 0xA000-0xBFFF.
type MemoryBankedCartridge2 struct {
	*base

	ramg bool
	romb uint8
}

// NewMemoryBankedCartridge2 returns a new MemoryBankedCartridge2 cartridge.
func NewMemoryBankedCartridge2(b *base) *MemoryBankedCartridge2 {
	b.ram = make([]byte, 512)
	b.ramBanks = 1
	return &MemoryBankedCartridge2{
		base: b,
		romb: 0x01,
	}
}

// ReadMapped returns the value from the cartridges ROM or RAM, depending
// on the bank selected.
func (m *MemoryBankedCartridge2) ReadMapped(address uint16) (uint8, error) {
	switch {
	case address < 0x4000:
		return m.readROM(0, address), nil
	case isROM(address):
		return m.readROM(int(m.romb), address), nil
	case isRAM(address):
		if !m.ramg {
			return 0xFF, nil
		}
		return m.ram[address&0x01FF] | 0xF0, nil
	}
	return 0xFF, unmapped(address)
}

// WriteMapped attempts to switch the ROM bank, or writes to the built-in
// RAM. Bit 8 of the address selects between the RAM enable and the ROM
// bank register.
func (m *MemoryBankedCartridge2) WriteMapped(address uint16, value uint8) error {
	switch {
	case address < 0x4000:
		if address&0x100 == 0x100 {
			m.romb = value & 0x0F
			if m.romb == 0 {
				m.romb = 1
			}
		} else {
			m.ramg = value&0x0F == 0x0A
		}
	case isROM(address):
	case isRAM(address):
		if m.ramg {
			m.ram[address&0x01FF] = value & 0x0F
		}
	default:
		return unmapped(address)
	}
	return nil
}
