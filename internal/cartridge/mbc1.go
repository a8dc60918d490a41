package cartridge

// MemoryBankedCartridge1 represents a MBC1 cartridge. It supports up to
// 2MB of ROM and 32kB of external RAM. The 2-bit secondary bank register
// selects either the upper ROM bank bits or the RAM bank, depending on
// the banking mode.
type MemoryBankedCartridge1 struct {
	*base

	ramEnabled bool
	bank1      uint8 // 5-bit ROM bank number, 0 reads as 1
	bank2      uint8 // 2-bit secondary bank number
	mode       bool  // advanced banking mode
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(b *base) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		base:  b,
		bank1: 1,
	}
}

// ReadMapped returns the value from the cartridges ROM or RAM, depending
// on the bank selected.
func (m *MemoryBankedCartridge1) ReadMapped(address uint16) (uint8, error) {
	switch {
	case address < 0x4000:
		bank := 0
		if m.mode {
			bank = int(m.bank2) << 5
		}
		return m.readROM(bank, address), nil
	case isROM(address):
		return m.readROM(int(m.bank2)<<5|int(m.bank1), address), nil
	case isRAM(address):
		if !m.ramEnabled {
			return 0xFF, nil
		}
		return m.readRAM(m.ramBank(), address), nil
	}
	return 0xFF, unmapped(address)
}

// WriteMapped attempts to switch the ROM or RAM bank, or writes to the
// external RAM.
func (m *MemoryBankedCartridge1) WriteMapped(address uint16, value uint8) error {
	switch {
	case address < 0x2000:
		m.ramEnabled = len(m.ram) > 0 && value&0x0F == 0x0A
	case address < 0x4000:
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.mode = value&0x01 == 0x01
	case isRAM(address):
		if m.ramEnabled {
			m.writeRAM(m.ramBank(), address, value)
		}
	default:
		return unmapped(address)
	}
	return nil
}

func (m *MemoryBankedCartridge1) ramBank() int {
	if m.mode {
		return int(m.bank2)
	}
	return 0
}
