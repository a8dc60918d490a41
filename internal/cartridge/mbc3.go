package cartridge

// RTC holds the clock registers of a MBC3 cartridge. The registers
// are stored and latched but do not advance on their own.
type RTC struct {
	Seconds              uint8
	Minutes              uint8
	Hours                uint8
	DaysLower            uint8
	DaysHigherAndControl uint8

	latched [5]uint8
}

// latch copies the live registers into the latched copy read by
// the CPU.
func (r *RTC) latch() {
	r.latched = [5]uint8{r.Seconds, r.Minutes, r.Hours, r.DaysLower, r.DaysHigherAndControl}
}

func (r *RTC) write(register uint8, value uint8) {
	switch register {
	case 0x8:
		r.Seconds = value & 0x3F
	case 0x9:
		r.Minutes = value & 0x3F
	case 0xA:
		r.Hours = value & 0x1F
	case 0xB:
		r.DaysLower = value
	case 0xC:
		r.DaysHigherAndControl = value & 0xC1
	}
}

// MemoryBankedCartridge3 represents a MBC3 cartridge. This cartridge type
// supports up to 2MB of ROM, 32kB of external RAM, and optionally a real
// time clock, whose registers are mapped in place of the RAM banks.
type MemoryBankedCartridge3 struct {
	*base

	romBank    uint8
	ramBank    uint8 // 0x00-0x03 selects RAM, 0x08-0x0C selects an RTC register
	ramEnabled bool

	hasRTC    bool
	rtc       RTC
	latchFlag uint8
}

// NewMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func NewMemoryBankedCartridge3(b *base) *MemoryBankedCartridge3 {
	return &MemoryBankedCartridge3{
		base:      b,
		romBank:   1,
		hasRTC:    b.header.CartridgeType == MBC3TIMERBATT || b.header.CartridgeType == MBC3TIMERRAMBATT,
		latchFlag: 0xFF,
	}
}

// RTC returns the clock registers of the cartridge.
func (m *MemoryBankedCartridge3) RTC() *RTC {
	return &m.rtc
}

// ReadMapped returns the value from the cartridges ROM, RAM or RTC,
// depending on the bank selected.
func (m *MemoryBankedCartridge3) ReadMapped(address uint16) (uint8, error) {
	switch {
	case address < 0x4000:
		return m.readROM(0, address), nil
	case isROM(address):
		return m.readROM(int(m.romBank), address), nil
	case isRAM(address):
		if !m.ramEnabled {
			return 0xFF, nil
		}
		if m.ramBank >= 0x08 {
			if !m.hasRTC || m.ramBank > 0x0C {
				return 0xFF, nil
			}
			return m.rtc.latched[m.ramBank-0x08], nil
		}
		return m.readRAM(int(m.ramBank), address), nil
	}
	return 0xFF, unmapped(address)
}

// WriteMapped attempts to switch the ROM or RAM bank, latch the clock,
// or writes to the external RAM or an RTC register.
func (m *MemoryBankedCartridge3) WriteMapped(address uint16, value uint8) error {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.ramBank = value & 0x0F
	case address < 0x8000:
		if m.hasRTC && m.latchFlag == 0x00 && value == 0x01 {
			m.rtc.latch()
		}
		m.latchFlag = value
	case isRAM(address):
		if !m.ramEnabled {
			return nil
		}
		if m.ramBank >= 0x08 {
			if m.hasRTC {
				m.rtc.write(m.ramBank, value)
			}
			return nil
		}
		m.writeRAM(int(m.ramBank), address, value)
	default:
		return unmapped(address)
	}
	return nil
}
