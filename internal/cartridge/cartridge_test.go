package cartridge

import (
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
)

// newROM returns a ROM image of the given type and size codes, with
// the first byte of every bank holding the bank number, a valid logo
// and a valid header checksum.
func newROM(t Type, romCode, ramCode uint8) []byte {
	rom := make([]byte, (32*1024)<<romCode)
	for bank := 0; bank < len(rom)/romBankSize; bank++ {
		rom[bank*romBankSize] = uint8(bank)
	}
	copy(rom[0x104:], logo[:])
	copy(rom[0x134:], "TESTROM")
	rom[0x147] = uint8(t)
	rom[0x148] = romCode
	rom[0x149] = ramCode

	var x uint8
	for _, b := range rom[0x134:0x14D] {
		x = x - b - 1
	}
	rom[0x14D] = x
	return rom
}

func mustNew(t *testing.T, rom []byte) Cartridge {
	t.Helper()
	c, err := New(rom)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func read(t *testing.T, c Cartridge, address uint16) uint8 {
	t.Helper()
	v, err := c.ReadMapped(address)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func write(t *testing.T, c Cartridge, address uint16, value uint8) {
	t.Helper()
	if err := c.WriteMapped(address, value); err != nil {
		t.Fatal(err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		typ      Type
		expected interface{}
	}{
		{ROM, &ROMCartridge{}},
		{ROMRAM, &ROMCartridge{}},
		{MBC1RAMBATT, &MemoryBankedCartridge1{}},
		{MBC2, &MemoryBankedCartridge2{}},
		{MBC3TIMERRAMBATT, &MemoryBankedCartridge3{}},
		{MBC5RUMBLE, &MemoryBankedCartridge5{}},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			c := mustNew(t, newROM(tt.typ, 1, 2))
			switch tt.expected.(type) {
			case *ROMCartridge:
				_, ok := c.(*ROMCartridge)
				if !ok {
					t.Errorf("expected ROMCartridge, got %T", c)
				}
			case *MemoryBankedCartridge1:
				if _, ok := c.(*MemoryBankedCartridge1); !ok {
					t.Errorf("expected MBC1, got %T", c)
				}
			case *MemoryBankedCartridge2:
				if _, ok := c.(*MemoryBankedCartridge2); !ok {
					t.Errorf("expected MBC2, got %T", c)
				}
			case *MemoryBankedCartridge3:
				if _, ok := c.(*MemoryBankedCartridge3); !ok {
					t.Errorf("expected MBC3, got %T", c)
				}
			case *MemoryBankedCartridge5:
				if _, ok := c.(*MemoryBankedCartridge5); !ok {
					t.Errorf("expected MBC5, got %T", c)
				}
			}
			if c.Header().CartridgeType != tt.typ {
				t.Errorf("expected type %s, got %s", tt.typ, c.Header().CartridgeType)
			}
		})
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(make([]byte, 0x100)); !errors.Is(err, ErrTooSmall) {
		t.Errorf("expected ErrTooSmall, got %v", err)
	}
	if _, err := New(newROM(HUDSONHUC3, 0, 0)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestHeader(t *testing.T) {
	rom := newROM(MBC1RAM, 2, 3)
	c := mustNew(t, rom)
	h := c.Header()
	if h.Title != "TESTROM" {
		t.Errorf("expected title TESTROM, got %q", h.Title)
	}
	if h.ROMSize != 128*1024 || h.RAMSize != 32*1024 {
		t.Errorf("unexpected sizes %d %d", h.ROMSize, h.RAMSize)
	}
	if err := h.Validate(); err != nil {
		t.Errorf("expected a valid header, got %v", err)
	}
	if h.Fingerprint == 0 {
		t.Errorf("expected a fingerprint")
	}
	if !strings.Contains(h.String(), "MBC1+RAM") {
		t.Errorf("expected type name in %q", h.String())
	}

	other := mustNew(t, newROM(MBC1RAM, 1, 3))
	if other.Header().Fingerprint == h.Fingerprint {
		t.Errorf("expected different images to have different fingerprints")
	}
}

func TestHeader_Mode(t *testing.T) {
	tests := []struct {
		flag     uint8
		mode     Flag
		color    bool
		hardware string
	}{
		{0x00, FlagOnlyDMG, false, "DMG"},
		{0x80, FlagSupportsCGB, true, "CGB"},
		{0xC0, FlagOnlyCGB, true, "CGB"},
	}
	for _, tt := range tests {
		rom := newROM(ROM, 0, 0)
		rom[0x143] = tt.flag
		h, err := parseHeader(rom)
		if err != nil {
			t.Fatal(err)
		}
		if h.CartridgeGBMode != tt.mode {
			t.Errorf("0x%02X: expected mode %d, got %d", tt.flag, tt.mode, h.CartridgeGBMode)
		}
		if h.GameboyColor() != tt.color {
			t.Errorf("0x%02X: expected GameboyColor %v", tt.flag, tt.color)
		}
		if h.Hardware() != tt.hardware {
			t.Errorf("0x%02X: expected hardware %s, got %s", tt.flag, tt.hardware, h.Hardware())
		}
		if !strings.Contains(h.String(), "Mode: "+tt.hardware) {
			t.Errorf("0x%02X: expected mode in %q", tt.flag, h.String())
		}
	}
}

func TestHeader_Validate(t *testing.T) {
	rom := newROM(ROM, 0, 0)
	rom[0x104] = 0
	rom[0x14D]++
	c := mustNew(t, rom[:0x4000])

	err := c.Header().Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	var merr *multierror.Error
	if !errors.As(err, &merr) || len(merr.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %v", err)
	}
	for _, target := range []error{ErrBadLogo, ErrBadHeaderChecksum, ErrSizeMismatch} {
		if !errors.Is(err, target) {
			t.Errorf("expected %v in %v", target, err)
		}
	}
}

func TestROMCartridge(t *testing.T) {
	c := mustNew(t, newROM(ROMRAM, 0, 2))
	if read(t, c, 0x4000) != 1 {
		t.Errorf("expected bank 1 at 0x4000")
	}
	write(t, c, 0x2000, 0x05)
	if read(t, c, 0x4000) != 1 {
		t.Errorf("ROM only cartridges cannot switch banks")
	}
	write(t, c, 0xA010, 0x42)
	if read(t, c, 0xA010) != 0x42 {
		t.Errorf("expected external RAM to hold writes")
	}

	noRAM := mustNew(t, newROM(ROM, 0, 0))
	if read(t, noRAM, 0xA000) != 0xFF {
		t.Errorf("expected 0xFF without external RAM")
	}

	if _, err := c.ReadMapped(0xC000); !errors.Is(err, ErrUnmapped) {
		t.Errorf("expected ErrUnmapped, got %v", err)
	}
	if err := c.WriteMapped(0xFF00, 0); !errors.Is(err, ErrUnmapped) {
		t.Errorf("expected ErrUnmapped, got %v", err)
	}
}

func TestMemoryBankedCartridge1(t *testing.T) {
	// 1MB, 64 banks
	c := mustNew(t, newROM(MBC1RAM, 5, 3))

	tests := []struct {
		bank1, bank2 uint8
		expected     uint8
	}{
		{0x00, 0, 1},
		{0x01, 0, 1},
		{0x1F, 0, 0x1F},
		{0x20, 0, 1}, // only 5 bits are used
		{0x02, 1, 0x22},
		{0x00, 1, 0x21},
		{0x05, 3, 0x25}, // wraps at 64 banks
	}
	for _, tt := range tests {
		write(t, c, 0x2000, tt.bank1)
		write(t, c, 0x4000, tt.bank2)
		if got := read(t, c, 0x4000); got != tt.expected {
			t.Errorf("bank1 0x%02X bank2 %d: expected bank 0x%02X, got 0x%02X", tt.bank1, tt.bank2, tt.expected, got)
		}
	}

	// advanced banking mode maps bank2 onto 0x0000-0x3FFF and RAM
	write(t, c, 0x4000, 1)
	if read(t, c, 0x0000) != 0 {
		t.Errorf("expected bank 0 in simple mode")
	}
	write(t, c, 0x6000, 1)
	if read(t, c, 0x0000) != 0x20 {
		t.Errorf("expected bank 0x20 in advanced mode, got 0x%02X", read(t, c, 0x0000))
	}

	// RAM
	write(t, c, 0x4000, 0)
	if read(t, c, 0xA000) != 0xFF {
		t.Errorf("expected disabled RAM to read 0xFF")
	}
	write(t, c, 0x0000, 0x0A)
	write(t, c, 0xA000, 0x11)
	write(t, c, 0x4000, 2)
	write(t, c, 0xA000, 0x22)
	if read(t, c, 0xA000) != 0x22 {
		t.Errorf("expected RAM bank 2")
	}
	write(t, c, 0x6000, 0)
	if read(t, c, 0xA000) != 0x11 {
		t.Errorf("expected RAM bank 0 in simple mode")
	}
	write(t, c, 0x0000, 0x00)
	write(t, c, 0xA000, 0x33)
	write(t, c, 0x0000, 0x0A)
	if read(t, c, 0xA000) != 0x11 {
		t.Errorf("writes to disabled RAM should be dropped")
	}
}

func TestMemoryBankedCartridge2(t *testing.T) {
	c := mustNew(t, newROM(MBC2, 3, 0))
	write(t, c, 0x2100, 0x03)
	if read(t, c, 0x4000) != 3 {
		t.Errorf("expected bank 3")
	}
	write(t, c, 0x2100, 0x00)
	if read(t, c, 0x4000) != 1 {
		t.Errorf("expected bank 0 to map to 1")
	}

	write(t, c, 0x0000, 0x0A)
	write(t, c, 0xA005, 0xAB)
	if read(t, c, 0xA005) != 0xFB {
		t.Errorf("expected half-byte RAM to read 0xFB, got 0x%02X", read(t, c, 0xA005))
	}
	if read(t, c, 0xA205) != 0xFB {
		t.Errorf("expected RAM to be mirrored")
	}
}

func TestMemoryBankedCartridge3(t *testing.T) {
	c := mustNew(t, newROM(MBC3TIMERRAMBATT, 6, 3))
	write(t, c, 0x2000, 0x7F)
	if read(t, c, 0x4000) != 0x7F {
		t.Errorf("expected bank 0x7F")
	}
	write(t, c, 0x2000, 0x00)
	if read(t, c, 0x4000) != 1 {
		t.Errorf("expected bank 0 to map to 1")
	}

	write(t, c, 0x0000, 0x0A)
	write(t, c, 0x4000, 0x03)
	write(t, c, 0xA000, 0x99)
	write(t, c, 0x4000, 0x00)
	if read(t, c, 0xA000) == 0x99 {
		t.Errorf("expected RAM banks to be distinct")
	}

	// RTC seconds
	write(t, c, 0x4000, 0x08)
	write(t, c, 0xA000, 0x2A)
	if read(t, c, 0xA000) != 0x00 {
		t.Errorf("expected latched seconds to be 0 before latching")
	}
	write(t, c, 0x6000, 0x00)
	write(t, c, 0x6000, 0x01)
	if read(t, c, 0xA000) != 0x2A {
		t.Errorf("expected latched seconds 0x2A, got 0x%02X", read(t, c, 0xA000))
	}
	if c.(*MemoryBankedCartridge3).RTC().Seconds != 0x2A {
		t.Errorf("expected live seconds 0x2A")
	}
}

func TestMemoryBankedCartridge5(t *testing.T) {
	// 8MB, 512 banks
	c := mustNew(t, newROM(MBC5RAM, 8, 4))
	write(t, c, 0x2000, 0x00)
	if read(t, c, 0x4000) != 0 {
		t.Errorf("expected bank 0 to be selectable")
	}
	write(t, c, 0x2000, 0x05)
	write(t, c, 0x3000, 0x01)
	if v := read(t, c, 0x4000); v != 0x05 {
		// the bank number is stored in the first byte, so bank 0x105 reads 0x05
		t.Errorf("expected bank 0x105, got 0x%02X", v)
	}

	write(t, c, 0x0000, 0x0A)
	write(t, c, 0x4000, 0x0F)
	write(t, c, 0xA000, 0x12)
	write(t, c, 0x4000, 0x00)
	write(t, c, 0xA000, 0x34)
	write(t, c, 0x4000, 0x0F)
	if read(t, c, 0xA000) != 0x12 {
		t.Errorf("expected RAM bank 15 to keep its value")
	}
}
