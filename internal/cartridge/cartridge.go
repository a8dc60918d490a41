// Package cartridge provides the bank switching strategies of the
// DMG cartridges. The cartridge holds the game ROM and any external
// RAM, and resolves every access to the cartridge windows of the
// memory map (0x0000-0x7FFF and 0xA000-0xBFFF).
package cartridge

import (
	"errors"
	"fmt"
)

var (
	// ErrUnmapped is returned when a mapper is asked to resolve an
	// address outside of the cartridge windows.
	ErrUnmapped = errors.New("cartridge: unmapped address")
	// ErrUnsupported is returned by New for cartridge types without
	// a mapper implementation.
	ErrUnsupported = errors.New("cartridge: unsupported cartridge type")
	// ErrTooSmall is returned by New when the image cannot hold a
	// cartridge header.
	ErrTooSmall = errors.New("cartridge: rom too small")
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// Cartridge represents a game cartridge. Reads and writes are only
// issued for addresses in the cartridge windows; writes to the ROM
// window are bank control writes and never change the ROM.
type Cartridge interface {
	ReadMapped(address uint16) (uint8, error)
	WriteMapped(address uint16, value uint8) error

	Header() *Header
}

// New parses the cartridge header of rom and returns the cartridge
// with the matching bank switching strategy.
func New(rom []byte) (Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, err
	}

	b := newBase(rom, header)
	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROMCartridge(b), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(b), nil
	case MBC2, MBC2BATT:
		return NewMemoryBankedCartridge2(b), nil
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return NewMemoryBankedCartridge3(b), nil
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return NewMemoryBankedCartridge5(b), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupported, header.CartridgeType)
}

// base holds the state shared by every bank switching strategy.
type base struct {
	rom    []byte
	ram    []byte
	header *Header

	romBanks int
	ramBanks int
}

// newBase copies rom into a buffer padded with 0xFF to a whole
// number of ROM banks (at least 2), and allocates the external RAM
// declared by the header.
func newBase(rom []byte, header *Header) *base {
	banks := (len(rom) + romBankSize - 1) / romBankSize
	if banks < 2 {
		banks = 2
	}
	padded := make([]byte, banks*romBankSize)
	copy(padded, rom)
	for i := len(rom); i < len(padded); i++ {
		padded[i] = 0xFF
	}

	b := &base{
		rom:      padded,
		header:   header,
		romBanks: banks,
	}
	if header.RAMSize > 0 {
		b.ram = make([]byte, header.RAMSize)
		b.ramBanks = (len(b.ram) + ramBankSize - 1) / ramBankSize
	}
	return b
}

func (b *base) Header() *Header {
	return b.header
}

// readROM returns the byte at offset in the given bank. Banks past
// the end of the image wrap around.
func (b *base) readROM(bank int, address uint16) uint8 {
	bank %= b.romBanks
	return b.rom[bank*romBankSize+int(address&0x3FFF)]
}

// ramOffset returns the offset into the external RAM for the given
// bank, or -1 if the cartridge has no external RAM.
func (b *base) ramOffset(bank int, address uint16) int {
	if len(b.ram) == 0 {
		return -1
	}
	return (bank%b.ramBanks*ramBankSize + int(address&0x1FFF)) % len(b.ram)
}

func (b *base) readRAM(bank int, address uint16) uint8 {
	if off := b.ramOffset(bank, address); off >= 0 {
		return b.ram[off]
	}
	return 0xFF
}

func (b *base) writeRAM(bank int, address uint16, value uint8) {
	if off := b.ramOffset(bank, address); off >= 0 {
		b.ram[off] = value
	}
}

func unmapped(address uint16) error {
	return fmt.Errorf("%w: 0x%04X", ErrUnmapped, address)
}

func isROM(address uint16) bool {
	return address < 0x8000
}

func isRAM(address uint16) bool {
	return address >= 0xA000 && address < 0xC000
}
