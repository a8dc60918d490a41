// Package mmu provides a memory management unit for the Game Boy. The
// MMU resolves every address of the 16-bit address space to exactly one
// handler, and delegates to the other components through the IOBus
// interface. Reads and writes cost no cycles; the CPU is responsible for
// spending one machine cycle per access.
package mmu

import (
	"github.com/thelolagemann/gomeboy-core/internal/boot"
	"github.com/thelolagemann/gomeboy-core/internal/cartridge"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/ram"
	"github.com/thelolagemann/gomeboy-core/internal/scheduler"
	"github.com/thelolagemann/gomeboy-core/internal/timer"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// UnmappedValue is returned when reading from an address that
// nothing drives.
const UnmappedValue uint8 = 0xFF

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the other components through the IOBus interface.
type MMU struct {
	// 64kB address space
	raw [0x10000]*types.Address

	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	// 0xFF40 - 0xFF4B - Video registers
	Video types.IOBus
	vRAM  ram.RAM
	oam   ram.RAM

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFF00 - 0xFF7F - I/O Registers
	registers types.HardwareRegisters
	io        [types.IORegisterSize]uint8

	// 0xFF10 - 0xFF3F - Sound registers and Wave Pattern RAM
	Sound types.IOBus

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM ram.RAM

	// (0xFFFF) - interrupt enable register
	irq *interrupts.Service

	timer *timer.Controller
	dma   *DMA

	Log log.Logger

	err error
}

// Opt is a function that configures the MMU.
type Opt func(m *MMU)

// WithLogger sets the logger used by the MMU.
func WithLogger(l log.Logger) Opt {
	return func(m *MMU) {
		m.Log = l
	}
}

// New returns a new MMU. cart may be nil, in which case the cartridge
// windows read UnmappedValue.
func New(cart cartridge.Cartridge, irq *interrupts.Service, t *timer.Controller, s *scheduler.Scheduler, opts ...Opt) *MMU {
	m := &MMU{
		Cart:  cart,
		vRAM:  ram.NewRAM(types.VRAMSize),
		oam:   ram.NewRAM(types.OAMSize),
		wRAM:  NewWRAM(),
		zRAM:  ram.NewRAM(types.HRAMSize),
		irq:   irq,
		timer: t,
		Log:   log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.dma = newDMA(m, s)

	m.registerHardware()
	m.init()

	return m
}

func (m *MMU) init() {
	addresses := []types.Address{
		{Read: m.readCart, Write: m.writeCart},
		{Read: m.readVideo, Write: m.writeVideo},
		{Read: m.wRAM.Read, Write: m.wRAM.Write},
		{Read: m.readOAM, Write: m.writeOAM},
		{Read: unmapped, Write: drop},
		{Read: m.readIO, Write: m.writeIO},
		{Read: readOffset(m.zRAM.Read, types.HRAMStart), Write: writeOffset(m.zRAM.Write, types.HRAMStart)},
		{Read: func(uint16) uint8 { return m.irq.Enable }, Write: func(_ uint16, v uint8) { m.irq.Enable = v }},
		{Read: readOffset(m.wRAM.Read, types.EchoRAMOffset), Write: writeOffset(m.wRAM.Write, types.EchoRAMOffset)},
	}

	m.fill(0x0000, 0x8000, &addresses[0]) // ROM
	m.fill(0x8000, 0xA000, &addresses[1]) // VRAM
	m.fill(0xA000, 0xC000, &addresses[0]) // external RAM
	m.fill(0xC000, 0xE000, &addresses[2]) // WRAM
	m.fill(0xE000, 0xFE00, &addresses[8]) // echo
	m.fill(0xFE00, 0xFEA0, &addresses[3]) // OAM
	m.fill(0xFEA0, 0xFF00, &addresses[4]) // unusable
	m.fill(0xFF00, 0xFF80, &addresses[5]) // I/O
	m.fill(0xFF80, 0xFFFF, &addresses[6]) // HRAM
	m.raw[types.IE] = &addresses[7]
}

func (m *MMU) fill(start, end int, a *types.Address) {
	for i := start; i < end; i++ {
		m.raw[i] = a
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - offset)
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) {
	return func(addr uint16, v uint8) {
		write(addr-offset, v)
	}
}

func unmapped(uint16) uint8 { return UnmappedValue }

func drop(uint16, uint8) {}

// SetBootROM maps the boot ROM over 0x0000 - 0x00FF, until it is
// disabled by a write to types.BDIS.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = false
}

// BootROMEnabled returns true if the boot ROM is currently mapped.
func (m *MMU) BootROMEnabled() bool {
	return m.bootROM != nil && !m.bootROMDone
}

// AttachVideo attaches the video component to the MMU. It receives all
// accesses to VRAM, OAM and the video registers.
func (m *MMU) AttachVideo(video types.IOBus) {
	m.Video = video
}

// AttachAudio attaches the sound component to the MMU. It receives all
// accesses to 0xFF10 - 0xFF3F.
func (m *MMU) AttachAudio(sound types.IOBus) {
	m.Sound = sound
}

// AttachJoypad attaches the joypad to the MMU. It receives all
// accesses to types.P1.
func (m *MMU) AttachJoypad(pad types.IOBus) {
	m.attachRegisters(pad, types.P1, "P1")
}

// AttachSerial attaches the serial port to the MMU. It receives all
// accesses to types.SB and types.SC.
func (m *MMU) AttachSerial(serial types.IOBus) {
	m.attachRegisters(serial, types.SB, "SB")
	m.attachRegisters(serial, types.SC, "SC")
}

// Err returns the first cartridge fault encountered, if any.
func (m *MMU) Err() error {
	return m.err
}

func (m *MMU) fault(err error) {
	if m.err == nil {
		m.Log.Errorf("mmu: %v", err)
		m.err = err
	}
}

// Tick advances the OAM DMA controller by one machine cycle.
func (m *MMU) Tick() {
	m.dma.Tick()
}

func (m *MMU) readCart(address uint16) uint8 {
	// handle the boot ROM (if enabled)
	if address < types.BootROMEnd && m.BootROMEnabled() {
		return m.bootROM.Read(address)
	}
	if m.Cart == nil {
		return UnmappedValue
	}

	v, err := m.Cart.ReadMapped(address)
	if err != nil {
		m.fault(err)
		return UnmappedValue
	}
	return v
}

func (m *MMU) writeCart(address uint16, value uint8) {
	if m.Cart == nil {
		return
	}
	if err := m.Cart.WriteMapped(address, value); err != nil {
		m.fault(err)
	}
}

func (m *MMU) readVideo(address uint16) uint8 {
	if m.Video != nil {
		return m.Video.Read(address)
	}
	return m.vRAM.Read(address - types.VRAMStart)
}

func (m *MMU) writeVideo(address uint16, value uint8) {
	if m.Video != nil {
		m.Video.Write(address, value)
		return
	}
	m.vRAM.Write(address-types.VRAMStart, value)
}

// readOAM returns UnmappedValue while an OAM DMA transfer is in
// progress.
func (m *MMU) readOAM(address uint16) uint8 {
	if m.dma.Active() {
		return UnmappedValue
	}
	return m.oamRead(address)
}

func (m *MMU) writeOAM(address uint16, value uint8) {
	if m.dma.Active() {
		return
	}
	m.oamWrite(address, value)
}

func (m *MMU) oamRead(address uint16) uint8 {
	if m.Video != nil {
		return m.Video.Read(address)
	}
	return m.oam.Read(address - types.OAMStart)
}

func (m *MMU) oamWrite(address uint16, value uint8) {
	if m.Video != nil {
		m.Video.Write(address, value)
		return
	}
	m.oam.Write(address-types.OAMStart, value)
}

func (m *MMU) readIO(address uint16) uint8 {
	if reg := m.registers.Lookup(address); reg != nil {
		return reg.Read()
	}
	switch {
	case unusedIO(address):
		return UnmappedValue
	case isAudio(address) && m.Sound != nil:
		return m.Sound.Read(address)
	case isVideo(address) && m.Video != nil:
		return m.Video.Read(address)
	}
	return m.io[address&0x7F]
}

func (m *MMU) writeIO(address uint16, value uint8) {
	if reg := m.registers.Lookup(address); reg != nil {
		reg.Write(value)
		return
	}
	switch {
	case unusedIO(address):
	case isAudio(address) && m.Sound != nil:
		m.Sound.Write(address, value)
	case isVideo(address) && m.Video != nil:
		m.Video.Write(address, value)
	default:
		m.io[address&0x7F] = value
	}
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].Read(address)
}

// Write writes the value to the given address.
func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address].Write(address, value)
}
