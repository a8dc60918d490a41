package mmu

import "github.com/thelolagemann/gomeboy-core/internal/types"

// registerHardware sets up the table of I/O registers whose accesses
// have side effects. Every other I/O address is either forwarded to a
// collaborator, unused, or plain storage.
//
//	FF04 DIV   reset the divider (may tick TIMA)
//	FF05 TIMA  cancels a pending reload, ignored on the reload cycle
//	FF06 TMA   copied into TIMA on the reload cycle
//	FF07 TAC   reconfigure the timer (may tick TIMA)
//	FF0F IF    replace the pending mask, bits 5-7 read 1
//	FF46 DMA   start an OAM DMA transfer
//	FF50 BDIS  unmap the boot ROM
//
// The joypad (FF00) and serial port (FF01, FF02) are registered in
// the same table when they are attached.
//
// IE (0xFFFF) lies outside of the I/O window and is mapped directly.
func (m *MMU) registerHardware() {
	for _, addr := range []types.HardwareAddress{types.DIV, types.TIMA, types.TMA, types.TAC} {
		addr := addr
		m.registers.Register(
			addr,
			timerName(addr),
			func(v uint8) {
				m.timer.Write(addr, v)
			}, func() uint8 {
				return m.timer.Read(addr)
			},
		)
	}
	m.registers.Register(types.IF, "IF", m.irq.WriteFlag, m.irq.ReadFlag)
	m.registers.Register(types.DMA, "DMA", m.dma.write, m.dma.read)
	m.registers.Register(
		types.BDIS,
		"BDIS",
		func(v uint8) {
			if v != 0 && m.BootROMEnabled() {
				m.bootROMDone = true
				m.Log.Infof("mmu: boot ROM unmapped")
			}
		}, types.NoRead,
	)
}

// attachRegisters forwards the accesses to address to bus.
func (m *MMU) attachRegisters(bus types.IOBus, address types.HardwareAddress, name string) {
	m.registers.Register(
		address,
		name,
		func(v uint8) {
			bus.Write(address, v)
		}, func() uint8 {
			return bus.Read(address)
		},
	)
}

func timerName(addr types.HardwareAddress) string {
	switch addr {
	case types.DIV:
		return "DIV"
	case types.TIMA:
		return "TIMA"
	case types.TMA:
		return "TMA"
	}
	return "TAC"
}

// unusedIO returns true for the I/O addresses that nothing drives
// on the DMG.
func unusedIO(address uint16) bool {
	switch {
	case address == 0xFF03,
		address >= 0xFF08 && address <= 0xFF0E,
		address == 0xFF15,
		address == 0xFF1F,
		address >= 0xFF27 && address <= 0xFF2F,
		address >= 0xFF4C && address <= 0xFF4F,
		address >= 0xFF51 && address <= 0xFF7F:
		return true
	}
	return false
}

func isAudio(address uint16) bool {
	return address >= types.NR10 && address <= types.WaveRAMEnd
}

func isVideo(address uint16) bool {
	return address >= types.LCDC && address <= types.WX && address != types.DMA
}
