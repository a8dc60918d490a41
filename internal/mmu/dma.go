package mmu

import (
	"github.com/thelolagemann/gomeboy-core/internal/scheduler"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

const (
	// dmaStartDelay is the number of cycles between the write to
	// types.DMA and the cycle the first byte is copied.
	dmaStartDelay = 2
	// dmaLength is the number of bytes (and cycles) of a transfer.
	dmaLength = types.OAMSize
)

// DMA is the OAM DMA controller. Writing to types.DMA copies 160 bytes
// from (value << 8) into OAM, one byte per machine cycle. While the
// transfer is in progress the CPU cannot access OAM.
type DMA struct {
	active bool
	source uint16
	offset uint16
	value  uint8

	m *MMU
	s *scheduler.Scheduler
}

func newDMA(m *MMU, s *scheduler.Scheduler) *DMA {
	d := &DMA{m: m, s: s}
	s.RegisterEvent(scheduler.DMAStart, d.start)
	s.RegisterEvent(scheduler.DMAEnd, d.end)
	return d
}

func (d *DMA) write(v uint8) {
	d.value = v
	d.s.ScheduleEvent(scheduler.DMAStart, dmaStartDelay)
}

func (d *DMA) read() uint8 {
	return d.value
}

func (d *DMA) start() {
	d.source = uint16(d.value) << 8
	d.offset = 0
	d.active = true
	d.s.ScheduleEvent(scheduler.DMAEnd, dmaLength)
}

func (d *DMA) end() {
	d.active = false
}

// Active returns true while a transfer is in progress.
func (d *DMA) Active() bool {
	return d.active
}

// Tick copies the next byte of an active transfer.
func (d *DMA) Tick() {
	if !d.active || d.offset >= dmaLength {
		return
	}

	src := d.source + d.offset
	// sources past the end of WRAM read from the work RAM
	// rather than echo/OAM/IO
	if src >= types.EchoRAMStart {
		src -= types.EchoRAMOffset
	}
	d.m.oamWrite(types.OAMStart+d.offset, d.m.Read(src))
	d.offset++
}
