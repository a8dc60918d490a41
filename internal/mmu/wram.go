package mmu

// WRAM is the 8kB of work RAM at 0xC000 - 0xDFFF, which is also
// visible through the echo region at 0xE000 - 0xFDFF.
type WRAM struct {
	raw [2][0x1000]uint8
}

func NewWRAM() *WRAM {
	return &WRAM{}
}

// Read returns the value at addr. Echo RAM accesses are mapped
// down by types.EchoRAMOffset before reaching the work RAM.
func (w *WRAM) Read(addr uint16) uint8 {
	addr &= 0x1FFF
	return w.raw[addr>>12][addr&0xFFF]
}

// Write writes value to addr.
func (w *WRAM) Write(addr uint16, value uint8) {
	addr &= 0x1FFF
	w.raw[addr>>12][addr&0xFFF] = value
}
