package types

// Peripheral is a device that is advanced by the scheduler once every
// machine cycle, such as the timer, the OAM DMA controller, or an
// attached video or audio unit.
type Peripheral interface {
	Tick()
}

// IOBus is implemented by anything that exposes a window of the address
// space, such as video RAM or a collaborator's register block.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}
