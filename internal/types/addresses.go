package types

// Address represents a memory address in the Game Boy's memory,
// which can be read from or written to. It is used to abstract
// away the actual backing store of an address, so that the MMU
// can resolve every address to exactly one handler.
type Address struct {
	// Read is a function that is called when the CPU reads from
	// the address.
	Read func(address uint16) uint8
	// Write is a function that is called when the CPU writes to
	// the address.
	Write func(address uint16, value uint8)
}

// Memory map boundaries of the 16-bit address space.
const (
	ROMBank0Start  uint16 = 0x0000
	ROMBankNStart  uint16 = 0x4000
	VRAMStart      uint16 = 0x8000
	ExternalRAM    uint16 = 0xA000
	WRAMStart      uint16 = 0xC000
	EchoRAMStart   uint16 = 0xE000
	OAMStart       uint16 = 0xFE00
	UnusableStart  uint16 = 0xFEA0
	IOStart        uint16 = 0xFF00
	HRAMStart      uint16 = 0xFF80
	BootROMEnd     uint16 = 0x0100
	EchoRAMOffset  uint16 = EchoRAMStart - WRAMStart
	OAMSize               = 0xA0
	WRAMSize              = 0x2000
	VRAMSize              = 0x2000
	HRAMSize              = 0x7F
	IORegisterSize        = 0x80
)

// HardwareAddress represents the address of a hardware
// register of the Game Boy. The hardware IO are mapped
// to memory addresses 0xFF00 - 0xFF7F & 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 is the address of the P1 hardware register. The P1
	// hardware register is used to select the input keys to
	// be read by the CPU, and to read the state of the joypad.
	P1 HardwareAddress = 0xFF00
	// SB is the serial transfer data register.
	SB HardwareAddress = 0xFF01
	// SC is the serial transfer control register.
	SC HardwareAddress = 0xFF02
	// DIV is the address of the DIV hardware register. Internally
	// it is a 16-bit counter, but only the upper 8 bits may be read.
	// Any write resets the whole counter to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is the timer counter. It is incremented at the rate
	// selected by TAC, and reloaded from TMA when it overflows.
	TIMA HardwareAddress = 0xFF05
	// TMA is the timer modulo, loaded into TIMA on overflow.
	TMA HardwareAddress = 0xFF06
	// TAC is the timer control register.
	//
	//  Bit 2:    Timer enable
	//  Bit 0-1:  Clock select (00: 1024, 01: 16, 10: 64, 11: 256)
	TAC HardwareAddress = 0xFF07
	// IF is the address of the IF hardware register. The IF
	// hardware register is used to request interrupts.
	//
	//  Bit 0: V-Blank Interrupt Request (INT 40h)  (1=Request)
	//  Bit 1: LCD STAT Interrupt Request (INT 48h) (1=Request)
	//  Bit 2: Timer Interrupt Request (INT 50h)    (1=Request)
	//  Bit 3: Serial Interrupt Request (INT 58h)   (1=Request)
	//  Bit 4: Joypad Interrupt Request (INT 60h)   (1=Request)
	IF HardwareAddress = 0xFF0F

	// NR10 is the first audio register, the audio window
	// runs from NR10 up to the end of wave RAM.
	NR10       HardwareAddress = 0xFF10
	WaveRAMEnd HardwareAddress = 0xFF3F
	LCDC       HardwareAddress = 0xFF40
	STAT       HardwareAddress = 0xFF41
	LY         HardwareAddress = 0xFF44
	LYC        HardwareAddress = 0xFF45
	// DMA starts an OAM DMA transfer from (value << 8) when written.
	DMA HardwareAddress = 0xFF46
	WX  HardwareAddress = 0xFF4B
	// BDIS disables the boot ROM when written with a non-zero value.
	BDIS HardwareAddress = 0xFF50
	// IE is the interrupt enable register, laid out like IF.
	IE HardwareAddress = 0xFFFF
)
