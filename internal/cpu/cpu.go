// Package cpu implements the SM83 processor of the DMG. The CPU is
// advanced one machine cycle at a time by Tick; every instruction is
// broken down into the micro-steps performed on each of its machine
// cycles, so that every bus access lands on the cycle it does on
// hardware.
package cpu

import (
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
	"github.com/thelolagemann/gomeboy-core/pkg/utils"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles.
	ClockSpeed = 4194304
	// MachineCycles is the number of machine cycles per second.
	MachineCycles = ClockSpeed / 4
)

// Mode is the execution state of the CPU.
type Mode uint8

const (
	// ModeNormal is the normal CPU mode, fetching and executing
	// instructions.
	ModeNormal Mode = iota
	// ModeDispatch is entered while an interrupt is being dispatched.
	ModeDispatch
	// ModeHalt is entered by HALT. No instructions are executed
	// until an interrupt is pending.
	ModeHalt
	// ModeStop is entered by STOP. No instructions are executed
	// until a joypad interrupt is requested or an interrupt is
	// pending.
	ModeStop
	// ModeCrashed is entered after fetching an illegal opcode. The
	// CPU never leaves it.
	ModeCrashed
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeDispatch:
		return "dispatch"
	case ModeHalt:
		return "halt"
	case ModeStop:
		return "stop"
	case ModeCrashed:
		return "crashed"
	}
	return "unknown"
}

// Bus is the memory bus seen by the CPU. Accesses cost no cycles on
// their own; the CPU performs at most one per machine cycle.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	bus Bus
	irq *interrupts.Service
	log log.Logger

	mode Mode

	// the instruction being executed, and the micro-steps
	// left to run
	current *Instruction
	queue   []step
	step    int

	// scratch operands shared between micro-steps
	lo, hi uint8
	vector uint16

	eiPending  bool // EI executed, IME is set at the next boundary
	eiDelayed  bool // IME was set by EI at the last boundary
	haltBug    bool // the next fetch does not increment PC
	fault      error
	postBoot   bool
	cycleCount uint64
}

// Opt is a function that configures the CPU.
type Opt func(c *CPU)

// WithPostBootState starts the CPU with the register values the DMG
// boot ROM leaves behind.
func WithPostBootState() Opt {
	return func(c *CPU) {
		c.postBoot = true
	}
}

// WithLogger sets the logger used by the CPU.
func WithLogger(l log.Logger) Opt {
	return func(c *CPU) {
		c.log = l
	}
}

// New creates a new CPU instance with the given Bus. The Bus is used
// to read and write to the memory.
func New(bus Bus, irq *interrupts.Service, opts ...Opt) *CPU {
	c := &CPU{
		bus: bus,
		irq: irq,
		log: log.NewNullLogger(),
	}
	// create register pairs
	c.BC = &RegisterPair{&c.B, &c.C}
	c.DE = &RegisterPair{&c.D, &c.E}
	c.HL = &RegisterPair{&c.H, &c.L}
	c.AF = &RegisterPair{&c.A, &c.F}

	for _, opt := range opts {
		opt(c)
	}
	if c.postBoot {
		c.AF.SetUint16(0x01B0)
		c.BC.SetUint16(0x0013)
		c.DE.SetUint16(0x00D8)
		c.HL.SetUint16(0x014D)
		c.SP = 0xFFFE
		c.PC = 0x0100
	}

	return c
}

// Mode returns the current execution state of the CPU.
func (c *CPU) Mode() Mode {
	return c.mode
}

// AtBoundary returns true if the next Tick starts a new instruction
// (or interrupt dispatch).
func (c *CPU) AtBoundary() bool {
	return c.step >= len(c.queue)
}

// Current returns the instruction being executed, or the last
// instruction executed at a boundary. It is nil before the first
// fetch and during an interrupt dispatch.
func (c *CPU) Current() *Instruction {
	return c.current
}

// Cycles returns the number of machine cycles the CPU has been
// ticked for.
func (c *CPU) Cycles() uint64 {
	return c.cycleCount
}

// Err returns the fatal error that crashed the CPU, if any.
func (c *CPU) Err() error {
	return c.fault
}

// Tick advances the CPU by exactly one machine cycle. It returns an
// error once the CPU has crashed, and on every call after.
func (c *CPU) Tick() error {
	c.cycleCount++

	switch c.mode {
	case ModeCrashed:
		return c.fault
	case ModeStop:
		if c.irq.Flag&interrupts.JoypadFlag == 0 && !c.irq.HasInterrupts() {
			return nil
		}
		c.mode = ModeNormal
	case ModeHalt:
		if !c.irq.HasInterrupts() {
			return nil
		}
		// leaving HALT takes no extra cycle, the interrupt is
		// dispatched (or the next opcode fetched) on this one
		c.mode = ModeNormal
	}

	if c.step < len(c.queue) {
		s := c.queue[c.step]
		c.step++
		s(c)
		return nil
	}

	return c.boundary()
}

// boundary starts the next instruction, or dispatches an interrupt.
func (c *CPU) boundary() error {
	ime := c.irq.IME
	c.eiDelayed = false
	if c.eiPending {
		c.irq.IME = true
		c.eiPending = false
		c.eiDelayed = true
	}

	if ime && c.irq.HasInterrupts() {
		c.dispatch()
		return nil
	}

	return c.fetch()
}

// fetch reads the opcode at PC and begins executing it.
func (c *CPU) fetch() error {
	pc := c.PC
	opcode := c.bus.Read(c.PC)
	if c.haltBug {
		// the byte after HALT is read twice
		c.haltBug = false
	} else {
		c.PC++
	}

	instr := &InstructionSet[opcode]
	if instr.illegal {
		c.mode = ModeCrashed
		c.queue, c.step = nil, 0
		c.fault = &IllegalOpcodeError{Opcode: opcode, PC: pc}
		c.log.Errorf("cpu: crashed: %v", c.fault)
		return c.fault
	}

	c.begin(instr)
	return nil
}

// begin queues the micro-steps of instr and performs its decode
// cycle work.
func (c *CPU) begin(instr *Instruction) {
	c.current = instr
	c.queue = instr.steps
	c.step = 0
	if instr.exec != nil {
		instr.exec(c)
	}
}

// skip drops the remaining micro-steps of the current instruction,
// used when the condition of a conditional instruction fails.
func (c *CPU) skip() {
	c.step = len(c.queue)
}

// readOperand reads the byte at PC and increments PC.
func (c *CPU) readOperand() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

// address returns the 16-bit operand collected in lo and hi.
func (c *CPU) address() uint16 {
	return utils.BytesToUint16(c.hi, c.lo)
}

// dispatchSteps are the machine cycles of an interrupt dispatch that
// follow the cycle IME is cleared on.
var dispatchSteps = []step{
	func(c *CPU) {
		c.SP--
	},
	func(c *CPU) {
		c.bus.Write(c.SP, uint8(c.PC>>8))
		c.SP--
	},
	func(c *CPU) {
		// the interrupt is resolved after the high byte has been
		// pushed, a push that overwrote IE can cancel the dispatch
		c.vector = 0
		if src, ok := c.irq.HighestPending(); ok {
			c.irq.Clear(src)
			c.vector = src.Vector()
		}
		c.bus.Write(c.SP, uint8(c.PC))
	},
	func(c *CPU) {
		c.PC = c.vector
		c.mode = ModeNormal
	},
}

// dispatch begins servicing the highest priority pending interrupt.
func (c *CPU) dispatch() {
	c.irq.IME = false
	c.mode = ModeDispatch
	c.current = nil
	c.queue = dispatchSteps
	c.step = 0
}
