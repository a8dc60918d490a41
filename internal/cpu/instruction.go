package cpu

import "fmt"

// step is the work performed by the CPU on a single machine cycle.
// A step performs at most one bus access.
type step func(c *CPU)

// Instruction describes a single instruction of the CPU.
//
// The fetch of the opcode always takes the first machine cycle, during
// which exec (if any) runs. exec performs no bus access of its own,
// except for STOP, which resets DIV on the fetch cycle. Every entry
// of steps then runs on one of the following machine cycles.
type Instruction struct {
	name     string // name of the instruction
	opcode   uint8
	prefixed bool  // part of the 0xCB table
	length   uint8 // operand bytes following the opcode
	cycles   uint8 // machine cycles, including the fetch
	notTaken uint8 // machine cycles when the condition fails
	illegal  bool

	exec  step
	steps []step
}

// Name returns the mnemonic of the instruction.
func (i *Instruction) Name() string { return i.name }

// Opcode returns the opcode of the instruction, without the 0xCB prefix.
func (i *Instruction) Opcode() uint8 { return i.opcode }

// Prefixed returns true for the instructions of the 0xCB table.
func (i *Instruction) Prefixed() bool { return i.prefixed }

// Length returns the number of operand bytes following the opcode.
func (i *Instruction) Length() uint8 { return i.length }

// Cycles returns the number of machine cycles the instruction takes,
// including the prefix for the 0xCB table. For conditional instructions
// this is the number of cycles taken when the condition holds.
func (i *Instruction) Cycles() uint8 { return i.cycles }

// CyclesNotTaken returns the number of machine cycles a conditional
// instruction takes when its condition fails, and 0 for every other
// instruction.
func (i *Instruction) CyclesNotTaken() uint8 { return i.notTaken }

// Illegal returns true for the opcodes that lock up the CPU.
func (i *Instruction) Illegal() bool { return i.illegal }

func (i *Instruction) String() string {
	if i.prefixed {
		return fmt.Sprintf("CB %02X %s", i.opcode, i.name)
	}
	return fmt.Sprintf("%02X %s", i.opcode, i.name)
}

// InstructionSet holds the first 256 instructions.
var InstructionSet [256]Instruction

// InstructionSetCB holds the 256 instructions prefixed by 0xCB.
var InstructionSetCB [256]Instruction

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode. The instruction takes one machine cycle for the
// fetch plus one for every step.
func DefineInstruction(opcode uint8, name string, length uint8, exec step, steps ...step) {
	InstructionSet[opcode] = Instruction{
		name:   name,
		opcode: opcode,
		length: length,
		cycles: uint8(1 + len(steps)),
		exec:   exec,
		steps:  steps,
	}
}

// DefineConditional is similar to DefineInstruction, but records the
// number of cycles taken when the condition checked by one of the steps
// fails and the remaining steps are skipped.
func DefineConditional(opcode uint8, name string, length uint8, notTaken uint8, steps ...step) {
	DefineInstruction(opcode, name, length, nil, steps...)
	InstructionSet[opcode].notTaken = notTaken
}

// DefineInstructionCB defines the instruction in the InstructionSetCB, with
// the provided opcode. The instruction takes two machine cycles for the
// prefix and opcode fetches plus one for every step.
func DefineInstructionCB(opcode uint8, name string, exec step, steps ...step) {
	InstructionSetCB[opcode] = Instruction{
		name:     name,
		opcode:   opcode,
		prefixed: true,
		cycles:   uint8(2 + len(steps)),
		exec:     exec,
		steps:    steps,
	}
}

var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	for _, opcode := range illegalOpcodes {
		InstructionSet[opcode] = Instruction{
			name:    fmt.Sprintf("ILLEGAL_%02X", opcode),
			opcode:  opcode,
			cycles:  1,
			illegal: true,
		}
	}

	// the second byte is fetched on the cycle after the prefix, and
	// its instruction replaces the remaining micro-steps
	DefineInstruction(0xCB, "PREFIX CB", 1, nil, func(c *CPU) {
		c.begin(&InstructionSetCB[c.readOperand()])
	})
}
