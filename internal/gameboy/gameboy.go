// Package gameboy wires the components of the DMG core together into
// a machine that can be stepped one machine cycle at a time.
package gameboy

import (
	"fmt"

	"github.com/thelolagemann/gomeboy-core/internal/boot"
	"github.com/thelolagemann/gomeboy-core/internal/cartridge"
	"github.com/thelolagemann/gomeboy-core/internal/cpu"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/joypad"
	"github.com/thelolagemann/gomeboy-core/internal/mmu"
	"github.com/thelolagemann/gomeboy-core/internal/scheduler"
	"github.com/thelolagemann/gomeboy-core/internal/serial"
	"github.com/thelolagemann/gomeboy-core/internal/timer"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
	"github.com/thelolagemann/gomeboy-core/pkg/utils"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed
	// CyclesPerFrame is the number of machine cycles per frame.
	CyclesPerFrame = 17556 // 70224 / 4
)

// postBootIF is the value left in IF by the boot ROM; the VBlank
// interrupt it waited on is still latched.
const postBootIF = interrupts.VBlankFlag

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Scheduler  *scheduler.Scheduler
	Cartridge  cartridge.Cartridge
	Joypad     *joypad.State
	Serial     *serial.Controller

	log.Logger

	bootROM      []byte
	serialDevice serial.Device
	link         *GameBoy
	video        Video
	audio        Audio
	peripherals  []types.Peripheral
}

// New returns a new GameBoy running the given cartridge image.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}
	header := cart.Header()
	g.Infof("gameboy: loaded %s", header)
	if err := header.Validate(); err != nil {
		g.Warnf("gameboy: cartridge header: %v", err)
	}

	var bootROM *boot.ROM
	if g.bootROM != nil {
		if bootROM, err = boot.LoadBootROM(g.bootROM); err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
		g.Infof("gameboy: using %s boot rom (%s)", bootROM.Model(), bootROM.Checksum())
	}

	g.Cartridge = cart
	g.Interrupts = interrupts.NewService()
	g.Timer = timer.NewController(g.Interrupts)
	g.Scheduler = scheduler.NewScheduler()
	g.MMU = mmu.New(cart, g.Interrupts, g.Timer, g.Scheduler, mmu.WithLogger(g.Logger))

	cpuOpts := []cpu.Opt{cpu.WithLogger(g.Logger)}
	if bootROM != nil {
		g.MMU.SetBootROM(bootROM)
	} else {
		cpuOpts = append(cpuOpts, cpu.WithPostBootState())
		g.Timer.Reset(timer.PostBootDiv)
		g.Interrupts.Flag = postBootIF
	}
	g.CPU = cpu.New(g.MMU, g.Interrupts, cpuOpts...)

	g.Joypad = joypad.New(g.Interrupts)
	g.MMU.AttachJoypad(g.Joypad)
	g.Serial = serial.NewController(g.Interrupts, g.Timer, g.Scheduler)
	g.MMU.AttachSerial(g.Serial)
	if g.serialDevice != nil {
		g.Serial.Attach(g.serialDevice)
	}
	if g.link != nil {
		g.Serial.Attach(g.link.Serial)
		g.link.Serial.Attach(g.Serial)
	}

	// peripherals observe each cycle in this order, before the CPU
	g.Scheduler.AttachPeripheral(g.Timer)
	g.Scheduler.AttachPeripheral(g.MMU)
	if g.video != nil {
		g.MMU.AttachVideo(g.video)
		g.Scheduler.AttachPeripheral(g.video)
	}
	if g.audio != nil {
		g.MMU.AttachAudio(g.audio)
		g.Scheduler.AttachPeripheral(g.audio)
	}
	for _, p := range g.peripherals {
		g.Scheduler.AttachPeripheral(p)
	}
	g.Scheduler.AttachProcessor(g.CPU)

	return g, nil
}

// NewFromFile loads the cartridge image at path (optionally compressed
// as .gz, .zip or .7z) and returns a new GameBoy running it.
func NewFromFile(path string, opts ...Opt) (*GameBoy, error) {
	rom, err := utils.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}
	return New(rom, opts...)
}

// StepCycle advances the machine by a single machine cycle.
func (g *GameBoy) StepCycle() error {
	return g.Scheduler.StepCycle()
}

// RunUntil steps the machine until cond returns true, or a fatal
// error occurs. It returns the number of machine cycles stepped.
func (g *GameBoy) RunUntil(cond func() bool) (uint64, error) {
	return g.Scheduler.RunUntil(cond)
}

// RunFrame steps the machine for the duration of a single frame.
func (g *GameBoy) RunFrame() error {
	return g.Scheduler.RunFor(CyclesPerFrame)
}

// Err returns the fatal error that stopped the machine, if any.
func (g *GameBoy) Err() error {
	return g.Scheduler.Err()
}

// Crashed returns true once the machine has stopped on a fatal
// error, such as an illegal opcode or a cartridge fault.
func (g *GameBoy) Crashed() bool {
	return g.Scheduler.Err() != nil
}

// Halted returns true while the CPU is waiting in HALT.
func (g *GameBoy) Halted() bool {
	return g.CPU.Mode() == cpu.ModeHalt
}

// Stopped returns true while the CPU is waiting in STOP.
func (g *GameBoy) Stopped() bool {
	return g.CPU.Mode() == cpu.ModeStop
}

// RequestInterrupt requests the given interrupt, as done by a joypad
// or serial collaborator.
func (g *GameBoy) RequestInterrupt(src interrupts.Source) {
	g.Interrupts.Request(src)
}

// Cycles returns the number of machine cycles the machine has run for.
func (g *GameBoy) Cycles() uint64 {
	return g.Scheduler.Cycle()
}
