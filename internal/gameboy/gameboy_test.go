package gameboy

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thelolagemann/gomeboy-core/internal/boot"
	"github.com/thelolagemann/gomeboy-core/internal/cartridge"
	"github.com/thelolagemann/gomeboy-core/internal/cpu"
	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/joypad"
	"github.com/thelolagemann/gomeboy-core/internal/serial"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

// newROM returns a 32kB ROM-only image with program at 0x0100 and
// the given bytes placed at the interrupt vectors.
func newROM(program []byte, vectors map[uint16][]byte) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x100:], program)
	for addr, b := range vectors {
		copy(rom[addr:], b)
	}
	// keep the header clear of the program
	if len(program) > 4 {
		copy(rom[0x150:], program)
		copy(rom[0x100:], []byte{0xC3, 0x50, 0x01}) // JP 0x0150
	}
	rom[0x147] = 0x00
	rom[0x148] = 0x00
	return rom
}

func mustNew(t *testing.T, rom []byte, opts ...Opt) *GameBoy {
	t.Helper()
	g, err := New(rom, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// runUntil steps g until cond, failing the test after limit cycles.
func runUntil(t *testing.T, g *GameBoy, limit uint64, cond func() bool) {
	t.Helper()
	start := g.Cycles()
	if _, err := g.RunUntil(func() bool { return cond() || g.Cycles()-start >= limit }); err != nil {
		t.Fatal(err)
	}
	if !cond() {
		t.Fatalf("condition not met after %d cycles", limit)
	}
}

func TestGameBoy_Program(t *testing.T) {
	// LD A, 5; INC A; HALT
	g := mustNew(t, newROM([]byte{0x3E, 0x05, 0x3C, 0x76}, nil))

	cycles, err := g.RunUntil(g.Halted)
	if err != nil {
		t.Fatal(err)
	}
	if g.CPU.A != 6 {
		t.Errorf("expected A 6, got %d", g.CPU.A)
	}
	if cycles != 4 {
		t.Errorf("expected 4 machine cycles, took %d", cycles)
	}
	if g.Crashed() || g.Stopped() {
		t.Errorf("expected the machine to only be halted")
	}
}

func TestGameBoy_PostBootState(t *testing.T) {
	g := mustNew(t, newROM(nil, nil))

	if g.CPU.PC != 0x0100 || g.CPU.SP != 0xFFFE || g.CPU.AF.Uint16() != 0x01B0 {
		t.Errorf("expected post boot registers, PC 0x%04X SP 0x%04X AF 0x%04X", g.CPU.PC, g.CPU.SP, g.CPU.AF.Uint16())
	}
	if v := g.MMU.Read(types.DIV); v != 0xAB {
		t.Errorf("expected DIV 0xAB, got 0x%02X", v)
	}
	if v := g.MMU.Read(types.IF); v != 0xE1 {
		t.Errorf("expected IF 0xE1, got 0x%02X", v)
	}
	if g.MMU.BootROMEnabled() {
		t.Errorf("expected no boot rom to be mapped")
	}
}

func TestGameBoy_BootROM(t *testing.T) {
	bootROM := make([]byte, boot.Size)
	// LD A, 1; LDH (0x50), A
	copy(bootROM, []byte{0x3E, 0x01, 0xE0, 0x50})

	rom := newROM(nil, map[uint16][]byte{0x0004: {0x76}})
	g := mustNew(t, rom, WithBootROM(bootROM))

	if g.CPU.PC != 0 || g.CPU.AF.Uint16() != 0 {
		t.Fatalf("expected the CPU to start at 0x0000 with zeroed registers")
	}
	if !g.MMU.BootROMEnabled() || g.MMU.Read(0x0000) != 0x3E {
		t.Fatalf("expected the boot rom to be mapped")
	}

	runUntil(t, g, 100, g.Halted)
	if g.MMU.BootROMEnabled() {
		t.Errorf("expected the boot rom to be unmapped")
	}
	if g.CPU.PC != 0x0005 {
		t.Errorf("expected execution to continue in the cartridge, PC 0x%04X", g.CPU.PC)
	}
	if g.Cycles() != 6 {
		t.Errorf("expected 6 cycles, took %d", g.Cycles())
	}

	if _, err := New(rom, WithBootROM(make([]byte, 10))); !errors.Is(err, boot.ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestGameBoy_TimerInterrupt(t *testing.T) {
	program := []byte{
		0x3E, 0x05, // LD A, 0x05 (enabled, 16 ticks)
		0xE0, 0x07, // LDH (TAC), A
		0x3E, 0xF0, // LD A, 0xF0
		0xE0, 0x05, // LDH (TIMA), A
		0x3E, 0x04, // LD A, 0x04
		0xE0, 0xFF, // LDH (IE), A
		0xFB, // EI
		0x76, // HALT
		0x00, // NOP
	}
	g := mustNew(t, newROM(program, map[uint16][]byte{0x0050: {0x76}}))

	runUntil(t, g, 1000, func() bool {
		return g.Halted() && g.CPU.PC == 0x0051
	})

	// the return address is the byte after the first HALT
	if lo, hi := g.MMU.Read(0xFFFC), g.MMU.Read(0xFFFD); lo != 0x5E || hi != 0x01 {
		t.Errorf("expected 0x015E to be pushed, got 0x%02X%02X", hi, lo)
	}
	if g.Interrupts.Flag&interrupts.TimerFlag != 0 {
		t.Errorf("expected the timer request to be serviced")
	}
	if g.Interrupts.IME {
		t.Errorf("expected IME to be cleared by the dispatch")
	}
	if v := g.MMU.Read(types.TIMA); v > 0x10 {
		t.Errorf("expected TIMA to have reloaded from TMA, got 0x%02X", v)
	}
}

func TestGameBoy_Crash(t *testing.T) {
	g := mustNew(t, newROM([]byte{0x00, 0xD3}, nil))

	_, err := g.RunUntil(func() bool { return false })
	var illegal *cpu.IllegalOpcodeError
	if !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalOpcodeError, got %v", err)
	}
	if illegal.Opcode != 0xD3 || illegal.PC != 0x0101 {
		t.Errorf("unexpected error details %+v", illegal)
	}
	if !strings.HasPrefix(err.Error(), "scheduler: cycle 2: ") {
		t.Errorf("expected the error to carry the cycle, got %q", err)
	}
	if !g.Crashed() || g.Halted() || g.Stopped() {
		t.Errorf("expected the machine to be crashed")
	}
	if g.CPU.Mode() != cpu.ModeCrashed {
		t.Errorf("expected crashed mode, got %s", g.CPU.Mode())
	}
	if err2 := g.StepCycle(); err2 != err || g.Err() != err {
		t.Errorf("expected the same error on later steps")
	}
	if g.Cycles() != 2 {
		t.Errorf("expected the machine not to advance, cycle %d", g.Cycles())
	}
}

func TestGameBoy_Errors(t *testing.T) {
	if _, err := New(make([]byte, 0x100)); !errors.Is(err, cartridge.ErrTooSmall) {
		t.Errorf("expected ErrTooSmall, got %v", err)
	}

	rom := newROM(nil, nil)
	rom[0x147] = 0xFC
	if _, err := New(rom); !errors.Is(err, cartridge.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}

	if _, err := NewFromFile(filepath.Join(t.TempDir(), "missing.gb")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

// fakeUnit records the order and number of ticks it receives, and
// serves its IO window from a flat array.
type fakeUnit struct {
	name  string
	order *[]string
	ticks int
	mem   [0x10000]uint8
}

func (f *fakeUnit) Tick() {
	f.ticks++
	if f.ticks == 1 {
		*f.order = append(*f.order, f.name)
	}
}

func (f *fakeUnit) Read(address uint16) uint8 { return f.mem[address] }

func (f *fakeUnit) Write(address uint16, value uint8) { f.mem[address] = value }

func TestGameBoy_Collaborators(t *testing.T) {
	var order []string
	video := &fakeUnit{name: "video", order: &order}
	audio := &fakeUnit{name: "audio", order: &order}
	serial := &fakeUnit{name: "serial", order: &order}
	video.mem[types.LY] = 0x90
	audio.mem[types.NR10] = 0x80

	g := mustNew(t, newROM([]byte{0x18, 0xFE}, nil), // JR -2
		WithVideo(video), WithAudio(audio), WithPeripheral(serial))

	if err := g.RunFrame(); err != nil {
		t.Fatal(err)
	}
	for _, u := range []*fakeUnit{video, audio, serial} {
		if u.ticks != CyclesPerFrame {
			t.Errorf("%s: expected %d ticks, got %d", u.name, CyclesPerFrame, u.ticks)
		}
	}
	if strings.Join(order, ",") != "video,audio,serial" {
		t.Errorf("unexpected tick order %v", order)
	}
	if g.MMU.Read(types.LY) != 0x90 || g.MMU.Read(types.NR10) != 0x80 {
		t.Errorf("expected the IO windows to be served by the collaborators")
	}

	g.MMU.Write(0x8000, 0x12)
	if video.mem[0x8000] != 0x12 {
		t.Errorf("expected VRAM writes to reach the video unit")
	}
}

func TestGameBoy_Joypad(t *testing.T) {
	// STOP, 0x00, INC A, HALT
	g := mustNew(t, newROM([]byte{0x10, 0x00, 0x3C, 0x76}, nil))
	g.Interrupts.Flag = 0

	runUntil(t, g, 10, g.Stopped)
	if err := g.Scheduler.RunFor(100); err != nil {
		t.Fatal(err)
	}
	if !g.Stopped() {
		t.Fatalf("expected the machine to stay stopped")
	}

	g.RequestInterrupt(interrupts.Joypad)
	runUntil(t, g, 10, g.Halted)
	if g.CPU.A != 0x02 {
		t.Errorf("expected INC A to run after waking, A 0x%02X", g.CPU.A)
	}
}

func TestGameBoy_JoypadPress(t *testing.T) {
	program := []byte{
		0x3E, 0x10, // LD A, 0x10 (select the action buttons)
		0xE0, 0x00, // LDH (P1), A
		0x10, 0x00, // STOP
		0xF0, 0x00, // LDH A, (P1)
		0x76, // HALT
	}
	g := mustNew(t, newROM(program, nil))

	runUntil(t, g, 100, g.Stopped)
	g.Joypad.Press(joypad.ButtonStart)
	runUntil(t, g, 100, g.Halted)
	if g.CPU.A != 0xD7 {
		t.Errorf("expected P1 0xD7, got 0x%02X", g.CPU.A)
	}
}

func TestGameBoy_Serial(t *testing.T) {
	program := []byte{
		0x3E, 'O', // LD A, 'O'
		0xE0, 0x01, // LDH (SB), A
		0x3E, 0x08, // LD A, 0x08
		0xE0, 0xFF, // LDH (IE), A
		0x3E, 0x81, // LD A, 0x81
		0xE0, 0x02, // LDH (SC), A
		0x76,       // HALT
		0xAF,       // XOR A
		0xE0, 0x0F, // LDH (IF), A
		0x3E, 'K', // LD A, 'K'
		0xE0, 0x01, // LDH (SB), A
		0x3E, 0x81, // LD A, 0x81
		0xE0, 0x02, // LDH (SC), A
		0x76,       // HALT
		0x18, 0xFE, // JR -2
	}
	rec := &serial.Recorder{}
	g := mustNew(t, newROM(program, nil), WithSerialDevice(rec))

	runUntil(t, g, 5000, func() bool { return rec.String() == "OK" })
	if g.Crashed() {
		t.Fatal(g.Err())
	}
}

func TestNewFromFile(t *testing.T) {
	rom := newROM([]byte{0x76}, nil)
	dir := t.TempDir()

	raw := filepath.Join(dir, "test.gb")
	if err := os.WriteFile(raw, rom, 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(rom); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	compressed := filepath.Join(dir, "test.gb.gz")
	if err := os.WriteFile(compressed, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{raw, compressed} {
		g, err := NewFromFile(path)
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if g.Cartridge.Header().Fingerprint == 0 {
			t.Errorf("%s: expected a fingerprint", path)
		}
		runUntil(t, g, 10, g.Halted)
	}
}
