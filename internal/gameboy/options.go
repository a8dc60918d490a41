package gameboy

import (
	"github.com/thelolagemann/gomeboy-core/internal/serial"
	"github.com/thelolagemann/gomeboy-core/internal/types"
	"github.com/thelolagemann/gomeboy-core/pkg/log"
)

// Video is a video unit driven by the machine. It is ticked once per
// machine cycle, and serves the VRAM, OAM and video register windows.
type Video interface {
	types.Peripheral
	types.IOBus
}

// Audio is an audio unit driven by the machine. It is ticked once per
// machine cycle, and serves the sound register window.
type Audio interface {
	types.Peripheral
	types.IOBus
}

// Opt is a function that modifies a GameBoy
// instance before it is wired together.
type Opt func(gb *GameBoy)

// WithBootROM runs the given boot ROM on power up, instead of starting
// the cartridge with the post-boot register state.
func WithBootROM(b []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = b
	}
}

func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithVideo attaches a video unit.
func WithVideo(v Video) Opt {
	return func(gb *GameBoy) {
		gb.video = v
	}
}

// WithAudio attaches an audio unit.
func WithAudio(a Audio) Opt {
	return func(gb *GameBoy) {
		gb.audio = a
	}
}

// WithPeripheral attaches an additional peripheral (such as a serial
// link or joypad) that is ticked every machine cycle, after the video
// and audio units.
func WithPeripheral(p types.Peripheral) Opt {
	return func(gb *GameBoy) {
		gb.peripherals = append(gb.peripherals, p)
	}
}

// WithSerialDevice attaches a device to the serial port, such as a
// serial.Recorder collecting the output of a test ROM.
func WithSerialDevice(d serial.Device) Opt {
	return func(gb *GameBoy) {
		gb.serialDevice = d
	}
}

// SerialConnection links the serial port of the new GameBoy with the
// serial port of gbFrom.
func SerialConnection(gbFrom *GameBoy) Opt {
	return func(gbTo *GameBoy) {
		gbTo.link = gbFrom
	}
}
