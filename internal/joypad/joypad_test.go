package joypad

import (
	"testing"

	"github.com/thelolagemann/gomeboy-core/internal/interrupts"
	"github.com/thelolagemann/gomeboy-core/internal/types"
)

func TestState(t *testing.T) {
	irq := interrupts.NewService()
	s := New(irq)

	if v := s.Read(types.P1); v != 0xFF {
		t.Fatalf("expected 0xFF with nothing selected, got 0x%02X", v)
	}

	// select the action buttons
	s.Write(types.P1, 0x10)
	s.Press(ButtonA)
	if v := s.Read(types.P1); v != 0xDE {
		t.Errorf("expected 0xDE, got 0x%02X", v)
	}
	if irq.Flag != interrupts.JoypadFlag {
		t.Errorf("expected the joypad interrupt to be requested")
	}

	irq.Flag = 0
	s.Press(ButtonRight)
	if irq.Flag != 0 {
		t.Errorf("expected no interrupt for a button outside the selected group")
	}
	if v := s.Read(types.P1); v != 0xDE {
		t.Errorf("expected 0xDE, got 0x%02X", v)
	}

	// selecting the directions brings P10 low
	s.Release(ButtonA)
	s.Write(types.P1, 0x20)
	if irq.Flag != interrupts.JoypadFlag {
		t.Errorf("expected the joypad interrupt to be requested on selection")
	}
	if v := s.Read(types.P1); v != 0xEE {
		t.Errorf("expected 0xEE, got 0x%02X", v)
	}

	s.Release(ButtonRight)
	s.Write(types.P1, 0x00)
	if v := s.Read(types.P1); v != 0xCF {
		t.Errorf("expected 0xCF with every button released, got 0x%02X", v)
	}
}
