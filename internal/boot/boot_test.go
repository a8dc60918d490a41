package boot

import (
	"errors"
	"testing"
)

func TestLoadBootROM(t *testing.T) {
	b := make([]byte, Size)
	b[0] = 0x31
	b[0xFF] = 0x50

	rom, err := LoadBootROM(b)
	if err != nil {
		t.Fatal(err)
	}
	b[0] = 0x00
	if rom.Read(0) != 0x31 || rom.Read(0xFF) != 0x50 {
		t.Errorf("unexpected contents")
	}
	if len(rom.Checksum()) != 32 {
		t.Errorf("expected an md5 checksum, got %q", rom.Checksum())
	}
	if rom.Model() != "unknown" {
		t.Errorf("expected unknown model, got %s", rom.Model())
	}
}

func TestLoadBootROM_InvalidSize(t *testing.T) {
	for _, size := range []int{0, 255, 257, 2304} {
		if _, err := LoadBootROM(make([]byte, size)); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("size %d: expected ErrInvalidSize, got %v", size, err)
		}
	}
}

func TestROM_Nil(t *testing.T) {
	var rom *ROM
	if rom.Model() != "none" || rom.Checksum() != "" {
		t.Errorf("unexpected values for nil rom")
	}
}
