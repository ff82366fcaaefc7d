package ines

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func header(prgUnits, chrUnits, flags6, flags7 byte) []byte {
	h := make([]byte, 16)
	copy(h, magic)
	h[4], h[5], h[6], h[7] = prgUnits, chrUnits, flags6, flags7
	return h
}

func TestLoadBasic(t *testing.T) {
	buf := header(1, 1, 0x00, 0x00) // 16KiB PRG, 8KiB CHR, horizontal, mapper 0
	buf = append(buf, bytes.Repeat([]byte{0xAA}, 16384)...)
	buf = append(buf, bytes.Repeat([]byte{0xBB}, 8192)...)

	rom, err := Load(bytes.NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	if len(rom.PRG) != 16384 || len(rom.CHR) != 8192 {
		t.Fatalf("PRG/CHR sizes = %d/%d", len(rom.PRG), len(rom.CHR))
	}
	if rom.Mapper != 0 {
		t.Errorf("mapper = %d, want 0", rom.Mapper)
	}
	if rom.Mirroring != Horizontal {
		t.Errorf("mirroring = %v, want horizontal", rom.Mirroring)
	}
}

func TestLoadVerticalMirroringAndMapper(t *testing.T) {
	buf := header(2, 0, 0x41, 0x10) // vertical, mapper high nibble 1 + low nibble 4 = 0x14
	buf = append(buf, bytes.Repeat([]byte{0x00}, 32768)...)

	rom, err := Load(bytes.NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	if rom.Mirroring != Vertical {
		t.Errorf("mirroring = %v, want vertical", rom.Mirroring)
	}
	if rom.Mapper != 0x14 {
		t.Errorf("mapper = %#x, want 0x14", rom.Mapper)
	}

	type header struct {
		Mapper     uint8
		Mirroring  Mirroring
		HasBattery bool
	}
	got := header{rom.Mapper, rom.Mirroring, rom.HasBattery}
	want := header{Mapper: 0x14, Mirroring: Vertical, HasBattery: false}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("header fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTrainerSkipped(t *testing.T) {
	buf := header(1, 0, 0x04, 0x00) // trainer present
	buf = append(buf, bytes.Repeat([]byte{0xFF}, 512)...)
	prg := bytes.Repeat([]byte{0x42}, 16384)
	buf = append(buf, prg...)

	rom, err := Load(bytes.NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	if rom.PRG[0] != 0x42 {
		t.Errorf("PRG[0] = %#02x, want 0x42 (trainer not skipped correctly)", rom.PRG[0])
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	buf := header(1, 1, 0, 0)
	buf[0] = 'X'
	if _, err := Load(bytes.NewReader(buf)); err == nil {
		t.Fatal("expected an error for bad magic")
	}
}

func TestLoadRejectsTruncatedPRG(t *testing.T) {
	buf := header(2, 0, 0, 0) // claims 32KiB PRG
	buf = append(buf, make([]byte, 100)...)
	if _, err := Load(bytes.NewReader(buf)); err == nil {
		t.Fatal("expected an error for truncated PRG section")
	}
}
