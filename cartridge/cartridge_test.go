package cartridge

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nescore/ines"
	"nescore/ppu"
)

func rom(prgSize, chrSize int, mapper uint8) *ines.ROM {
	return &ines.ROM{
		PRG:    bytes.Repeat([]byte{0xEA}, prgSize),
		CHR:    bytes.Repeat([]byte{0x00}, chrSize),
		Mapper: mapper,
	}
}

func TestLoadAccepts16KiBAnd32KiB(t *testing.T) {
	if _, err := Load(rom(0x4000, 0x2000, 0)); err != nil {
		t.Errorf("16KiB: %v", err)
	}
	if _, err := Load(rom(0x8000, 0x2000, 0)); err != nil {
		t.Errorf("32KiB: %v", err)
	}
}

func TestLoadRejectsBadPRGSize(t *testing.T) {
	if _, err := Load(rom(0x1000, 0x2000, 0)); err == nil {
		t.Error("expected an error for an unsupported PRG size")
	}
}

func TestLoadWarnsButContinuesOnUnknownMapper(t *testing.T) {
	cart, err := Load(rom(0x4000, 0x2000, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Mapper != 4 {
		t.Errorf("Mapper = %d, want 4", cart.Mapper)
	}
}

func TestLoadPreservesMirroring(t *testing.T) {
	r := rom(0x4000, 0x2000, 0)
	r.Mirroring = ines.Vertical
	cart, err := Load(r)
	if err != nil {
		t.Fatal(err)
	}
	type fields struct {
		Mapper    uint8
		Mirroring ppu.Mirroring
	}
	got := fields{cart.Mapper, cart.Mirroring()}
	want := fields{Mapper: 0, Mirroring: ppu.Vertical}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cartridge fields mismatch (-want +got):\n%s", diff)
	}
}

func TestReadPRGMirrorsUpperBankFor16KiBImage(t *testing.T) {
	r := rom(0x4000, 0x2000, 0)
	r.PRG[0] = 0x42
	cart, err := Load(r)
	if err != nil {
		t.Fatal(err)
	}
	if got := cart.ReadPRG(0x8000); got != 0x42 {
		t.Errorf("ReadPRG(0x8000) = %#02x, want 0x42", got)
	}
	if got := cart.ReadPRG(0xC000); got != 0x42 {
		t.Errorf("ReadPRG(0xC000) = %#02x, want 0x42 (mirrored upper bank)", got)
	}
}

func TestReadCHR(t *testing.T) {
	r := rom(0x4000, 0x2000, 0)
	r.CHR[0x100] = 0x7F
	cart, err := Load(r)
	if err != nil {
		t.Fatal(err)
	}
	if got := cart.ReadCHR(0x100); got != 0x7F {
		t.Errorf("ReadCHR(0x100) = %#02x, want 0x7F", got)
	}
}
