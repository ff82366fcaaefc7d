// Package cartridge holds a loaded ROM image's PRG/CHR data and exposes
// the read-only, mapper-0 (NROM) addressing NES cartridges without bank
// switching use.
package cartridge

import (
	"fmt"

	"nescore/ines"
	"nescore/internal/log"
	"nescore/ppu"
)

// Cartridge is immutable after Load: PRG/CHR data, mapper ID and
// nametable mirroring mode.
type Cartridge struct {
	prg []byte
	chr []byte

	Mapper    uint8
	mirroring ppu.Mirroring
}

// Load validates rom against the mapper-0 size invariant and wraps it as a
// Cartridge. A non-zero mapper is accepted with a warning and treated as
// NROM (spec's "warn, continue" taxonomy); a malformed PRG size is fatal.
func Load(rom *ines.ROM) (*Cartridge, error) {
	switch len(rom.PRG) {
	case 0x4000, 0x8000:
	default:
		return nil, fmt.Errorf("cartridge: unsupported PRG size %d (mapper 0 requires 16KiB or 32KiB)", len(rom.PRG))
	}
	if rom.Mapper != 0 {
		log.ModCart.Warnf("unsupported mapper %d, running with NROM semantics", rom.Mapper)
	}

	mirroring := ppu.Horizontal
	if rom.Mirroring == ines.Vertical {
		mirroring = ppu.Vertical
	}

	return &Cartridge{
		prg:       rom.PRG,
		chr:       rom.CHR,
		Mapper:    rom.Mapper,
		mirroring: mirroring,
	}, nil
}

// Mirroring reports the cartridge's nametable mirroring mode.
func (c *Cartridge) Mirroring() ppu.Mirroring { return c.mirroring }

// PRGSize reports the size of the PRG ROM image, in bytes.
func (c *Cartridge) PRGSize() int { return len(c.prg) }

// CHRSize reports the size of the CHR ROM image, in bytes.
func (c *Cartridge) CHRSize() int { return len(c.chr) }

// ReadPRG maps a CPU address in [0x8000, 0xFFFF] to a PRG ROM byte. A
// 16KiB image is mirrored into both halves of the window.
func (c *Cartridge) ReadPRG(addr uint16) byte {
	if len(c.prg) == 0 {
		return 0
	}
	offset := int(addr-0x8000) & (len(c.prg) - 1)
	return c.prg[offset]
}

// ReadCHR reads a byte from the pattern-table ROM at a PPU-relative index
// in [0, 0x2000). Cartridges without CHR ROM (CHR RAM is out of scope)
// read back zero.
func (c *Cartridge) ReadCHR(addr uint16) byte {
	if len(c.chr) == 0 {
		return 0
	}
	return c.chr[int(addr)&(len(c.chr)-1)]
}

// WriteCHR is a no-op: ROM has no write path. CHR RAM is out of scope.
func (c *Cartridge) WriteCHR(addr uint16, v byte) {}
