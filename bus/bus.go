// Package bus wires the CPU-visible address space together: internal
// RAM, the PPU register window, the two controller ports, OAM DMA and
// cartridge PRG, per the single decode table the CPU's Bus interface
// needs.
package bus

import (
	"nescore/cartridge"
	"nescore/controller"
	"nescore/ppu"
)

// Bus owns mutable references to every component the CPU's memory map
// can touch. Only the current operation's target is mutated; cartridge
// PRG/CHR stay read-only from here.
type Bus struct {
	PPU     *ppu.PPU
	Cart    *cartridge.Cartridge
	Pad1    *controller.Controller
	Pad2    *controller.Controller

	ram [0x0800]byte

	// CPUCycles mirrors the CPU's running cycle counter, kept current by
	// the driver before each instruction so OAM DMA can tell whether it
	// starts on an odd cycle (514 cycles) or an even one (513).
	CPUCycles uint64

	// DMACycles accumulates the CPU cycle cost of OAM DMA transfers; the
	// driver drains it into the CPU's own counter after each step.
	DMACycles int
}

// New builds a bus over the given cartridge and PPU; controllers default
// to zero-value (no buttons held) until SetState is called.
func New(cart *cartridge.Cartridge, p *ppu.PPU) *Bus {
	return &Bus{
		Cart: cart,
		PPU:  p,
		Pad1: &controller.Controller{},
		Pad2: &controller.Controller{},
	}
}

// Reset clears internal RAM.
func (b *Bus) Reset() {
	b.ram = [0x0800]byte{}
	b.DMACycles = 0
}

// Read implements cpu.Bus.
func (b *Bus) Read(addr uint16) byte {
	switch {
	case addr < 0x2000:
		return b.ram[addr&0x07FF]
	case addr < 0x4000:
		return b.PPU.ReadRegister(addr & 7)
	case addr == 0x4016:
		return b.Pad1.Read()
	case addr == 0x4017:
		return b.Pad2.Read()
	case addr < 0x4018:
		return 0
	case addr < 0x8000:
		return 0
	default:
		return b.Cart.ReadPRG(addr)
	}
}

// Write implements cpu.Bus.
func (b *Bus) Write(addr uint16, v byte) {
	switch {
	case addr < 0x2000:
		b.ram[addr&0x07FF] = v
	case addr < 0x4000:
		b.PPU.WriteRegister(addr&7, v)
	case addr == 0x4014:
		b.doOAMDMA(v)
	case addr == 0x4016:
		b.Pad1.WriteStrobe(v)
		b.Pad2.WriteStrobe(v)
	default:
		// 0x4017 and all other unmapped writes (APU, cartridge ROM) drop.
	}
}

// doOAMDMA copies 256 bytes from (page<<8)..+0xFF into OAM, the transfer
// triggered by a CPU write to $4014, and records its cycle cost for the
// driver to charge against the CPU. The copy starts at the PPU's current
// OAMADDR and wraps, per the documented $4014 semantics, rather than
// always starting at OAM index 0.
func (b *Bus) doOAMDMA(page byte) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.PPU.WriteOAM(b.Read(base+uint16(i)))
	}
	if b.CPUCycles%2 == 1 {
		b.DMACycles += 514
	} else {
		b.DMACycles += 513
	}
}
