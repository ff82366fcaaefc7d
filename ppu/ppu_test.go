package ppu

import "testing"

// fakeCart is a minimal Mirrorer backed by flat CHR RAM, the way the
// PPU's own package tests exercise it without a real cartridge.
type fakeCart struct {
	chr       [0x2000]byte
	mirroring Mirroring
}

func (c *fakeCart) Mirroring() Mirroring       { return c.mirroring }
func (c *fakeCart) ReadCHR(addr uint16) byte   { return c.chr[addr&0x1FFF] }
func (c *fakeCart) WriteCHR(addr uint16, v byte) { c.chr[addr&0x1FFF] = v }

func newTestPPU() (*PPU, *fakeCart) {
	cart := &fakeCart{}
	p := New(cart)
	p.Reset()
	return p, cart
}

// palette mirroring round-trips through the 0x10/14/18/1C aliases.
func TestPaletteMirroring(t *testing.T) {
	p, _ := newTestPPU()
	pairs := []struct{ a, b uint16 }{
		{0x3F00, 0x3F10}, {0x3F04, 0x3F14}, {0x3F08, 0x3F18}, {0x3F0C, 0x3F1C},
	}
	for _, pr := range pairs {
		p.writePalette(pr.a, 0x15)
		if got := p.readPalette(pr.b); got != 0x15 {
			t.Errorf("write %#04x, read %#04x = %#02x, want 0x15", pr.a, pr.b, got)
		}
		p.writePalette(pr.b, 0x2A)
		if got := p.readPalette(pr.a); got != 0x2A {
			t.Errorf("write %#04x, read %#04x = %#02x, want 0x2A", pr.b, pr.a, got)
		}
	}
}

// nametable mirroring round-trips for both layouts.
func TestNametableMirroringHorizontal(t *testing.T) {
	p, cart := newTestPPU()
	cart.mirroring = Horizontal
	p.writeVRAM(0x2000, 0x42)
	if got := p.readVRAM(0x2400); got != 0x42 {
		t.Errorf("horizontal mirror 0x2000->0x2400 = %#02x, want 0x42", got)
	}
	p.writeVRAM(0x2800, 0x24)
	if got := p.readVRAM(0x2C00); got != 0x24 {
		t.Errorf("horizontal mirror 0x2800->0x2C00 = %#02x, want 0x24", got)
	}
}

func TestNametableMirroringVertical(t *testing.T) {
	p, cart := newTestPPU()
	cart.mirroring = Vertical
	p.writeVRAM(0x2000, 0x42)
	if got := p.readVRAM(0x2800); got != 0x42 {
		t.Errorf("vertical mirror 0x2000->0x2800 = %#02x, want 0x42", got)
	}
	p.writeVRAM(0x2400, 0x24)
	if got := p.readVRAM(0x2C00); got != 0x24 {
		t.Errorf("vertical mirror 0x2400->0x2C00 = %#02x, want 0x24", got)
	}
}

// VBlank set once per frame and NMI-requested iff
// PPUCTRL bit 7 is set.
func TestVBlankOncePerFrameWithNMI(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2000, 0x80) // enable NMI on vblank

	nmiCount := 0
	vblankRisingEdges := 0
	wasSet := false
	totalDots := numScanlines * numDots
	for i := 0; i < totalDots; i++ {
		p.Tick()
		if p.NMIRequested {
			nmiCount++
			p.NMIRequested = false // consume, as the driver would
		}
		set := p.status&statusVBlank != 0
		if set && !wasSet {
			vblankRisingEdges++
		}
		wasSet = set
	}
	if vblankRisingEdges != 1 {
		t.Errorf("vblank rising edges = %d, want 1", vblankRisingEdges)
	}
	if nmiCount != 1 {
		t.Errorf("NMI requests = %d, want 1", nmiCount)
	}
}

func TestNoNMIWhenCtrlBit7Clear(t *testing.T) {
	p, _ := newTestPPU()
	totalDots := numScanlines*numDots + 1
	for i := 0; i < totalDots; i++ {
		p.Tick()
		if p.NMIRequested {
			t.Fatal("NMI should not be requested with PPUCTRL bit 7 clear")
		}
	}
}

func TestStatusReadClearsVBlankAndWriteLatch(t *testing.T) {
	p, _ := newTestPPU()
	p.status |= statusVBlank
	p.writeLatch = true
	v := p.ReadRegister(0x2002)
	if v&statusVBlank == 0 {
		t.Error("first read should report VBlank set")
	}
	if p.status&statusVBlank != 0 {
		t.Error("reading PPUSTATUS should clear VBlank")
	}
	if p.writeLatch {
		t.Error("reading PPUSTATUS should clear the write latch")
	}
}

func TestPPUDATABufferedReadVsImmediatePalette(t *testing.T) {
	p, cart := newTestPPU()
	cart.chr[0x10] = 0xAB
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2006, 0x10) // v = 0x0010, pattern table range

	first := p.ReadRegister(0x2007) // primes the buffer, returns stale (0)
	if first != 0 {
		t.Errorf("first buffered read = %#02x, want 0 (stale)", first)
	}
	second := p.ReadRegister(0x2007)
	if second != 0xAB {
		t.Errorf("second buffered read = %#02x, want 0xAB", second)
	}

	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x00) // v = 0x3F00, palette range
	p.writePalette(0x3F00, 0x20)
	immediate := p.ReadRegister(0x2007)
	if immediate != 0x20 {
		t.Errorf("palette read should be immediate, got %#02x want 0x20", immediate)
	}
}

func TestPPUADDRWriteOrderAndVRAMIncrement(t *testing.T) {
	p, cart := newTestPPU()
	cart.chr[0x1234] = 0x99
	p.WriteRegister(0x2006, 0x12)
	p.WriteRegister(0x2006, 0x34)
	if p.v != 0x1234 {
		t.Fatalf("v = %#04x, want 0x1234", p.v)
	}
	p.ReadRegister(0x2007)
	if p.v != 0x1235 {
		t.Errorf("v after read = %#04x, want 0x1235 (increment by 1)", p.v)
	}

	p.WriteRegister(0x2000, 0x04) // vram increment 32
	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2006, 0x00)
	p.ReadRegister(0x2007)
	if p.v != 32 {
		t.Errorf("v after read with incr32 = %d, want 32", p.v)
	}
}

func TestOAMDATAWritePostIncrementsAddr(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2003, 0x05) // OAMADDR = 5
	p.WriteRegister(0x2004, 0x77) // OAMDATA write
	if p.oam[5] != 0x77 {
		t.Errorf("oam[5] = %#02x, want 0x77", p.oam[5])
	}
	if p.oamAddr != 6 {
		t.Errorf("oamAddr = %d, want 6", p.oamAddr)
	}
}
