package cpu

// addrMode identifies a 6502 addressing mode. The numeric value has no
// significance beyond table lookups below.
type addrMode int

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect // JMP only
	modeIndexedIndirectX
	modeIndirectIndexedY
	modeRelative // branches
)

// resolveAddr computes the effective address for mode, consuming operand
// bytes from PC as it goes, and reports whether a page boundary was
// crossed (relevant only to the modes that can pay a +1 cycle penalty).
func (c *CPU) resolveAddr(mode addrMode) (addr uint16, pageCrossed bool) {
	switch mode {
	case modeAccumulator:
		return 0, false

	case modeImmediate:
		addr = c.PC
		c.PC++
		return addr, false

	case modeZeroPage:
		addr = uint16(c.read8(c.PC))
		c.PC++
		return addr, false

	case modeZeroPageX:
		base := c.read8(c.PC)
		c.PC++
		addr = uint16(base + c.X) // wraps in page zero
		return addr, false

	case modeZeroPageY:
		base := c.read8(c.PC)
		c.PC++
		addr = uint16(base + c.Y)
		return addr, false

	case modeAbsolute:
		addr = c.read16(c.PC)
		c.PC += 2
		return addr, false

	case modeAbsoluteX:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.X)
		return addr, pageCrossedBetween(base, addr)

	case modeAbsoluteY:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.Y)
		return addr, pageCrossedBetween(base, addr)

	case modeIndirect:
		ptr := c.read16(c.PC)
		c.PC += 2
		// Documented page-wrap bug: the high byte of the target is fetched
		// from (ptr & 0xFF00) | ((ptr+1) & 0xFF), not from ptr+1 when that
		// would cross into the next page.
		lo := uint16(c.read8(ptr))
		hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
		hi := uint16(c.read8(hiAddr))
		return hi<<8 | lo, false

	case modeIndexedIndirectX:
		zp := c.read8(c.PC)
		c.PC++
		ptr := zp + c.X // wraps in page zero
		lo := uint16(c.read8(uint16(ptr)))
		hi := uint16(c.read8(uint16(ptr + 1)))
		return hi<<8 | lo, false

	case modeIndirectIndexedY:
		zp := c.read8(c.PC)
		c.PC++
		lo := uint16(c.read8(uint16(zp)))
		hi := uint16(c.read8(uint16(zp + 1)))
		base := hi<<8 | lo
		addr = base + uint16(c.Y)
		return addr, pageCrossedBetween(base, addr)

	case modeRelative:
		offset := int8(c.read8(c.PC))
		c.PC++
		addr = uint16(int32(c.PC) + int32(offset))
		return addr, pageCrossedBetween(c.PC, addr)
	}

	return 0, false
}

func pageCrossedBetween(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// operand fetches the byte an instruction operates on: for accumulator
// mode that's A itself, otherwise it's the byte at the resolved address.
func (c *CPU) operand() uint8 {
	if c.accumMode {
		return c.A
	}
	return c.read8(c.addr)
}

// storeResult writes an instruction's result back to A (accumulator mode)
// or to the effective address.
func (c *CPU) storeResult(v uint8) {
	if c.accumMode {
		c.A = v
		return
	}
	c.write8(c.addr, v)
}
