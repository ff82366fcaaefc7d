package cpu

// instruction is one row of the opcode dispatch table: an addressing mode,
// a base cycle count, whether that mode/op combination pays a page-cross
// penalty, and the handler. The handler returns cycles *beyond* the base
// (nonzero only for taken branches).
type instruction struct {
	name           string
	mode           addrMode
	cycles         int
	pageCrossExtra bool
	execute        func(c *CPU) int
}

func buildOpcodeTable() [256]instruction {
	var t [256]instruction

	set := func(op uint8, name string, mode addrMode, cycles int, pageCrossExtra bool, fn func(c *CPU) int) {
		t[op] = instruction{name: name, mode: mode, cycles: cycles, pageCrossExtra: pageCrossExtra, execute: fn}
	}

	// --- Loads ---
	set(0xA9, "LDA", modeImmediate, 2, false, execLDA)
	set(0xA5, "LDA", modeZeroPage, 3, false, execLDA)
	set(0xB5, "LDA", modeZeroPageX, 4, false, execLDA)
	set(0xAD, "LDA", modeAbsolute, 4, false, execLDA)
	set(0xBD, "LDA", modeAbsoluteX, 4, true, execLDA)
	set(0xB9, "LDA", modeAbsoluteY, 4, true, execLDA)
	set(0xA1, "LDA", modeIndexedIndirectX, 6, false, execLDA)
	set(0xB1, "LDA", modeIndirectIndexedY, 5, true, execLDA)

	set(0xA2, "LDX", modeImmediate, 2, false, execLDX)
	set(0xA6, "LDX", modeZeroPage, 3, false, execLDX)
	set(0xB6, "LDX", modeZeroPageY, 4, false, execLDX)
	set(0xAE, "LDX", modeAbsolute, 4, false, execLDX)
	set(0xBE, "LDX", modeAbsoluteY, 4, true, execLDX)

	set(0xA0, "LDY", modeImmediate, 2, false, execLDY)
	set(0xA4, "LDY", modeZeroPage, 3, false, execLDY)
	set(0xB4, "LDY", modeZeroPageX, 4, false, execLDY)
	set(0xAC, "LDY", modeAbsolute, 4, false, execLDY)
	set(0xBC, "LDY", modeAbsoluteX, 4, true, execLDY)

	// --- Stores ---
	set(0x85, "STA", modeZeroPage, 3, false, execSTA)
	set(0x95, "STA", modeZeroPageX, 4, false, execSTA)
	set(0x8D, "STA", modeAbsolute, 4, false, execSTA)
	set(0x9D, "STA", modeAbsoluteX, 5, false, execSTA)
	set(0x99, "STA", modeAbsoluteY, 5, false, execSTA)
	set(0x81, "STA", modeIndexedIndirectX, 6, false, execSTA)
	set(0x91, "STA", modeIndirectIndexedY, 6, false, execSTA)

	set(0x86, "STX", modeZeroPage, 3, false, execSTX)
	set(0x96, "STX", modeZeroPageY, 4, false, execSTX)
	set(0x8E, "STX", modeAbsolute, 4, false, execSTX)

	set(0x84, "STY", modeZeroPage, 3, false, execSTY)
	set(0x94, "STY", modeZeroPageX, 4, false, execSTY)
	set(0x8C, "STY", modeAbsolute, 4, false, execSTY)

	// --- Register transfers ---
	set(0xAA, "TAX", modeImplied, 2, false, execTAX)
	set(0xA8, "TAY", modeImplied, 2, false, execTAY)
	set(0x8A, "TXA", modeImplied, 2, false, execTXA)
	set(0x98, "TYA", modeImplied, 2, false, execTYA)
	set(0xBA, "TSX", modeImplied, 2, false, execTSX)
	set(0x9A, "TXS", modeImplied, 2, false, execTXS)

	// --- Stack ---
	set(0x48, "PHA", modeImplied, 3, false, execPHA)
	set(0x08, "PHP", modeImplied, 3, false, execPHP)
	set(0x68, "PLA", modeImplied, 4, false, execPLA)
	set(0x28, "PLP", modeImplied, 4, false, execPLP)

	// --- Logical ---
	set(0x29, "AND", modeImmediate, 2, false, execAND)
	set(0x25, "AND", modeZeroPage, 3, false, execAND)
	set(0x35, "AND", modeZeroPageX, 4, false, execAND)
	set(0x2D, "AND", modeAbsolute, 4, false, execAND)
	set(0x3D, "AND", modeAbsoluteX, 4, true, execAND)
	set(0x39, "AND", modeAbsoluteY, 4, true, execAND)
	set(0x21, "AND", modeIndexedIndirectX, 6, false, execAND)
	set(0x31, "AND", modeIndirectIndexedY, 5, true, execAND)

	set(0x09, "ORA", modeImmediate, 2, false, execORA)
	set(0x05, "ORA", modeZeroPage, 3, false, execORA)
	set(0x15, "ORA", modeZeroPageX, 4, false, execORA)
	set(0x0D, "ORA", modeAbsolute, 4, false, execORA)
	set(0x1D, "ORA", modeAbsoluteX, 4, true, execORA)
	set(0x19, "ORA", modeAbsoluteY, 4, true, execORA)
	set(0x01, "ORA", modeIndexedIndirectX, 6, false, execORA)
	set(0x11, "ORA", modeIndirectIndexedY, 5, true, execORA)

	set(0x49, "EOR", modeImmediate, 2, false, execEOR)
	set(0x45, "EOR", modeZeroPage, 3, false, execEOR)
	set(0x55, "EOR", modeZeroPageX, 4, false, execEOR)
	set(0x4D, "EOR", modeAbsolute, 4, false, execEOR)
	set(0x5D, "EOR", modeAbsoluteX, 4, true, execEOR)
	set(0x59, "EOR", modeAbsoluteY, 4, true, execEOR)
	set(0x41, "EOR", modeIndexedIndirectX, 6, false, execEOR)
	set(0x51, "EOR", modeIndirectIndexedY, 5, true, execEOR)

	set(0x24, "BIT", modeZeroPage, 3, false, execBIT)
	set(0x2C, "BIT", modeAbsolute, 4, false, execBIT)

	// --- Arithmetic ---
	set(0x69, "ADC", modeImmediate, 2, false, execADC)
	set(0x65, "ADC", modeZeroPage, 3, false, execADC)
	set(0x75, "ADC", modeZeroPageX, 4, false, execADC)
	set(0x6D, "ADC", modeAbsolute, 4, false, execADC)
	set(0x7D, "ADC", modeAbsoluteX, 4, true, execADC)
	set(0x79, "ADC", modeAbsoluteY, 4, true, execADC)
	set(0x61, "ADC", modeIndexedIndirectX, 6, false, execADC)
	set(0x71, "ADC", modeIndirectIndexedY, 5, true, execADC)

	set(0xE9, "SBC", modeImmediate, 2, false, execSBC)
	set(0xE5, "SBC", modeZeroPage, 3, false, execSBC)
	set(0xF5, "SBC", modeZeroPageX, 4, false, execSBC)
	set(0xED, "SBC", modeAbsolute, 4, false, execSBC)
	set(0xFD, "SBC", modeAbsoluteX, 4, true, execSBC)
	set(0xF9, "SBC", modeAbsoluteY, 4, true, execSBC)
	set(0xE1, "SBC", modeIndexedIndirectX, 6, false, execSBC)
	set(0xF1, "SBC", modeIndirectIndexedY, 5, true, execSBC)

	set(0xC9, "CMP", modeImmediate, 2, false, execCMP)
	set(0xC5, "CMP", modeZeroPage, 3, false, execCMP)
	set(0xD5, "CMP", modeZeroPageX, 4, false, execCMP)
	set(0xCD, "CMP", modeAbsolute, 4, false, execCMP)
	set(0xDD, "CMP", modeAbsoluteX, 4, true, execCMP)
	set(0xD9, "CMP", modeAbsoluteY, 4, true, execCMP)
	set(0xC1, "CMP", modeIndexedIndirectX, 6, false, execCMP)
	set(0xD1, "CMP", modeIndirectIndexedY, 5, true, execCMP)

	set(0xE0, "CPX", modeImmediate, 2, false, execCPX)
	set(0xE4, "CPX", modeZeroPage, 3, false, execCPX)
	set(0xEC, "CPX", modeAbsolute, 4, false, execCPX)

	set(0xC0, "CPY", modeImmediate, 2, false, execCPY)
	set(0xC4, "CPY", modeZeroPage, 3, false, execCPY)
	set(0xCC, "CPY", modeAbsolute, 4, false, execCPY)

	// --- Increments/decrements ---
	set(0xE6, "INC", modeZeroPage, 5, false, execINC)
	set(0xF6, "INC", modeZeroPageX, 6, false, execINC)
	set(0xEE, "INC", modeAbsolute, 6, false, execINC)
	set(0xFE, "INC", modeAbsoluteX, 7, false, execINC)

	set(0xC6, "DEC", modeZeroPage, 5, false, execDEC)
	set(0xD6, "DEC", modeZeroPageX, 6, false, execDEC)
	set(0xCE, "DEC", modeAbsolute, 6, false, execDEC)
	set(0xDE, "DEC", modeAbsoluteX, 7, false, execDEC)

	set(0xE8, "INX", modeImplied, 2, false, execINX)
	set(0xC8, "INY", modeImplied, 2, false, execINY)
	set(0xCA, "DEX", modeImplied, 2, false, execDEX)
	set(0x88, "DEY", modeImplied, 2, false, execDEY)

	// --- Shifts/rotates ---
	set(0x0A, "ASL", modeAccumulator, 2, false, execASL)
	set(0x06, "ASL", modeZeroPage, 5, false, execASL)
	set(0x16, "ASL", modeZeroPageX, 6, false, execASL)
	set(0x0E, "ASL", modeAbsolute, 6, false, execASL)
	set(0x1E, "ASL", modeAbsoluteX, 7, false, execASL)

	set(0x4A, "LSR", modeAccumulator, 2, false, execLSR)
	set(0x46, "LSR", modeZeroPage, 5, false, execLSR)
	set(0x56, "LSR", modeZeroPageX, 6, false, execLSR)
	set(0x4E, "LSR", modeAbsolute, 6, false, execLSR)
	set(0x5E, "LSR", modeAbsoluteX, 7, false, execLSR)

	set(0x2A, "ROL", modeAccumulator, 2, false, execROL)
	set(0x26, "ROL", modeZeroPage, 5, false, execROL)
	set(0x36, "ROL", modeZeroPageX, 6, false, execROL)
	set(0x2E, "ROL", modeAbsolute, 6, false, execROL)
	set(0x3E, "ROL", modeAbsoluteX, 7, false, execROL)

	set(0x6A, "ROR", modeAccumulator, 2, false, execROR)
	set(0x66, "ROR", modeZeroPage, 5, false, execROR)
	set(0x76, "ROR", modeZeroPageX, 6, false, execROR)
	set(0x6E, "ROR", modeAbsolute, 6, false, execROR)
	set(0x7E, "ROR", modeAbsoluteX, 7, false, execROR)

	// --- Jumps/calls ---
	set(0x4C, "JMP", modeAbsolute, 3, false, execJMP)
	set(0x6C, "JMP", modeIndirect, 5, false, execJMP)
	set(0x20, "JSR", modeAbsolute, 6, false, execJSR)
	set(0x60, "RTS", modeImplied, 6, false, execRTS)

	// --- Branches ---
	set(0x90, "BCC", modeRelative, 2, false, branchIf(func(c *CPU) bool { return !c.flag(FlagC) }))
	set(0xB0, "BCS", modeRelative, 2, false, branchIf(func(c *CPU) bool { return c.flag(FlagC) }))
	set(0xF0, "BEQ", modeRelative, 2, false, branchIf(func(c *CPU) bool { return c.flag(FlagZ) }))
	set(0xD0, "BNE", modeRelative, 2, false, branchIf(func(c *CPU) bool { return !c.flag(FlagZ) }))
	set(0x30, "BMI", modeRelative, 2, false, branchIf(func(c *CPU) bool { return c.flag(FlagN) }))
	set(0x10, "BPL", modeRelative, 2, false, branchIf(func(c *CPU) bool { return !c.flag(FlagN) }))
	set(0x50, "BVC", modeRelative, 2, false, branchIf(func(c *CPU) bool { return !c.flag(FlagV) }))
	set(0x70, "BVS", modeRelative, 2, false, branchIf(func(c *CPU) bool { return c.flag(FlagV) }))

	// --- Flags ---
	set(0x18, "CLC", modeImplied, 2, false, func(c *CPU) int { c.setFlag(FlagC, false); return 0 })
	set(0xD8, "CLD", modeImplied, 2, false, func(c *CPU) int { c.setFlag(FlagD, false); return 0 })
	set(0x58, "CLI", modeImplied, 2, false, func(c *CPU) int { c.requestIChange(false); return 0 })
	set(0xB8, "CLV", modeImplied, 2, false, func(c *CPU) int { c.setFlag(FlagV, false); return 0 })
	set(0x38, "SEC", modeImplied, 2, false, func(c *CPU) int { c.setFlag(FlagC, true); return 0 })
	set(0xF8, "SED", modeImplied, 2, false, func(c *CPU) int { c.setFlag(FlagD, true); return 0 })
	set(0x78, "SEI", modeImplied, 2, false, func(c *CPU) int { c.requestIChange(true); return 0 })

	// --- System ---
	set(0x00, "BRK", modeImplied, 7, false, execBRK)
	set(0xEA, "NOP", modeImplied, 2, false, func(c *CPU) int { return 0 })
	set(0x40, "RTI", modeImplied, 6, false, execRTI)

	return t
}

// --- Loads/stores ---

func execLDA(c *CPU) int { c.A = c.operand(); c.setZN(c.A); return 0 }
func execLDX(c *CPU) int { c.X = c.operand(); c.setZN(c.X); return 0 }
func execLDY(c *CPU) int { c.Y = c.operand(); c.setZN(c.Y); return 0 }

func execSTA(c *CPU) int { c.write8(c.addr, c.A); return 0 }
func execSTX(c *CPU) int { c.write8(c.addr, c.X); return 0 }
func execSTY(c *CPU) int { c.write8(c.addr, c.Y); return 0 }

// --- Transfers ---

func execTAX(c *CPU) int { c.X = c.A; c.setZN(c.X); return 0 }
func execTAY(c *CPU) int { c.Y = c.A; c.setZN(c.Y); return 0 }
func execTXA(c *CPU) int { c.A = c.X; c.setZN(c.A); return 0 }
func execTYA(c *CPU) int { c.A = c.Y; c.setZN(c.A); return 0 }
func execTSX(c *CPU) int { c.X = c.SP; c.setZN(c.X); return 0 }
func execTXS(c *CPU) int { c.SP = c.X; return 0 }

// --- Stack ---

func execPHA(c *CPU) int { c.push(c.A); return 0 }
func execPHP(c *CPU) int { c.push(c.statusForPush(true)); return 0 }
func execPLA(c *CPU) int { c.A = c.pop(); c.setZN(c.A); return 0 }

func execPLP(c *CPU) int {
	// Bits 4 (B) and 5 (U) are not restored from the stack. The I flag
	// change is deferred by one instruction, like SEI/CLI.
	v := c.pop()
	keep := uint8(FlagB | FlagU | FlagI)
	c.P = (c.P & keep) | (v &^ keep)
	c.requestIChange(v&FlagI != 0)
	return 0
}

// --- Logical ---

func execAND(c *CPU) int { c.A &= c.operand(); c.setZN(c.A); return 0 }
func execORA(c *CPU) int { c.A |= c.operand(); c.setZN(c.A); return 0 }
func execEOR(c *CPU) int { c.A ^= c.operand(); c.setZN(c.A); return 0 }

func execBIT(c *CPU) int {
	v := c.operand()
	c.setFlag(FlagZ, c.A&v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
	c.setFlag(FlagV, v&0x40 != 0)
	return 0
}

// --- Arithmetic ---

func execADC(c *CPU) int {
	operand := c.operand()
	carryIn := uint16(0)
	if c.flag(FlagC) {
		carryIn = 1
	}
	sum := uint16(c.A) + uint16(operand) + carryIn
	result := uint8(sum)

	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (uint16(c.A)^sum)&(uint16(operand)^sum)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
	return 0
}

func execSBC(c *CPU) int {
	operand := c.operand()
	carryIn := uint16(0)
	if c.flag(FlagC) {
		carryIn = 1
	}
	inverted := ^operand
	sum := uint16(c.A) + uint16(inverted) + carryIn
	result := uint8(sum)

	c.setFlag(FlagC, sum > 0xFF)
	c.setFlag(FlagV, (uint16(c.A)^sum)&(uint16(inverted)^sum)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
	return 0
}

func compare(c *CPU, reg uint8) {
	v := c.operand()
	diff := uint16(reg) - uint16(v)
	c.setFlag(FlagC, reg >= v)
	c.setZN(uint8(diff))
}

func execCMP(c *CPU) int { compare(c, c.A); return 0 }
func execCPX(c *CPU) int { compare(c, c.X); return 0 }
func execCPY(c *CPU) int { compare(c, c.Y); return 0 }

// --- Increments/decrements ---

// rmw performs a read-modify-write: it reads the current value, writes it
// back unchanged (the hardware "dummy write" test ROMs observe), then
// writes the value fn produces.
func rmw(c *CPU, fn func(uint8) uint8) uint8 {
	old := c.operand()
	if !c.accumMode {
		c.write8(c.addr, old)
	}
	v := fn(old)
	c.storeResult(v)
	return v
}

func execINC(c *CPU) int { v := rmw(c, func(v uint8) uint8 { return v + 1 }); c.setZN(v); return 0 }
func execDEC(c *CPU) int { v := rmw(c, func(v uint8) uint8 { return v - 1 }); c.setZN(v); return 0 }

func execINX(c *CPU) int { c.X++; c.setZN(c.X); return 0 }
func execINY(c *CPU) int { c.Y++; c.setZN(c.Y); return 0 }
func execDEX(c *CPU) int { c.X--; c.setZN(c.X); return 0 }
func execDEY(c *CPU) int { c.Y--; c.setZN(c.Y); return 0 }

// --- Shifts/rotates ---

func execASL(c *CPU) int {
	v := rmw(c, func(v uint8) uint8 {
		c.setFlag(FlagC, v&0x80 != 0)
		return v << 1
	})
	c.setZN(v)
	return 0
}

func execLSR(c *CPU) int {
	v := rmw(c, func(v uint8) uint8 {
		c.setFlag(FlagC, v&0x01 != 0)
		return v >> 1
	})
	c.setZN(v)
	return 0
}

func execROL(c *CPU) int {
	v := rmw(c, func(v uint8) uint8 {
		carryIn := uint8(0)
		if c.flag(FlagC) {
			carryIn = 1
		}
		c.setFlag(FlagC, v&0x80 != 0)
		return v<<1 | carryIn
	})
	c.setZN(v)
	return 0
}

func execROR(c *CPU) int {
	v := rmw(c, func(v uint8) uint8 {
		carryIn := uint8(0)
		if c.flag(FlagC) {
			carryIn = 0x80
		}
		c.setFlag(FlagC, v&0x01 != 0)
		return v>>1 | carryIn
	})
	c.setZN(v)
	return 0
}

// --- Jumps/calls ---

func execJMP(c *CPU) int { c.PC = c.addr; return 0 }

func execJSR(c *CPU) int {
	// PC currently points past the two operand bytes; push PC-1 so RTS's
	// pop+1 lands back on the instruction after JSR.
	c.pushWord(c.PC - 1)
	c.PC = c.addr
	return 0
}

func execRTS(c *CPU) int {
	c.PC = c.popWord() + 1
	return 0
}

// --- Branches ---

func branchIf(cond func(c *CPU) bool) func(c *CPU) int {
	return func(c *CPU) int {
		if !cond(c) {
			return 0
		}
		taken := 1
		if c.pageCrossed {
			taken++
		}
		c.PC = c.addr
		return taken
	}
}

// --- System ---

func execBRK(c *CPU) int {
	// PC already points past the opcode byte; BRK skips a padding byte.
	c.pushWord(c.PC + 1)
	c.push(c.statusForPush(true))
	c.setFlag(FlagI, true)
	c.PC = c.read16(irqVector)
	return 0
}

func execRTI(c *CPU) int {
	v := c.pop()
	c.P = (c.P & (FlagB | FlagU)) | (v &^ (FlagB | FlagU))
	c.PC = c.popWord()
	// RTI restores I immediately; it is not subject to the one-instruction
	// delay that SEI/CLI/PLP observe.
	c.iChangePending = false
	return 0
}
