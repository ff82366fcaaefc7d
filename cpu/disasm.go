package cpu

import "fmt"

// operandBytes reports how many bytes (beyond the opcode byte) a given
// addressing mode consumes, used by the disassembler to know how far to
// read ahead without mutating CPU state.
func operandBytes(mode addrMode) int {
	switch mode {
	case modeImplied, modeAccumulator:
		return 0
	case modeImmediate, modeZeroPage, modeZeroPageX, modeZeroPageY,
		modeIndexedIndirectX, modeIndirectIndexedY, modeRelative:
		return 1
	case modeAbsolute, modeAbsoluteX, modeAbsoluteY, modeIndirect:
		return 2
	}
	return 0
}

// Disassemble renders the instruction at pc as a single line in the style
// nestest-derived logs use: address, raw bytes, mnemonic, register file.
// read must not have side effects visible to the emulated program (memory
// reads below 0x2000/in PRG ROM are safe; reads of PPU registers are not,
// so callers should only disassemble addresses that are known-safe, e.g.
// the instruction about to execute).
func (c *CPU) Disassemble(pc uint16, read func(uint16) byte) string {
	opcode := read(pc)
	instr := c.lookup[opcode]
	if instr.execute == nil {
		return fmt.Sprintf("%04X  %02X        ???", pc, opcode)
	}

	n := operandBytes(instr.mode)
	raw := fmt.Sprintf("%02X", opcode)
	for i := 1; i <= n; i++ {
		raw += fmt.Sprintf(" %02X", read(pc+uint16(i)))
	}

	var operand string
	switch n {
	case 1:
		b := read(pc + 1)
		if instr.mode == modeRelative {
			target := uint16(int32(pc+2) + int32(int8(b)))
			operand = fmt.Sprintf("$%04X", target)
		} else {
			operand = fmt.Sprintf("$%02X", b)
		}
	case 2:
		lo, hi := read(pc+1), read(pc+2)
		operand = fmt.Sprintf("$%04X", uint16(hi)<<8|uint16(lo))
	}
	if instr.mode == modeAccumulator {
		operand = "A"
	}

	return fmt.Sprintf("%04X  %-9s %s %-4s  A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d",
		pc, raw, instr.name, operand, c.A, c.X, c.Y, c.P, c.SP, c.Cycles)
}
