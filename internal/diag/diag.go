// Package diag renders crash diagnostics as a single line of JSON, the
// form test-ROM harnesses and the CLI's "--stop-on-pc0" flag consume
// when an emulated program reaches a terminal state: an unknown opcode
// fault or the conventional PC==0 crash signal test ROMs use.
package diag

import (
	"nescore/cpu"

	"github.com/go-faster/jx"
)

// Snapshot is the register-file context captured alongside a crash.
type Snapshot struct {
	PC     uint16
	A, X, Y, P, SP uint8
	Cycles uint64
}

// FromCPU captures c's visible register state.
func FromCPU(c *cpu.CPU) Snapshot {
	return Snapshot{
		PC: c.PC, A: c.A, X: c.X, Y: c.Y, P: c.P, SP: c.SP,
		Cycles: c.Cycles,
	}
}

// FaultReport renders a *cpu.Fault plus register snapshot and
// disassembly as one JSON object.
func FaultReport(f *cpu.Fault, snap Snapshot, disasm string) []byte {
	var w jx.Writer
	w.ObjStart()
	w.FieldStart("kind")
	w.Str("opcode_fault")
	w.FieldStart("pc")
	w.UInt16(f.PC)
	w.FieldStart("opcode")
	w.UInt8(f.Opcode)
	writeSnapshot(&w, snap)
	w.FieldStart("disasm")
	w.Str(disasm)
	w.ObjEnd()
	return w.Buf
}

// PCZeroReport renders the "PC reached zero" diagnostic stop some test
// ROMs signal completion or failure with.
func PCZeroReport(snap Snapshot) []byte {
	var w jx.Writer
	w.ObjStart()
	w.FieldStart("kind")
	w.Str("pc_zero")
	writeSnapshot(&w, snap)
	w.ObjEnd()
	return w.Buf
}

func writeSnapshot(w *jx.Writer, s Snapshot) {
	w.FieldStart("registers")
	w.ObjStart()
	w.FieldStart("pc")
	w.UInt16(s.PC)
	w.FieldStart("a")
	w.UInt8(s.A)
	w.FieldStart("x")
	w.UInt8(s.X)
	w.FieldStart("y")
	w.UInt8(s.Y)
	w.FieldStart("p")
	w.UInt8(s.P)
	w.FieldStart("sp")
	w.UInt8(s.SP)
	w.FieldStart("cycles")
	w.UInt64(s.Cycles)
	w.ObjEnd()
}
