// Package nes wires the CPU, PPU, cartridge and controllers into a
// runnable system and drives the frame loop.
package nes

import (
	"fmt"
	"io"

	"nescore/bus"
	"nescore/cartridge"
	"nescore/cpu"
	"nescore/ines"
	"nescore/internal/log"
	"nescore/ppu"
)

// Screen receives a completed frame. Implementations must copy the
// framebuffer before returning; the PPU reuses its backing array for the
// next frame.
type Screen interface {
	Render(framebuffer *[256 * 240]uint32)
}

// Input reports the current button state as an A/B/Select/Start/Up/Down/
// Left/Right bitmask for each of the two controllers.
type Input interface {
	Poll() (pad1, pad2 uint8)
}

// System is a fully wired NES: CPU, PPU, cartridge and both controller
// ports behind a shared bus.
type System struct {
	CPU *cpu.CPU
	PPU *ppu.PPU
	Bus *bus.Bus

	// Trace, if non-nil, receives one disassembled line per instruction
	// executed, the "--trace" CLI flag's output.
	Trace io.Writer
}

// New builds a System from a loaded ROM image.
func New(rom *ines.ROM) (*System, error) {
	cart, err := cartridge.Load(rom)
	if err != nil {
		return nil, err
	}

	p := ppu.New(cart)
	b := bus.New(cart, p)
	c := cpu.New(b)
	b.PPU = p

	return &System{CPU: c, PPU: p, Bus: b}, nil
}

// Reset resets every component.
func (s *System) Reset() {
	s.Bus.Reset()
	s.PPU.Reset()
	s.CPU.Reset()
}

// StepFrame runs the CPU/PPU pair until the PPU reports a completed
// frame, polling input once and rendering once the frame is done. It
// follows the scheduling model the core commits to: CPU step, then the
// PPU clocked three dots per CPU cycle, with the PPU's NMI-requested
// flag observed no later than the CPU's next Step call.
func (s *System) StepFrame(screen Screen, input Input) error {
	pad1, pad2 := input.Poll()
	s.Bus.Pad1.SetState(pad1)
	s.Bus.Pad2.SetState(pad2)

	for {
		if s.Trace != nil {
			fmt.Fprintln(s.Trace, s.CPU.Disassemble(s.CPU.PC, s.Bus.Read))
		}
		s.Bus.CPUCycles = s.CPU.Cycles
		cycles, err := s.CPU.Step()
		if err != nil {
			if f, ok := err.(*cpu.Fault); ok {
				log.ModNES.Errorf("cpu fault: %v", f)
			}
			return err
		}
		if s.Bus.DMACycles > 0 {
			cycles += s.Bus.DMACycles
			s.CPU.Cycles += uint64(s.Bus.DMACycles)
			s.Bus.DMACycles = 0
		}

		frameDone := false
		for i := 0; i < cycles*3; i++ {
			s.PPU.Tick()
			if s.PPU.NMIRequested {
				s.CPU.RequestInterrupt(cpu.NMI)
				s.PPU.NMIRequested = false
			}
			if s.PPU.FrameDone && !frameDone {
				screen.Render(&s.PPU.Framebuffer)
				frameDone = true
			}
		}
		if frameDone {
			return nil
		}
	}
}
