package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"

	"nescore/cmd/nestor/driver"
	"nescore/cpu"
	"nescore/ines"
	"nescore/internal/config"
	"nescore/internal/diag"
	"nescore/internal/log"
	"nescore/nes"
)

const frameInterval = time.Second / 60

func main() {
	cli := parseArgs(os.Args[1:])

	f, err := os.Open(cli.RomPath)
	checkf(err, "failed to open ROM")
	rom, err := ines.Load(f)
	f.Close()
	checkf(err, "failed to load ROM")

	sys, err := nes.New(rom)
	checkf(err, "failed to power up system")
	sys.Reset()
	if cli.Trace {
		sys.Trace = os.Stderr
	}

	cfg := config.LoadOrDefault()
	scale := cfg.Video.Scale
	if cli.Scale != 0 {
		scale = cli.Scale
	}

	var exitCode int
	sdl.Main(func() {
		exitCode = run(sys, cfg, scale, cli)
	})
	os.Exit(exitCode)
}

func run(sys *nes.System, cfg config.Config, scale int, cli CLI) int {
	d, err := driver.New("nestor", scale, cfg.Input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 1
	}
	defer d.Close()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, ctx := errgroup.WithContext(sigCtx)
	running := make(chan struct{})

	g.Go(func() error {
		defer close(running)
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if !d.PumpEvents() {
				return nil
			}
			time.Sleep(frameInterval / 4)
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-running:
				return nil
			case <-ticker.C:
				if err := sys.StepFrame(d, d); err != nil {
					reportFault(sys, err)
					return err
				}
				if cli.StopOnPC0 && sys.CPU.PC == 0 {
					log.ModNES.Infof("PC reached 0, stopping")
					fmt.Fprintln(os.Stderr, string(diag.PCZeroReport(diag.FromCPU(sys.CPU))))
					return nil
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return 1
	}
	return 0
}

func reportFault(sys *nes.System, err error) {
	f, ok := err.(*cpu.Fault)
	if !ok {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return
	}
	snap := diag.FromCPU(sys.CPU)
	disasm := sys.CPU.Disassemble(f.PC, sys.Bus.Read)
	fmt.Fprintln(os.Stderr, string(diag.FaultReport(f, snap, disasm)))
}
