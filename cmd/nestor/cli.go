package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nescore/internal/log"
)

// CLI is the complete command-line surface: one positional ROM path,
// plus flags governing logging, window scale, trace output, and the
// PC==0 diagnostic stop test ROMs conventionally signal completion with.
type CLI struct {
	RomPath string `arg:"" name:"rom" help:"Path to a .nes file." required:"true" type:"existingfile"`

	Log        logModMask `help:"${log_help}" placeholder:"mod0,mod1,..." default:"no"`
	Scale      int        `help:"Window scale factor." default:"0"`
	Trace      bool       `help:"Write a per-instruction disassembly trace to stderr."`
	StopOnPC0  bool       `name:"stop-on-pc0" help:"Treat PC==0 at the end of a frame as a diagnostic stop (checked once per frame, not after every step)."`
}

var cliVars = kong.Vars{
	"log_help": "Enable debug logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("nestor"),
		kong.Description("NES emulator core driver."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		cliVars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")
	return cli
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}

	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}
	fmt.Fprintf(os.Stderr, `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s
  As a special case, the following values are accepted:
    - no                     Disable all logging. (default)
    - all                    Enable all logs.
`, strings.Join(strs, "\n"))
	return nil
}

// logModMask decodes a comma-separated module list into a log.ModuleMask,
// implementing kong.MapperValue.
type logModMask log.ModuleMask

func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	raw, _ := tok.Value.(string)

	nolog, allLogs := false, false
	var mask log.ModuleMask

	for _, v := range strings.Split(raw, ",") {
		switch v {
		case "all":
			allLogs = true
		case "no", "":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %q", v)
			}
			mask |= mod.Mask()
		}
	}

	switch {
	case nolog && allLogs:
		return fmt.Errorf("cannot use 'all' and 'no' together")
	case nolog:
		log.Disable()
	case allLogs:
		log.EnableDebugModules(log.ModuleMaskAll)
	default:
		log.EnableDebugModules(mask)
	}
	*lm = logModMask(mask)
	return nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+": "+err.Error())
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
