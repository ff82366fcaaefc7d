// Package log provides module-gated structured logging for the emulator
// core. Every subsystem logs through its own Module so that a user can
// enable tracing for, say, the PPU without drowning in CPU instruction
// traces.
package log

import (
	logrus "gopkg.in/Sirupsen/logrus.v0"
)

// Module identifies a logging source within the core.
type Module uint

const (
	ModNES Module = iota
	ModCPU
	ModPPU
	ModBus
	ModCart
	ModInput

	numModules
)

var modNames = [numModules]string{
	ModNES:   "nes",
	ModCPU:   "cpu",
	ModPPU:   "ppu",
	ModBus:   "bus",
	ModCart:  "cart",
	ModInput: "input",
}

func (m Module) String() string { return modNames[m] }

// ModuleMask is a bitmask of Modules, used to enable debug-level logging
// selectively from the CLI or a config file.
type ModuleMask uint64

const ModuleMaskAll ModuleMask = 1<<numModules - 1

func (m Module) Mask() ModuleMask { return 1 << ModuleMask(m) }

// ModuleByName looks up a Module by its lowercase name, for CLI flag decoding.
func ModuleByName(name string) (Module, bool) {
	for i, n := range modNames {
		if n == name {
			return Module(i), true
		}
	}
	return 0, false
}

func ModuleNames() []string {
	names := make([]string, len(modNames))
	copy(names, modNames[:])
	return names
}

var debugMask ModuleMask

// EnableDebugModules turns on debug-level logging for the given modules.
func EnableDebugModules(mask ModuleMask) {
	debugMask |= mask
	logrus.SetLevel(logrus.DebugLevel)
}

// DisableDebugModules turns off debug-level logging for the given modules.
func DisableDebugModules(mask ModuleMask) { debugMask &^= mask }

func (m Module) debugEnabled() bool { return debugMask&m.Mask() != 0 }

// Fields is a set of structured key/value pairs attached to a log line.
type Fields map[string]any

// Entry is a log line in progress, bound to a Module.
type Entry struct {
	mod    Module
	fields Fields
}

func (m Module) entry() Entry { return Entry{mod: m} }

func (e Entry) WithField(key string, value any) Entry {
	return e.WithFields(Fields{key: value})
}

func (e Entry) WithFields(fields Fields) Entry {
	merged := make(Fields, len(e.fields)+len(fields))
	for k, v := range e.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return Entry{mod: e.mod, fields: merged}
}

func (e Entry) logrus() *logrus.Entry {
	le := logrus.StandardLogger().WithField("mod", modNames[e.mod])
	if len(e.fields) > 0 {
		le = le.WithFields(logrus.Fields(e.fields))
	}
	return le
}

func (e Entry) Debugf(format string, args ...any) {
	if e.mod.debugEnabled() {
		e.logrus().Debugf(format, args...)
	}
}

func (e Entry) Infof(format string, args ...any)  { e.logrus().Infof(format, args...) }
func (e Entry) Warnf(format string, args ...any)  { e.logrus().Warnf(format, args...) }
func (e Entry) Errorf(format string, args ...any) { e.logrus().Errorf(format, args...) }
func (e Entry) Fatalf(format string, args ...any) { e.logrus().Fatalf(format, args...) }

// Module-level shortcuts, so call sites can write log.ModPPU.Debugf(...)
// without first building an Entry.

func (m Module) WithField(key string, value any) Entry  { return m.entry().WithField(key, value) }
func (m Module) WithFields(fields Fields) Entry          { return m.entry().WithFields(fields) }
func (m Module) Debugf(format string, args ...any)       { m.entry().Debugf(format, args...) }
func (m Module) Infof(format string, args ...any)        { m.entry().Infof(format, args...) }
func (m Module) Warnf(format string, args ...any)         { m.entry().Warnf(format, args...) }
func (m Module) Errorf(format string, args ...any)        { m.entry().Errorf(format, args...) }
func (m Module) Fatalf(format string, args ...any)        { m.entry().Fatalf(format, args...) }

// Disable silences all logging output below Fatal, used by the CLI's
// "--log no" special case.
func Disable() {
	logrus.SetLevel(logrus.FatalLevel)
}
