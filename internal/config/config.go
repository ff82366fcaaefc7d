// Package config loads the driver's on-disk TOML configuration: video
// scale, default log modules and controller key bindings.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"nescore/internal/log"
)

// Config is the persisted driver configuration.
type Config struct {
	Video   VideoConfig   `toml:"video"`
	Logging LoggingConfig `toml:"logging"`
	Input   InputConfig   `toml:"input"`
}

// VideoConfig controls the output window.
type VideoConfig struct {
	Scale int `toml:"scale"`
}

// LoggingConfig holds a list of log module names. cmd/nestor does not
// apply it; debug modules are enabled only through the --log flag.
type LoggingConfig struct {
	Modules []string `toml:"modules"`
}

// InputConfig maps NES buttons to host keyboard scancode names for
// controller 1. Names are resolved by the driver package against its
// windowing library's own scancode table.
type InputConfig struct {
	A      string `toml:"a"`
	B      string `toml:"b"`
	Select string `toml:"select"`
	Start  string `toml:"start"`
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Left   string `toml:"left"`
	Right  string `toml:"right"`
}

// Default returns the built-in configuration used when no config file
// exists or it fails to parse.
func Default() Config {
	return Config{
		Video: VideoConfig{Scale: 3},
		Input: InputConfig{
			A: "K", B: "J", Select: "RShift", Start: "Return",
			Up: "Up", Down: "Down", Left: "Left", Right: "Right",
		},
	}
}

const fileName = "config.toml"

// dir returns the directory nestor's configuration lives in, creating it
// if necessary.
func dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	d := filepath.Join(base, "nestor")
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	return d, nil
}

// LoadOrDefault loads config.toml from the OS user config directory. It
// never fails: a missing or malformed file silently falls back to
// Default(), logged at debug level rather than surfaced as an error.
func LoadOrDefault() Config {
	d, err := dir()
	if err != nil {
		log.ModNES.Debugf("config: could not resolve config dir: %v", err)
		return Default()
	}

	var cfg Config
	if _, err := toml.DecodeFile(filepath.Join(d, fileName), &cfg); err != nil {
		log.ModNES.Debugf("config: using defaults (%v)", err)
		return Default()
	}
	if cfg.Video.Scale == 0 {
		cfg.Video.Scale = Default().Video.Scale
	}
	return cfg
}

// Save writes cfg to the OS user config directory as TOML.
func Save(cfg Config) error {
	d, err := dir()
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(d, fileName))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
