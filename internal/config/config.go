// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/wwboyer/potatocho/internal/options"
)

// Emulator run configuration bounds. The CPU cadence floor matches the
// 60 Hz timer cadence so a frame always executes at least one instruction.
const (
	MinHz = 60
	MaxHz = 10000

	MinScale = 1
	MaxScale = 64
)

// Emulator holds the validated host configuration.
type Emulator struct {
	Title string
	Hz    int
	Scale int
	Mute  bool
}

// NewEmulator validates the program options and returns the host configuration.
func NewEmulator(opts options.Program) (Emulator, error) {
	if opts.Hz < MinHz || opts.Hz > MaxHz {
		return Emulator{}, fmt.Errorf("invalid CPU cadence %d, supported range is %d-%d", opts.Hz, MinHz, MaxHz)
	}
	if opts.Scale < MinScale || opts.Scale > MaxScale {
		return Emulator{}, fmt.Errorf("invalid window scale %d, supported range is %d-%d", opts.Scale, MinScale, MaxScale)
	}

	return Emulator{
		Title: "potatocho",
		Hz:    opts.Hz,
		Scale: opts.Scale,
		Mute:  opts.Mute,
	}, nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
