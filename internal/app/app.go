// Package app wires the interpreter core to the SDL host and runs the
// emulation loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
	"github.com/wwboyer/potatocho/internal/chip8"
	"github.com/wwboyer/potatocho/internal/config"
	"github.com/wwboyer/potatocho/internal/host"
	"github.com/wwboyer/potatocho/internal/loader"
	"github.com/wwboyer/potatocho/internal/options"
)

const frameInterval = time.Second / chip8.TimerHz

// Run loads the ROM, opens the host window and drives the machine until the
// user quits, the context is cancelled or the machine faults.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	cfg, err := config.NewEmulator(opts)
	if err != nil {
		return err
	}

	path := opts.Input
	if path == "" {
		path, err = loader.SelectROM()
		if errors.Is(err, loader.ErrCancelled) {
			logger.Info("No ROM selected")
			return nil
		}
		if err != nil {
			return err
		}
	}

	rom, err := loader.Load(path)
	if err != nil {
		return err
	}

	machine := chip8.New(machineOptions(logger, opts)...)
	if err := machine.Load(rom); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	logger.Info("Running ROM",
		log.String("file", path),
		log.Int("bytes", len(rom)),
		log.Int("hz", cfg.Hz),
	)

	h, err := host.New(logger, cfg)
	if err != nil {
		return fmt.Errorf("initializing host: %w", err)
	}
	defer h.Close()

	return runLoop(ctx, h, machine, cfg.Hz)
}

// machineOptions builds the core adapter set: per-instruction trace logging
// when debugging is enabled.
func machineOptions(logger *log.Logger, opts options.Program) []chip8.Option {
	var machineOpts []chip8.Option
	if opts.Debug {
		machineOpts = append(machineOpts, chip8.WithTrace(func(pc, word uint16, mnemonic string) {
			logger.Debug("exec",
				log.String("pc", fmt.Sprintf("0x%04X", pc)),
				log.String("opcode", fmt.Sprintf("0x%04X", word)),
				log.String("instr", mnemonic),
			)
		}))
	}
	return machineOpts
}

// runLoop paces the CPU cadence over ~60 fps frames: per frame it pumps
// input events, executes the frame's share of instructions, draws the
// framebuffer and syncs the tone state.
func runLoop(ctx context.Context, h *host.Host, machine *chip8.Chip8, hz int) error {
	cycles := hz / chip8.TimerHz

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		start := time.Now()
		if !h.PumpEvents(machine) {
			return nil
		}

		for i := 0; i < cycles; i++ {
			if err := machine.Step(); err != nil {
				return fmt.Errorf("machine fault: %w", err)
			}
		}

		if err := h.Render(machine.Framebuffer()); err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
		h.Beep(machine.AudioOn())

		if remaining := frameInterval - time.Since(start); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}
