// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"github.com/wwboyer/potatocho/internal/chip8"
)

// ErrCancelled is returned by SelectROM when the user dismisses the picker.
var ErrCancelled = errors.New("file selection cancelled")

// Load reads a raw CHIP-8 ROM image from disk. ROMs are headerless
// big-endian instruction streams; the only validation is the size limit of
// the user program space.
func Load(path string) ([]byte, error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM file %s: %w", path, err)
	}
	if len(rom) > chip8.MaxROMSize {
		return nil, fmt.Errorf("%s: %w: %d bytes, limit is %d",
			path, chip8.ErrROMTooLarge, len(rom), chip8.MaxROMSize)
	}
	return rom, nil
}

// SelectROM opens the native file picker and returns the chosen path.
func SelectROM() (string, error) {
	path, err := dialog.File().Title("Select a CHIP-8 ROM").Load()
	if err != nil {
		if errors.Is(err, dialog.Cancelled) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("selecting ROM file: %w", err)
	}
	return path, nil
}
