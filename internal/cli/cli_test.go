package cli

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		hz    int
		scale int
		debug bool
		mute  bool
	}{
		{"defaults", nil, "", 600, 20, false, false},
		{"rom file", []string{"pong.ch8"}, "pong.ch8", 600, 20, false, false},
		{"cadence", []string{"-hz", "500", "game.rom"}, "game.rom", 500, 20, false, false},
		{"scale and mute", []string{"-scale", "10", "-mute"}, "", 600, 10, false, true},
		{"debug", []string{"-debug", "test.ch8"}, "test.ch8", 600, 20, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.input, opts.Input)
			assert.Equal(t, tt.hz, opts.Hz)
			assert.Equal(t, tt.scale, opts.Scale)
			assert.Equal(t, tt.debug, opts.Debug)
			assert.Equal(t, tt.mute, opts.Mute)
		})
	}
}

func TestParseArgsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"two rom files", []string{"a.ch8", "b.ch8"}},
		{"flag after rom file", []string{"a.ch8", "-debug"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(tt.args)

			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}
