// Package options contains the program options.
package options

// Program options of the emulator.
type Program struct {
	Input string // ROM file path, empty opens the file picker

	Hz    int // CPU cadence in instructions per second
	Scale int // window scale factor over the 64x32 display

	Mute  bool
	Debug bool
	Quiet bool
}
