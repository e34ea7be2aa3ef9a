// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/wwboyer/potatocho/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[1:])
}

func parseArgs(args []string) (options.Program, error) {
	flags := flag.NewFlagSet("potatocho", flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags}
	}

	positional := flags.Args()
	if err := validateArgs(positional); err != nil {
		return opts, err
	}
	if len(positional) > 0 {
		opts.Input = positional[0]
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: potatocho [options] [ROM file]\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 || len(arg) > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("unexpected argument %s, pass a single ROM file as the last argument", arg),
			}
		}
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.IntVar(&opts.Hz, "hz", 600, "CPU cadence in instructions per second")
	flags.IntVar(&opts.Scale, "scale", 20, "window scale factor over the 64x32 display")
	flags.BoolVar(&opts.Mute, "mute", false, "disable audio output")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
