// Package main implements a CHIP-8 interpreter with an SDL2 window
package main

import (
	"errors"
	"os"
	"runtime"

	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"github.com/wwboyer/potatocho/internal/app"
	"github.com/wwboyer/potatocho/internal/cli"
	"github.com/wwboyer/potatocho/internal/config"
	"github.com/wwboyer/potatocho/internal/options"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// SDL event and window handling must stay on the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Error(err.Error())
		}
		os.Exit(1)
	}

	printBanner(logger, opts)

	if err := app.Run(ctx, logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("potatocho - CHIP-8 interpreter",
		log.String("version", buildinfo.Version(version, commit, date)))
}
