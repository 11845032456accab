// ABOUTME: Shared setup for all modes (CLI, interactive form, viewer)
// ABOUTME: Holds run options, mode dispatch, and debug log wiring

package main

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"ifl-sequencer/config"
	"ifl-sequencer/job"
	"ifl-sequencer/logging"
	"ifl-sequencer/tui"
)

// RunOptions contains command-line options for all modes
type RunOptions struct {
	Params     job.Params
	ConfigPath string
	Visual     bool
	ViewPath   string
	Debug      bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// dispatch runs the selected mode and returns the exit status
func dispatch(opts RunOptions) int {
	switch {
	case opts.ViewPath != "":
		return runInteractive(opts, func() error { return tui.RunViewer(opts.ViewPath) })
	case opts.Visual:
		return runInteractive(opts, func() error {
			return tui.Run(
				tui.Options{Params: opts.Params, ConfigPath: opts.ConfigPath},
				tui.Dependencies{Core: job.Core{}, SaveDefaults: saveDefaults},
			)
		})
	default:
		if opts.Debug {
			closer := setupDebugLog(opts)
			defer closer.Close()
		}

		return RunCLI(job.Core{}, opts.Params, opts.Stdout, opts.Stderr)
	}
}

// runInteractive owns the terminal, so logs go to the debug file or nowhere
func runInteractive(opts RunOptions, start func() error) int {
	if opts.Debug {
		closer := logging.InitDebugFile(logging.DebugLogFile)
		defer closer.Close()
	} else {
		logging.Discard()
	}

	if err := start(); err != nil {
		printError(opts.Stderr, err)

		return exitStatus(job.Classify(err))
	}

	return exitOK
}

// setupDebugLog keeps console logging and copies every event to the debug file
func setupDebugLog(opts RunOptions) io.Closer {
	w := logging.NewDebugWriter(logging.DebugLogFile)
	logging.Init("debug", opts.Stderr, w)

	if isTTY(os.Stdout) {
		log.Info().Str("file", logging.DebugLogFile).Msg("Debug logging enabled")
	}

	return w
}

// saveDefaults stores the form's length fields as the new defaults
func saveDefaults(path string, p job.Params) error {
	return config.SaveConfig(path, config.Defaults{
		SequenceLength: p.SequenceLength,
		MinLength:      p.MinLength,
		MaxLength:      p.MaxLength,
	})
}

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}
