// ABOUTME: TUI mode configuration and command-line options
// ABOUTME: Defines input parameters for running the form and the viewer

package tui

import "ifl-sequencer/job"

// Options contains configuration for running the interactive form
type Options struct {
	Params     job.Params // Initial field values (from flags, env and config)
	ConfigPath string     // Where "save defaults" writes
}

// Dependencies holds all external dependencies for the form
type Dependencies struct {
	Core         Core
	SaveDefaults DefaultsSaver
}
