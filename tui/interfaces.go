// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Allows clean separation and easy testing with mocks

package tui

import "ifl-sequencer/job"

// Core validates form input and builds the IFL file.
// job.Core satisfies it; tests substitute a mock.
type Core interface {
	Validate(p job.Params) (job.Config, error)
	Run(cfg job.Config) (job.Summary, error)
}

// DefaultsSaver persists the length defaults edited in the form
type DefaultsSaver func(path string, params job.Params) error
