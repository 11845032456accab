// ABOUTME: CLI mode: validate, build and write one IFL file
// ABOUTME: Maps core outcomes to colored messages and process exit codes

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"ifl-sequencer/job"
)

// Exit codes
const (
	exitOK           = 0
	exitWriteFailure = 1
	exitUsage        = 2
)

// jobCore is the part of job.Core the CLI needs
type jobCore interface {
	Validate(p job.Params) (job.Config, error)
	Run(cfg job.Config) (job.Summary, error)
}

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow)
	doneColor  = color.New(color.FgGreen)
)

// RunCLI executes one non-interactive run and returns the exit status
func RunCLI(core jobCore, params job.Params, stdout, stderr io.Writer) int {
	cfg, err := core.Validate(params)
	if err != nil {
		printError(stderr, err)

		return exitStatus(job.Classify(err))
	}

	fmt.Fprintf(stdout, "Randomizing files in %s\n", cfg.Directory)

	summary, err := core.Run(cfg)

	switch status := job.Classify(err); status {
	case job.StatusOK:
		doneColor.Fprintf(stdout, "Wrote %s (%d entries from %d images, seed %d)\n", //nolint:errcheck // best-effort output
			summary.Path, summary.Sequence.Len(), summary.Candidates, summary.Seed)

		return exitOK
	case job.StatusNoImages:
		warnColor.Fprintf(stdout, "No images found in %s, nothing written\n", cfg.Directory) //nolint:errcheck // best-effort output

		return exitOK
	default:
		printError(stderr, err)

		return exitStatus(status)
	}
}

// exitStatus maps a core outcome to a process exit code
func exitStatus(s job.Status) int {
	switch s {
	case job.StatusOK, job.StatusNoImages:
		return exitOK
	case job.StatusWriteFailure:
		return exitWriteFailure
	default:
		return exitUsage
	}
}

// printError writes err as a single red line
func printError(w io.Writer, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	errorColor.Fprintf(w, "Error: %v\n", err) //nolint:errcheck // best-effort output
}
