// ABOUTME: Entry point for ifl-sequencer
// ABOUTME: Parses flags with cobra and routes to the CLI, the interactive form or the viewer

// Package main provides the entry point for ifl-sequencer, which builds randomized IFL
// image sequence files from a directory of images.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ifl-sequencer/config"
	"ifl-sequencer/job"
	"ifl-sequencer/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the program with args and returns the exit status
func run(args []string, stdout, stderr io.Writer) int {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}

	logging.Init(os.Getenv(config.EnvLogLevel), stderr)

	defaults, configPath, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", configPath).Msg("Using built-in defaults")
	}

	opts := RunOptions{
		Params:     job.ParamsFromDefaults(defaults),
		ConfigPath: configPath,
		Stdout:     stdout,
		Stderr:     stderr,
	}

	// No arguments at all opens the interactive form
	if len(args) == 0 {
		opts.Visual = true

		return dispatch(opts)
	}

	code := exitOK
	cmd := newRootCmd(&opts, func() { code = dispatch(opts) })
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		printError(stderr, err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", cmd.Name())

		return exitUsage
	}

	return code
}

// newRootCmd builds the command line. Flag values land in opts; action runs once flags parse.
func newRootCmd(opts *RunOptions, action func()) *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "ifl-sequencer",
		Short: "Build a randomized IFL image sequence from a directory of images",
		Long: `ifl-sequencer scans a directory for .png, .jpg, .jpeg, .tga and .tiff images,
picks a random sequence of them with random per-image durations, and writes the
result as an IFL file into the same directory.

With no arguments the interactive form is started.`,
		Example: `  ifl-sequencer -d ./frames -s 42 -l 20 -n 3 -m 8
  ifl-sequencer -d ./frames -f walk_cycle
  ifl-sequencer --view ./frames/walk_cycle.ifl`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("seed") {
				opts.Params.Seed = &seed
			}

			if opts.Visual && opts.ViewPath != "" {
				return errors.New("--visual and --view cannot be combined")
			}

			action()

			return nil
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&opts.Params.Directory, "directory", "d", "", "directory to read images from and write the IFL file to")
	flags.Int64VarP(&seed, "seed", "s", 0, "seed for the random generator (default: random, recorded in the file)")
	flags.IntVarP(&opts.Params.SequenceLength, "list_length", "l", opts.Params.SequenceLength, "number of entries in the sequence")
	flags.IntVarP(&opts.Params.MinLength, "min_length", "n", opts.Params.MinLength, "minimum duration of an entry")
	flags.IntVarP(&opts.Params.MaxLength, "max_length", "m", opts.Params.MaxLength, "maximum duration of an entry")
	flags.StringVarP(&opts.Params.FileName, "file_name", "f", "", "output file name without extension (default: <timestamp>_<first image>)")
	flags.BoolVar(&opts.Visual, "visual", false, "open the interactive form")
	flags.StringVar(&opts.ViewPath, "view", "", "watch and display an existing IFL file")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging to "+logging.DebugLogFile)

	return cmd
}
