// ABOUTME: Core validate-then-run interface shared by the CLI and interactive shells
// ABOUTME: Checks parameters, enumerates images, generates a sequence and writes the IFL file

// Package job is the single entry point shells use to build an IFL file.
package job

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"ifl-sequencer/config"
	"ifl-sequencer/sequence"
)

// Params are the raw inputs collected by a shell
type Params struct {
	Directory      string // Source and target directory
	Seed           *int64 // nil draws a random seed
	SequenceLength int
	MinLength      int
	MaxLength      int
	FileName       string // Output base name; empty picks a timestamped name
}

// Config is a validated set of parameters
type Config struct {
	Params
}

// Summary describes a completed run
type Summary struct {
	Path       string            // Written IFL file
	Seed       int64             // Seed actually used
	Candidates int               // Number of eligible images found
	Sequence   sequence.Sequence // Generated entries
}

// DefaultParams returns params filled from the built-in defaults
func DefaultParams() Params {
	return ParamsFromDefaults(config.DefaultConfig())
}

// ParamsFromDefaults returns params filled from loaded defaults
func ParamsFromDefaults(d config.Defaults) Params {
	return Params{
		SequenceLength: d.SequenceLength,
		MinLength:      d.MinLength,
		MaxLength:      d.MaxLength,
	}
}

// Core runs jobs. The zero value uses the wall clock and a probe file for writability.
type Core struct {
	Now      func() time.Time
	Writable func(dir string) error // nil creates and removes a probe file
}

// Validate checks params and returns a Config ready for Run.
// Directory problems are reported before length problems.
func (c Core) Validate(p Params) (Config, error) {
	if p.Directory == "" {
		return Config{}, fmt.Errorf("%w: no directory defined, a directory is required", sequence.ErrInvalidDirectory)
	}

	dir := filepath.Clean(p.Directory)

	info, err := os.Stat(dir)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", sequence.ErrInvalidDirectory, err)
	}

	if !info.IsDir() {
		return Config{}, fmt.Errorf("%w: %s is not a directory", sequence.ErrInvalidDirectory, dir)
	}

	writable := c.Writable
	if writable == nil {
		writable = checkWritable
	}

	if err := writable(dir); err != nil {
		return Config{}, fmt.Errorf("%w: unable to write to %s: %w", sequence.ErrInvalidDirectory, dir, err)
	}

	if err := sequence.CheckBounds(p.MinLength, p.MaxLength); err != nil {
		return Config{}, err
	}

	if p.SequenceLength < 0 {
		return Config{}, fmt.Errorf("%w: %d", sequence.ErrInvalidSequenceLength, p.SequenceLength)
	}

	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	p.Directory = dir

	return Config{Params: p}, nil
}

// Run enumerates, generates and writes. It returns sequence.ErrNoCandidateImages
// without writing anything when the directory has no eligible images.
func (c Core) Run(cfg Config) (Summary, error) {
	candidates, err := sequence.Enumerate(cfg.Directory)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %w", sequence.ErrInvalidDirectory, err)
	}

	if len(candidates) == 0 {
		return Summary{}, fmt.Errorf("%w: %s", sequence.ErrNoCandidateImages, cfg.Directory)
	}

	log.Info().
		Str("dir", cfg.Directory).
		Int("candidates", len(candidates)).
		Int("list_length", cfg.SequenceLength).
		Msg("Randomizing files")

	seq, err := sequence.Generate(candidates, cfg.MinLength, cfg.MaxLength, cfg.SequenceLength, cfg.Seed)
	if err != nil {
		return Summary{}, err
	}

	path, err := sequence.Write(seq, cfg.Directory, sequence.WriteOptions{
		FileName: cfg.FileName,
		Now:      c.Now,
	})
	if err != nil {
		return Summary{}, err
	}

	log.Info().Str("path", path).Int64("seed", *seq.Seed).Msg("Wrote ifl file")

	return Summary{
		Path:       path,
		Seed:       *seq.Seed,
		Candidates: len(candidates),
		Sequence:   seq,
	}, nil
}

// Validate checks params with the default Core
func Validate(p Params) (Config, error) {
	return Core{}.Validate(p)
}

// Run executes cfg with the default Core
func Run(cfg Config) (Summary, error) {
	return Core{}.Run(cfg)
}

// checkWritable creates and removes a probe file in dir
func checkWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".ifl-sequencer-probe-*")
	if err != nil {
		return err
	}

	name := probe.Name()

	if err := probe.Close(); err != nil {
		_ = os.Remove(name)

		return err
	}

	return os.Remove(name)
}

// Status classifies the outcome of a run for shells
type Status int

// Outcomes a shell has to distinguish
const (
	StatusOK           Status = iota // Sequence written
	StatusNoImages                   // Nothing to do; benign
	StatusInvalidInput               // Bad directory, bounds or length
	StatusWriteFailure               // Output could not be written
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoImages:
		return "no-images"
	case StatusInvalidInput:
		return "invalid-input"
	case StatusWriteFailure:
		return "write-failure"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Classify maps an error from Validate or Run to a Status.
// Unrecognized errors count as invalid input.
func Classify(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, sequence.ErrNoCandidateImages):
		return StatusNoImages
	case errors.Is(err, sequence.ErrWriteFailure):
		return StatusWriteFailure
	default:
		return StatusInvalidInput
	}
}

// IsFailure reports whether the status should abort with an error
func (s Status) IsFailure() bool {
	return s == StatusInvalidInput || s == StatusWriteFailure
}
