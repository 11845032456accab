// ABOUTME: Reads and writes IFL sequence files
// ABOUTME: Renders the provenance comment line, output naming, and parses files back into sequences

package sequence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// Extension is appended to every output file name
	Extension = ".ifl"

	// SeedNotDefined is written in place of the seed when none is known
	SeedNotDefined = "Not Defined"

	createdLayout  = "060102-15.04.05"
	fileNameLayout = "060102150405"

	commentPrefix = ";"
	createdLabel  = "Created: "
	seedLabel     = ", Seed: "
)

// WriteOptions controls output naming for Write
type WriteOptions struct {
	FileName string           // Base name without extension; empty picks a timestamped name
	Now      func() time.Time // Clock for the comment line and file name (defaults to time.Now)
}

// CommentLine returns the provenance line that starts every IFL file
func CommentLine(seed *int64, now time.Time) string {
	seedText := SeedNotDefined
	if seed != nil {
		seedText = strconv.FormatInt(*seed, 10)
	}

	return commentPrefix + createdLabel + now.Format(createdLayout) + seedLabel + seedText + "\n"
}

// Serialize renders seq in IFL format
func Serialize(seq Sequence, now time.Time) string {
	var b strings.Builder

	b.WriteString(CommentLine(seq.Seed, now))

	for _, entry := range seq.Entries {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}

	return b.String()
}

// OutputName returns the file name Write uses for seq
func OutputName(seq Sequence, fileName string, now time.Time) string {
	if fileName != "" {
		return fileName + Extension
	}

	stamp := now.Format(fileNameLayout)
	if len(seq.Entries) == 0 {
		return stamp + Extension
	}

	return stamp + "_" + seq.Entries[0].FileName + Extension
}

// Write serializes seq into dir and returns the path of the written file.
// An existing file with the same name is overwritten. Failures wrap ErrWriteFailure;
// a partially written file is left in place.
func Write(seq Sequence, dir string, opts WriteOptions) (path string, err error) {
	clock := opts.Now
	if clock == nil {
		clock = time.Now
	}

	now := clock()
	name := OutputName(seq, opts.FileName, now)
	path = filepath.Join(dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrWriteFailure, name, err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close %s: %w", ErrWriteFailure, name, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(Serialize(seq, now)); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrWriteFailure, name, err)
	}

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("%w: failed to flush %s: %w", ErrWriteFailure, name, err)
	}

	log.Debug().Str("path", path).Int("entries", len(seq.Entries)).Msg("Wrote ifl file")

	return path, nil
}

// Parse reads an IFL document. The first comment line provides the creation time and
// seed when present; other comment lines and blank lines are skipped. Data lines are
// split at the last space so file names may contain spaces.
func Parse(r io.Reader) (Sequence, time.Time, error) {
	var (
		seq        Sequence
		created    time.Time
		sawComment bool
		lineNo     int
	)

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, commentPrefix) {
			if !sawComment {
				created, seq.Seed = parseComment(line)
				sawComment = true
			}

			continue
		}

		entry, err := parseEntry(line)
		if err != nil {
			return Sequence{}, time.Time{}, fmt.Errorf("line %d: %w", lineNo, err)
		}

		seq.Entries = append(seq.Entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return Sequence{}, time.Time{}, fmt.Errorf("error reading ifl: %w", err)
	}

	return seq, created, nil
}

// ReadFile parses the IFL file at path
func ReadFile(path string) (Sequence, time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return Sequence{}, time.Time{}, fmt.Errorf("failed to open ifl: %w", err)
	}

	defer func() {
		_ = file.Close() // Explicitly ignore error for read-only file
	}()

	return Parse(file)
}

// parseComment extracts creation time and seed, tolerating missing or odd fields
func parseComment(line string) (time.Time, *int64) {
	body := strings.TrimPrefix(line, commentPrefix)
	body = strings.TrimPrefix(body, createdLabel)

	stamp, seedText, found := strings.Cut(body, seedLabel)

	created, err := time.ParseInLocation(createdLayout, strings.TrimSpace(stamp), time.Local)
	if err != nil {
		created = time.Time{}
	}

	if !found {
		return created, nil
	}

	seed, err := strconv.ParseInt(strings.TrimSpace(seedText), 10, 64)
	if err != nil {
		return created, nil
	}

	return created, &seed
}

func parseEntry(line string) (ImageEntry, error) {
	idx := strings.LastIndexByte(line, ' ')
	if idx <= 0 {
		return ImageEntry{}, fmt.Errorf("malformed entry %q", line)
	}

	duration, err := strconv.Atoi(line[idx+1:])
	if err != nil {
		return ImageEntry{}, fmt.Errorf("invalid duration in %q: %w", line, err)
	}

	return ImageEntry{FileName: line[:idx], Duration: duration}, nil
}
