// ABOUTME: Defines ImageEntry and directory enumeration of candidate images
// ABOUTME: Lists direct children of a directory filtered by image file extension

// Package sequence builds IFL image sequences.
// It enumerates candidate images in a directory, draws a seeded random sequence with
// per-image durations, and reads and writes the flat-text IFL format.
package sequence

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ImageExtensions are the recognized image suffixes (matched case-sensitively)
var ImageExtensions = []string{".png", ".jpg", ".tga", ".tiff", ".jpeg"}

// ImageEntry is one candidate image and its assigned display duration
type ImageEntry struct {
	FileName string // File name relative to the source directory
	Duration int    // Display duration in frames (0 until assigned)
}

// String returns the IFL data line for the entry (without newline)
func (e ImageEntry) String() string {
	return e.FileName + " " + strconv.Itoa(e.Duration)
}

// IsImageName reports whether name ends with one of ImageExtensions
func IsImageName(name string) bool {
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}

// Enumerate lists the eligible image files directly inside dir.
// Subdirectories (and symlinks to directories) are skipped. The result keeps the
// order of the directory listing; callers must not rely on it being sorted.
func Enumerate(dir string) ([]ImageEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	images := make([]ImageEntry, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !IsImageName(entry.Name()) {
			continue
		}

		if entry.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(filepath.Join(dir, entry.Name()))
			if err != nil || target.IsDir() {
				log.Debug().Str("name", entry.Name()).Msg("Skipping unresolvable or directory symlink")

				continue
			}
		}

		images = append(images, ImageEntry{FileName: entry.Name()})
	}

	log.Debug().Str("dir", dir).Int("candidates", len(images)).Msg("Enumerated candidate images")

	return images, nil
}
