// ABOUTME: Tests for IFL serialization, naming, writing and parsing
// ABOUTME: Covers the comment line format, round trips, and write failures

package sequence

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

var fixedNow = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.Local)

func fixedClock() time.Time {
	return fixedNow
}

func TestCommentLine(t *testing.T) {
	tests := []struct {
		name string
		seed *int64
		want string
	}{
		{"with seed", seedPtr(42), ";Created: 240305-14.07.09, Seed: 42\n"},
		{"negative seed", seedPtr(-7), ";Created: 240305-14.07.09, Seed: -7\n"},
		{"without seed", nil, ";Created: 240305-14.07.09, Seed: Not Defined\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CommentLine(tt.seed, fixedNow); got != tt.want {
				t.Errorf("CommentLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	seq := Sequence{
		Entries: []ImageEntry{{"a.png", 5}, {"b.jpg", 15}, {"a.png", 9}},
		Seed:    seedPtr(7),
	}

	want := ";Created: 240305-14.07.09, Seed: 7\na.png 5\nb.jpg 15\na.png 9\n"
	if got := Serialize(seq, fixedNow); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestOutputName(t *testing.T) {
	seq := Sequence{Entries: []ImageEntry{{"first.png", 5}, {"second.png", 6}}}

	tests := []struct {
		name     string
		seq      Sequence
		fileName string
		want     string
	}{
		{"explicit name", seq, "intro", "intro.ifl"},
		{"auto name uses first entry", seq, "", "240305140709_first.png.ifl"},
		{"auto name for empty sequence", Sequence{}, "", "240305140709.ifl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputName(tt.seq, tt.fileName, fixedNow); got != tt.want {
				t.Errorf("OutputName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	seq := Sequence{
		Entries: []ImageEntry{{"a.png", 5}, {"b.jpg", 15}},
		Seed:    seedPtr(11),
	}

	path, err := Write(seq, dir, WriteOptions{Now: fixedClock})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if want := filepath.Join(dir, "240305140709_a.png.ifl"); path != want {
		t.Errorf("Write() path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != Serialize(seq, fixedNow) {
		t.Errorf("File content = %q, want %q", data, Serialize(seq, fixedNow))
	}
}

func TestWriteOverwritesExplicitName(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "loop.ifl")

	if err := os.WriteFile(target, []byte("old content that is longer than the new one\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	seq := Sequence{Entries: []ImageEntry{{"a.png", 1}}, Seed: seedPtr(1)}

	path, err := Write(seq, dir, WriteOptions{FileName: "loop", Now: fixedClock})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(string(data), "old content") {
		t.Error("Expected existing file to be overwritten")
	}
}

// TestWriteInvalidDirectory verifies error handling for invalid paths
func TestWriteInvalidDirectory(t *testing.T) {
	seq := Sequence{Entries: []ImageEntry{{"a.png", 1}}}

	_, err := Write(seq, "/nonexistent/directory", WriteOptions{Now: fixedClock})
	if !errors.Is(err, ErrWriteFailure) {
		t.Errorf("Expected ErrWriteFailure, got %v", err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantEntries []ImageEntry
		wantSeed    *int64
		expectError bool
	}{
		{
			name:        "generated file",
			content:     ";Created: 240305-14.07.09, Seed: 42\na.png 5\nb.jpg 15\n",
			wantEntries: []ImageEntry{{"a.png", 5}, {"b.jpg", 15}},
			wantSeed:    seedPtr(42),
		},
		{
			name:        "seed not defined",
			content:     ";Created: 240305-14.07.09, Seed: Not Defined\na.png 5\n",
			wantEntries: []ImageEntry{{"a.png", 5}},
		},
		{
			name:        "file names with spaces and CRLF",
			content:     ";Created: 240305-14.07.09, Seed: 1\r\nmy frame.png 7\r\n\r\n",
			wantEntries: []ImageEntry{{"my frame.png", 7}},
			wantSeed:    seedPtr(1),
		},
		{
			name:        "no comment line",
			content:     "a.png 5\n",
			wantEntries: []ImageEntry{{"a.png", 5}},
		},
		{
			name:        "extra comments are skipped",
			content:     ";Created: 240305-14.07.09, Seed: 3\n; hand edited\na.png 5\n",
			wantEntries: []ImageEntry{{"a.png", 5}},
			wantSeed:    seedPtr(3),
		},
		{
			name:        "missing duration",
			content:     "a.png\n",
			expectError: true,
		},
		{
			name:        "non numeric duration",
			content:     "a.png five\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, _, err := Parse(strings.NewReader(tt.content))

			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got none")
				}

				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if !slices.Equal(seq.Entries, tt.wantEntries) {
				t.Errorf("Entries = %v, want %v", seq.Entries, tt.wantEntries)
			}

			switch {
			case tt.wantSeed == nil && seq.Seed != nil:
				t.Errorf("Expected no seed, got %d", *seq.Seed)
			case tt.wantSeed != nil && (seq.Seed == nil || *seq.Seed != *tt.wantSeed):
				t.Errorf("Seed = %v, want %d", seq.Seed, *tt.wantSeed)
			}
		})
	}
}

func TestParseCreatedTime(t *testing.T) {
	_, created, err := Parse(strings.NewReader(CommentLine(seedPtr(1), fixedNow)))
	if err != nil {
		t.Fatal(err)
	}

	if !created.Equal(fixedNow) {
		t.Errorf("Created = %v, want %v", created, fixedNow)
	}
}

// TestRoundTrip verifies generate, write then read preserves every entry
func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := candidates("Fred V - Ignite.png", "calibre.jpg", "spill.tga", "hills.jpeg")

	seq, err := Generate(c, 3, 24, 40, seedPtr(2024))
	if err != nil {
		t.Fatal(err)
	}

	path, err := Write(seq, dir, WriteOptions{FileName: "roundtrip", Now: fixedClock})
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	read, _, err := ReadFile(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if !slices.Equal(read.Entries, seq.Entries) {
		t.Errorf("Round trip mismatch:\n got %v\nwant %v", read.Entries, seq.Entries)
	}

	if read.Seed == nil || *read.Seed != 2024 {
		t.Errorf("Round trip seed = %v, want 2024", read.Seed)
	}
}

// TestSerializeDeterministic checks same inputs give byte-identical output for a fixed clock
func TestSerializeDeterministic(t *testing.T) {
	c := candidates("a.png", "b.jpg", "c.tga")

	first, err := Generate(c, 5, 15, 10, seedPtr(9))
	if err != nil {
		t.Fatal(err)
	}

	second, err := Generate(c, 5, 15, 10, seedPtr(9))
	if err != nil {
		t.Fatal(err)
	}

	if Serialize(first, fixedNow) != Serialize(second, fixedNow) {
		t.Error("Serialized output differs for identical inputs")
	}
}

func TestReadFileNonExistent(t *testing.T) {
	if _, _, err := ReadFile("/nonexistent/path/to/sequence.ifl"); err == nil {
		t.Error("Expected error for nonexistent file, got none")
	}
}
