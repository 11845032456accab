// ABOUTME: Tests for candidate image enumeration
// ABOUTME: Verifies extension filtering, case sensitivity, and that subdirectories are skipped

package sequence

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// touch creates empty files in dir
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
}

func fileNames(entries []ImageEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.FileName
	}

	slices.Sort(names)

	return names
}

// TestEnumerate verifies extension filtering
func TestEnumerate(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "images and notes",
			files: []string{"a.png", "b.jpg", "notes.txt"},
			want:  []string{"a.png", "b.jpg"},
		},
		{
			name:  "all recognized extensions",
			files: []string{"a.png", "b.jpg", "c.tga", "d.tiff", "e.jpeg"},
			want:  []string{"a.png", "b.jpg", "c.tga", "d.tiff", "e.jpeg"},
		},
		{
			name:  "extension match is case sensitive",
			files: []string{"A.PNG", "b.Jpg", "c.png"},
			want:  []string{"c.png"},
		},
		{
			name:  "unrecognized image formats",
			files: []string{"a.gif", "b.webp", "c.bmp"},
			want:  []string{},
		},
		{
			name:  "empty directory",
			files: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)

			entries, err := Enumerate(dir)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			got := fileNames(entries)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Enumerate() = %v, want %v", got, tt.want)
			}

			for _, e := range entries {
				if e.Duration != 0 {
					t.Errorf("Entry %s has duration %d, want 0", e.FileName, e.Duration)
				}
			}
		})
	}
}

// TestEnumerateSkipsDirectories verifies the listing is not recursive
func TestEnumerateSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "top.png")

	nested := filepath.Join(dir, "nested.png")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	touch(t, nested, "inner.png")

	entries, err := Enumerate(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := fileNames(entries); !slices.Equal(got, []string{"top.png"}) {
		t.Errorf("Enumerate() = %v, want [top.png]", got)
	}
}

// TestEnumerateMissingDirectory verifies read errors propagate
func TestEnumerateMissingDirectory(t *testing.T) {
	entries, err := Enumerate("/nonexistent/path/to/images")
	if err == nil {
		t.Error("Expected error for nonexistent directory, got none")
	}

	if len(entries) != 0 {
		t.Errorf("Expected 0 entries for failed read, got %d", len(entries))
	}
}

func TestImageEntryString(t *testing.T) {
	e := ImageEntry{FileName: "frame 01.png", Duration: 12}
	if got := e.String(); got != "frame 01.png 12" {
		t.Errorf("String() = %q, want %q", got, "frame 01.png 12")
	}
}
