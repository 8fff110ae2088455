package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00.000"},
		{3.5, "00:00:03.500"},
		{61.25, "00:01:01.250"},
		{3661.001, "01:01:01.001"},
	}
	for _, c := range cases {
		if got := FormatSeconds(c.in); got != c.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("01:01:01.500")
	if err != nil {
		t.Fatal(err)
	}
	if got != 3661.5 {
		t.Errorf("got %v, want 3661.5", got)
	}

	if _, err := ParseTimestamp("not-a-time"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}

func TestParseFrameRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 30000.0 / 1001.0},
		{"25", 25},
		{"0/0", 0},
		{"garbage", 0},
	}
	for _, c := range cases {
		if got := ParseFrameRate(c.in); got != c.want {
			t.Errorf("ParseFrameRate(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFileHelpers(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := EnsureDir(nested); err != nil {
		t.Fatal(err)
	}
	if !FileExists(nested) {
		t.Error("EnsureDir did not create the directory")
	}

	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	full := filepath.Join(dir, "full")
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if FileNonEmpty(empty) {
		t.Error("empty file reported non-empty")
	}
	if !FileNonEmpty(full) {
		t.Error("non-empty file reported empty")
	}

	CleanupFiles(empty, full, filepath.Join(dir, "missing"))
	if FileExists(empty) || FileExists(full) {
		t.Error("CleanupFiles left files behind")
	}
}

func TestCleanupOldFiles(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, "old.mp4")
	if err := os.WriteFile(old, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	fresh := filepath.Join(dir, "fresh.mp4")
	if err := os.WriteFile(fresh, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	other := filepath.Join(dir, "old.txt")
	if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(other, past, past); err != nil {
		t.Fatal(err)
	}

	removed := CleanupOldFiles(dir, 24*time.Hour, "*.mp4")
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if FileExists(old) {
		t.Error("old render survived cleanup")
	}
	if !FileExists(fresh) || !FileExists(other) {
		t.Error("cleanup removed files it should not touch")
	}
}
