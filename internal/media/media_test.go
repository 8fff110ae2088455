package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestFileNumber(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"0001_sunset.jpg", "0001"},
		{"0042.mp3", "0042"},
		{"123.jpg", ""},
		{"abc1234.jpg", ""},
		{"12a4_x.jpg", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := FileNumber(c.name); got != c.want {
			t.Errorf("FileNumber(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"x.JPG":  KindImage,
		"x.webp": KindImage,
		"x.mp4":  KindVideo,
		"x.MOV":  KindVideo,
		"x.mp3":  KindAudio,
		"x.flac": KindAudio,
		"x.txt":  KindOther,
		"x":      KindOther,
	}
	for name, want := range cases {
		if got := KindOf(name); got != want {
			t.Errorf("KindOf(%q) = %q, want %q", name, got, want)
		}
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanPairs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "0001_a.jpg")
	touch(t, dir, "0001_a.mp3")
	touch(t, dir, "0002_b.mp4")
	touch(t, dir, "0002_b.wav")
	touch(t, dir, "0003_orphan.jpg") // no audio, must be skipped
	touch(t, dir, "notes.txt")
	touch(t, dir, "cover.jpg") // unnumbered

	pairs, summary, err := ScanPairs(dir, true, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	if summary.Images != 3 || summary.Videos != 1 || summary.Audio != 2 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Pairs != 2 || len(pairs) != 2 {
		t.Fatalf("pairs = %d, want 2", len(pairs))
	}

	if pairs[0].Number != "0001" || pairs[0].Kind != KindImage {
		t.Errorf("pair 0 = %+v", pairs[0])
	}
	if pairs[1].Number != "0002" || pairs[1].Kind != KindVideo {
		t.Errorf("pair 1 = %+v", pairs[1])
	}
}

func TestScanPairsExcludesVideos(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "0001_a.mp4")
	touch(t, dir, "0001_a.mp3")

	pairs, summary, err := ScanPairs(dir, false, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 0 || summary.Videos != 0 {
		t.Errorf("videos should be excluded: pairs=%d summary=%+v", len(pairs), summary)
	}
}

func TestSafeFileName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"My Channel!", "My_Channel_"},
		{"Канал Природы", "Kanal_Prirody"},
		{"already-safe_name.v2", "already-safe_name.v2"},
		{"a   b///c", "a_b_c"},
	}
	for _, c := range cases {
		if got := SafeFileName(c.in); got != c.want {
			t.Errorf("SafeFileName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
