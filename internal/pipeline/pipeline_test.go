package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/ffmpeg"
	"github.com/keagan/montagecannon/internal/media"
)

func testExecutor(t *testing.T) *ffmpeg.Executor {
	t.Helper()
	// Points at binaries that don't exist; any invocation fails loudly, so
	// tests below prove code paths that must not invoke the tool at all.
	exec, err := ffmpeg.New(zerolog.Nop(), "/nonexistent/ffmpeg", "/nonexistent/ffprobe", 0)
	if err != nil {
		t.Fatalf("executor: %v", err)
	}
	return exec
}

func TestVariantName(t *testing.T) {
	cases := []struct {
		number, pitch, effect string
		want                  string
	}{
		{"0001", "0", "none", "0001_pitch_0.mp3"},
		{"0001", "+3.5", "none", "0001_pitch_plus3_5.mp3"},
		{"0002", "-2", "echo", "0002_pitch_-2_echo.mp3"},
		{"0003", "+12", "robot", "0003_pitch_plus12_robot.mp3"},
	}
	for _, c := range cases {
		if got := VariantName(c.number, c.pitch, c.effect); got != c.want {
			t.Errorf("VariantName(%q,%q,%q) = %q, want %q", c.number, c.pitch, c.effect, got, c.want)
		}
	}
}

func TestPrepareSkipsExistingVariants(t *testing.T) {
	dir := t.TempDir()
	audioFile := filepath.Join(dir, "0001_take.mp3")
	if err := os.WriteFile(audioFile, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	ch := channel.Channel{ID: "c1", Name: "test"}
	ch.Effects = channel.DefaultEffectConfig()
	ch.Effects.AudioPitch = "+2"
	ch.Effects.AudioEffect = "echo"

	variantDir := filepath.Join(dir, "variants")
	if err := os.MkdirAll(variantDir, 0o755); err != nil {
		t.Fatal(err)
	}
	// Pre-create the variant; Prepare must not try to re-encode it, which
	// would fail against the nonexistent binary.
	existing := filepath.Join(variantDir, VariantName("0001", "+2", "echo"))
	if err := os.WriteFile(existing, []byte("variant"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewVariantStore(zerolog.Nop(), testExecutor(t), ffmpeg.NoCapabilities(), variantDir)
	pairs := []media.MediaPair{{Number: "0001", Kind: media.KindImage, MediaFile: "x.jpg", AudioFile: audioFile}}

	if err := store.Prepare(context.Background(), pairs, []channel.Channel{ch}); err != nil {
		t.Fatalf("Prepare re-encoded an existing variant: %v", err)
	}
}

func TestPrepareSkipsNeutralSettings(t *testing.T) {
	dir := t.TempDir()
	ch := channel.Channel{ID: "c1", Name: "test"}
	ch.Effects = channel.DefaultEffectConfig() // pitch "0", effect "none"

	store := NewVariantStore(zerolog.Nop(), testExecutor(t), ffmpeg.NoCapabilities(), dir)
	pairs := []media.MediaPair{{Number: "0001", Kind: media.KindImage, MediaFile: "x.jpg", AudioFile: "a.mp3"}}

	if err := store.Prepare(context.Background(), pairs, []channel.Channel{ch}); err != nil {
		t.Fatalf("neutral settings must produce no variants: %v", err)
	}
}

func TestResolvePrefersVariant(t *testing.T) {
	dir := t.TempDir()
	store := NewVariantStore(zerolog.Nop(), testExecutor(t), ffmpeg.NoCapabilities(), dir)

	pair := media.MediaPair{Number: "0001", AudioFile: "original.mp3"}
	cfg := channel.DefaultEffectConfig()

	if got := store.Resolve(&pair, &cfg); got != "original.mp3" {
		t.Errorf("neutral settings should use original, got %q", got)
	}

	cfg.AudioPitch = "+2"
	if got := store.Resolve(&pair, &cfg); got != "original.mp3" {
		t.Errorf("missing variant should fall back to original, got %q", got)
	}

	variant := filepath.Join(dir, VariantName("0001", "+2", "none"))
	if err := os.WriteFile(variant, []byte("v"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := store.Resolve(&pair, &cfg); got != variant {
		t.Errorf("existing variant should win, got %q", got)
	}
}

func TestWriteConcatListOrderAndFormat(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"clip_0001.mp4", "clip_0002.mp4", "clip_0003.mp4"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		files = append(files, p)
	}
	// Missing entries are skipped, not errors.
	files = append(files[:1], append([]string{filepath.Join(dir, "missing.mp4")}, files[1:]...)...)

	listPath, err := writeConcatList(filepath.Join(dir, "list.txt"), files)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(listPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	for i, want := range []string{"clip_0001.mp4", "clip_0002.mp4", "clip_0003.mp4"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want file %s", i, lines[i], want)
		}
		if !strings.HasPrefix(lines[i], "file '") || !strings.HasSuffix(lines[i], "'") {
			t.Errorf("line %d not in concat format: %q", i, lines[i])
		}
		if strings.Contains(lines[i], `\`) {
			t.Errorf("line %d should use posix separators: %q", i, lines[i])
		}
	}
}

func TestWriteConcatListAllMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := writeConcatList(filepath.Join(dir, "list.txt"), []string{filepath.Join(dir, "nope.mp4")})
	if err == nil {
		t.Fatal("expected error for empty list")
	}
}

func TestFinalizeFilterLocksExportFPS(t *testing.T) {
	cfg := channel.DefaultEffectConfig()

	// Ken Burns intermediates run at 60 fps; the finalize pass must bring
	// the montage back to the export rate.
	got := finalizeFilter([]float64{2, 2}, &cfg, 30)
	if !strings.HasSuffix(got, "fps=30") {
		t.Errorf("finalize filter missing export fps lock: %q", got)
	}
	if !strings.Contains(got, "fade=t=out") {
		t.Errorf("finalize filter dropped boundary fades: %q", got)
	}

	cfg.Transitions = nil
	if got := finalizeFilter([]float64{2, 2}, &cfg, 24); got != "fps=24" {
		t.Errorf("finalize filter without transitions = %q, want fps=24", got)
	}
}

func TestOverlayMissingFileKeepsOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "final.mp4")
	if err := os.WriteFile(output, []byte("rendered montage"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := channel.DefaultOverlayConfig()
	cfg.Enabled = true
	cfg.Folder = dir
	cfg.Files = []string{"missing_overlay.mp4"}

	a := NewAssembler(zerolog.Nop(), testExecutor(t), ffmpeg.NoCapabilities(), nil)
	if err := a.applyOverlay(context.Background(), output, &cfg); err != nil {
		t.Fatalf("missing overlay asset must be skipped, got %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil || string(data) != "rendered montage" {
		t.Errorf("output was modified or deleted: %v %q", err, data)
	}
}

func TestTrackerBounds(t *testing.T) {
	tr := NewTracker(4)

	var last float64
	var stages []string
	tr.OnProgress(func(p float64, stage string) {
		if p < last {
			t.Errorf("progress went backwards: %f -> %f", last, p)
		}
		if p < 0 || p > 100 {
			t.Errorf("progress out of range: %f", p)
		}
		last = p
		stages = append(stages, stage)
	})

	tr.Increment("one")
	tr.Increment("two")
	tr.Set(3, "three")
	tr.Finish("done")

	if last != 100 {
		t.Errorf("final progress = %f, want 100", last)
	}
	if len(stages) != 4 || stages[3] != "done" {
		t.Errorf("stages = %v", stages)
	}
}

func TestRunRejectsEmptyInput(t *testing.T) {
	dir := t.TempDir()
	p, err := New(zerolog.Nop(), testExecutor(t), ffmpeg.NoCapabilities(), Options{ProjectDir: dir})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := p.Run(context.Background(), nil); err == nil {
		t.Error("expected error for no channels")
	}

	ch := channel.Channel{ID: "c1", Name: "test"}
	ch.Effects = channel.DefaultEffectConfig()
	ch.Export = channel.DefaultExportConfig()
	if _, err := p.Run(context.Background(), []channel.Channel{ch}); err == nil {
		t.Error("expected error for empty project folder")
	}
}
