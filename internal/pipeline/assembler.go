package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/effects"
	"github.com/keagan/montagecannon/internal/ffmpeg"
	"github.com/keagan/montagecannon/pkg/util"
)

// Assembler joins rendered clips into the final montage: concat, audio
// merge, boundary transitions, trailing black frame and the overlay pass.
type Assembler struct {
	logger zerolog.Logger
	exec   *ffmpeg.Executor
	caps   ffmpeg.CapabilitySet
	rng    *rand.Rand
}

// NewAssembler creates an assembler bound to one executor.
func NewAssembler(logger zerolog.Logger, exec *ffmpeg.Executor, caps ffmpeg.CapabilitySet, rng *rand.Rand) *Assembler {
	return &Assembler{
		logger: logger.With().Str("component", "assembler").Logger(),
		exec:   exec,
		caps:   caps,
		rng:    rng,
	}
}

// Assemble combines clips into outputPath. clips must be non-empty and
// in timeline order.
func (a *Assembler) Assemble(ctx context.Context, clips []VideoClip, outputPath string,
	ch *channel.Channel, tempDir string) error {

	if len(clips) == 0 {
		return &MergeError{Stage: "concat", Err: fmt.Errorf("no clips to assemble")}
	}

	// Work against a staging name; the final path only ever holds a
	// complete montage.
	staging := stagingPath(outputPath)

	if len(clips) == 1 {
		if err := a.muxSingle(ctx, &clips[0], staging, ch); err != nil {
			return err
		}
	} else {
		if err := a.assembleMany(ctx, clips, staging, ch, tempDir); err != nil {
			return err
		}
	}

	if ch.Effects.AddBlackFrame && ch.Effects.FadeOutToBlack {
		if err := a.appendBlackFrame(ctx, staging, &ch.Export); err != nil {
			// Padding is cosmetic; the montage itself is already complete.
			a.logger.Warn().Err(err).Msg("black frame pad failed, keeping output as is")
		}
	}

	if ch.Overlays.Enabled && len(ch.Overlays.Files) > 0 {
		if err := a.applyOverlay(ctx, staging, &ch.Overlays); err != nil {
			a.logger.Warn().Err(err).Msg("overlay pass failed, keeping output without overlay")
		}
	}

	if err := os.Rename(staging, outputPath); err != nil {
		return &MergeError{Stage: "finalize", Err: err}
	}
	return nil
}

// stagingPath keeps the container extension so the muxer is picked from
// the name.
func stagingPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + ".part" + ext
}

// muxSingle attaches the clip's audio without re-encoding video.
func (a *Assembler) muxSingle(ctx context.Context, clip *VideoClip, outputPath string, ch *channel.Channel) error {
	cmd := &ffmpeg.Command{
		Inputs: []ffmpeg.Input{
			{Path: clip.VideoPath},
			{Path: clip.AudioPath},
		},
		CodecArgs: []string{
			"-c:v", "copy",
			"-c:a", ch.Export.AudioCodec,
			"-b:a", fmt.Sprintf("%dk", ch.Export.AudioBitrate),
		},
		Shortest: true,
		Output:   outputPath,
	}
	if err := a.exec.Run(ctx, cmd); err != nil {
		return &MergeError{Stage: "mux", Err: err}
	}
	return nil
}

func (a *Assembler) assembleMany(ctx context.Context, clips []VideoClip, outputPath string,
	ch *channel.Channel, tempDir string) error {

	videoFiles := make([]string, len(clips))
	audioFiles := make([]string, len(clips))
	durations := make([]float64, len(clips))
	for i := range clips {
		videoFiles[i] = clips[i].VideoPath
		audioFiles[i] = clips[i].AudioPath
		durations[i] = clips[i].Duration
	}

	videoList, err := writeConcatList(filepath.Join(tempDir, "concat_list.txt"), videoFiles)
	if err != nil {
		return &MergeError{Stage: "concat", Err: err}
	}
	audioList, err := writeConcatList(filepath.Join(tempDir, "audio_list.txt"), audioFiles)
	if err != nil {
		return &MergeError{Stage: "concat", Err: err}
	}

	combinedVideo := filepath.Join(tempDir, "combined_video.mp4")
	if err := a.exec.Run(ctx, &ffmpeg.Command{
		ConcatList: videoList,
		CodecArgs:  []string{"-c", "copy"},
		Output:     combinedVideo,
	}); err != nil {
		return &MergeError{Stage: "video concat", Err: err}
	}

	combinedAudio, err := a.concatAudio(ctx, audioList, audioFiles, tempDir)
	if err != nil {
		return err
	}

	cmd := &ffmpeg.Command{
		Inputs: []ffmpeg.Input{
			{Path: combinedVideo},
			{Path: combinedAudio},
		},
		VideoFilter: finalizeFilter(durations, &ch.Effects, ch.Export.FPS),
		CodecArgs:   effects.CodecArgs(&ch.Export, a.caps, true),
		Faststart:   true,
		Shortest:    true,
		Output:      outputPath,
	}
	if err := a.exec.Run(ctx, cmd); err != nil {
		return &MergeError{Stage: "finalize", Err: err}
	}
	return nil
}

// finalizeFilter builds the -vf program for the single finalize
// re-encode: boundary transition fades when configured, then the export
// frame rate. Ken Burns intermediates run at 60 fps, so the fps lock is
// always present.
func finalizeFilter(durations []float64, cfg *channel.EffectConfig, exportFPS int) string {
	var parts []string
	if len(cfg.Transitions) > 0 && cfg.TransitionDuration > 0 {
		if fades := effects.BoundaryFadeProgram(durations, cfg.TransitionDuration); fades != "" {
			parts = append(parts, fades)
		}
	}
	parts = append(parts, fmt.Sprintf("fps=%d", exportFPS))
	return strings.Join(parts, ",")
}

// concatAudio merges the audio tracks. Stream-copy concat fails on
// mismatched codecs/parameters, so a failed copy falls back to a
// filter-graph concat that decodes all inputs.
func (a *Assembler) concatAudio(ctx context.Context, audioList string, audioFiles []string, tempDir string) (string, error) {
	combined := filepath.Join(tempDir, "combined_audio.mp3")
	err := a.exec.Run(ctx, &ffmpeg.Command{
		ConcatList: audioList,
		CodecArgs:  []string{"-c", "copy"},
		Output:     combined,
	})
	if err == nil {
		return combined, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	a.logger.Warn().Err(err).Msg("audio stream copy failed, re-encoding via filter graph")

	inputs := make([]ffmpeg.Input, len(audioFiles))
	var labels strings.Builder
	for i, f := range audioFiles {
		inputs[i] = ffmpeg.Input{Path: f}
		fmt.Fprintf(&labels, "[%d:a]", i)
	}
	graph := fmt.Sprintf("%sconcat=n=%d:v=0:a=1[out]", labels.String(), len(audioFiles))

	alt := filepath.Join(tempDir, "combined_audio_alt.mp3")
	if err := a.exec.Run(ctx, &ffmpeg.Command{
		Inputs:        inputs,
		FilterComplex: graph,
		Maps:          []string{"[out]"},
		Output:        alt,
	}); err != nil {
		return "", &MergeError{Stage: "audio concat", Err: err}
	}
	return alt, nil
}

// appendBlackFrame pads one second of black after the fade-out so
// players don't cut straight to the end screen.
func (a *Assembler) appendBlackFrame(ctx context.Context, videoPath string, export *channel.ExportConfig) error {
	w, h := export.ResolutionSize()
	padded := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".black.mp4"

	cmd := &ffmpeg.Command{
		Inputs: []ffmpeg.Input{
			{Path: videoPath},
			{Path: fmt.Sprintf("color=black:s=%dx%d:d=1", w, h), Lavfi: true},
		},
		FilterComplex: "[0:v][1:v]concat=n=2:v=1[v]",
		Maps:          []string{"[v]", "0:a"},
		CodecArgs:     []string{"-c:v", "libx264", "-c:a", "copy"},
		Output:        padded,
	}
	if err := a.exec.Run(ctx, cmd); err != nil {
		return err
	}
	return replaceFile(videoPath, padded)
}

// applyOverlay composites one overlay source over the finished montage.
func (a *Assembler) applyOverlay(ctx context.Context, videoPath string, cfg *channel.OverlayConfig) error {
	overlayFile := cfg.Files[0]
	if cfg.Randomize && len(cfg.Files) > 1 {
		overlayFile = cfg.Files[a.rng.Intn(len(cfg.Files))]
	}
	overlayPath := filepath.Join(cfg.Folder, overlayFile)
	if !util.FileExists(overlayPath) {
		a.logger.Warn().Str("overlay", overlayPath).Msg("overlay file not found, skipping")
		return nil
	}

	chain := effects.OverlayChain(cfg, a.caps)
	if chain == "" {
		return nil
	}

	composited := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".overlay.mp4"
	cmd := &ffmpeg.Command{
		Inputs: []ffmpeg.Input{
			{Path: videoPath},
			{Path: overlayPath},
		},
		FilterComplex: fmt.Sprintf("[1:v]%s", chain),
		Maps:          []string{"0:a"},
		CodecArgs:     []string{"-c:a", "copy"},
		Output:        composited,
	}
	if err := a.exec.Run(ctx, cmd); err != nil {
		return &OverlayError{OverlayFile: overlayFile, Err: err}
	}
	return replaceFile(videoPath, composited)
}

// writeConcatList writes an ffmpeg concat demuxer list. Paths are
// resolved to absolute posix form; missing files are skipped with their
// order otherwise preserved.
func writeConcatList(listPath string, files []string) (string, error) {
	var b strings.Builder
	for _, f := range files {
		if !util.FileExists(f) {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = f
		}
		fmt.Fprintf(&b, "file '%s'\n", filepath.ToSlash(abs))
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no existing files for concat list %s", listPath)
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return listPath, nil
}

func replaceFile(original, replacement string) error {
	if err := os.Remove(original); err != nil {
		return err
	}
	return os.Rename(replacement, original)
}
