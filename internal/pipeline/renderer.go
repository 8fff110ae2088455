package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/effects"
	"github.com/keagan/montagecannon/internal/ffmpeg"
	"github.com/keagan/montagecannon/internal/media"
	"github.com/keagan/montagecannon/pkg/util"
)

// ClipRenderer turns one media pair into a silent intermediate clip.
// Still images loop for the audio's duration; videos stream-loop and are
// trimmed to it. Audio is attached later at assembly.
type ClipRenderer struct {
	logger zerolog.Logger
	exec   *ffmpeg.Executor
	caps   ffmpeg.CapabilitySet
}

// NewClipRenderer creates a renderer bound to one executor.
func NewClipRenderer(logger zerolog.Logger, exec *ffmpeg.Executor, caps ffmpeg.CapabilitySet) *ClipRenderer {
	return &ClipRenderer{
		logger: logger.With().Str("component", "renderer").Logger(),
		exec:   exec,
		caps:   caps,
	}
}

// Render encodes the clip for pair into tempDir and returns its path.
// Success requires both exit code 0 and an output file on disk.
func (r *ClipRenderer) Render(ctx context.Context, pair *media.MediaPair, duration float64,
	ch *channel.Channel, assigned effects.Assignment, clipIndex, totalClips int, tempDir string) (string, error) {

	if !util.FileExists(pair.MediaFile) {
		return "", &RenderError{PairNumber: pair.Number, Stage: "input",
			Err: fmt.Errorf("media file not found: %s", pair.MediaFile)}
	}

	w, h := ch.Export.ResolutionSize()
	outputFPS := effects.OutputFPS(&ch.Effects, ch.Export.FPS)
	isImage := pair.Kind == media.KindImage

	spec := effects.ClipSpec{
		Duration: duration,
		Index:    clipIndex,
		Total:    totalClips,
		IsImage:  isImage,
		Effects:  assigned,
	}
	program := effects.ClipProgram(spec, &ch.Effects, w, h, outputFPS, r.caps)

	outputPath := filepath.Join(tempDir, fmt.Sprintf("clip_%s_%d.mp4", pair.Number, clipIndex))

	input := ffmpeg.Input{Path: pair.MediaFile, Duration: duration}
	if isImage {
		input.Loop = true
		input.Framerate = outputFPS
	} else {
		input.StreamLoop = true
	}

	cmd := &ffmpeg.Command{
		Inputs:      []ffmpeg.Input{input},
		VideoFilter: program,
		CodecArgs:   effects.CodecArgs(&ch.Export, r.caps, false),
		Faststart:   true,
		NoAudio:     true,
		Output:      outputPath,
	}

	r.logger.Debug().
		Str("pair", pair.Number).
		Int("clip", clipIndex).
		Str("kenburns", assigned.KenBurns).
		Msg("rendering clip")

	if err := r.exec.Run(ctx, cmd); err != nil {
		return "", &RenderError{PairNumber: pair.Number, Stage: "encode", Err: err}
	}
	if !util.FileExists(outputPath) {
		return "", &RenderError{PairNumber: pair.Number, Stage: "encode",
			Err: fmt.Errorf("encoder exited 0 but produced no output")}
	}
	return outputPath, nil
}
