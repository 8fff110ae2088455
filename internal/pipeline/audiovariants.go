package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/effects"
	"github.com/keagan/montagecannon/internal/ffmpeg"
	"github.com/keagan/montagecannon/internal/media"
	"github.com/keagan/montagecannon/pkg/util"
)

// audioSetting is one distinct (pitch, effect) pair across all channels
// in a run. Variants are shared between channels with identical settings.
type audioSetting struct {
	Pitch  string
	Effect string
}

// VariantStore renders pitched/effected audio variants into a persistent
// folder, skipping anything already on disk so repeated runs reuse them.
type VariantStore struct {
	logger zerolog.Logger
	exec   *ffmpeg.Executor
	caps   ffmpeg.CapabilitySet
	dir    string
}

// NewVariantStore creates a store rooted at dir.
func NewVariantStore(logger zerolog.Logger, exec *ffmpeg.Executor, caps ffmpeg.CapabilitySet, dir string) *VariantStore {
	return &VariantStore{
		logger: logger.With().Str("component", "audio").Logger(),
		exec:   exec,
		caps:   caps,
		dir:    dir,
	}
}

// VariantName builds the deterministic variant file name for one pair
// and audio setting. "+3.5" becomes "plus3_5" so the name stays portable.
func VariantName(pairNumber, pitch, effect string) string {
	safePitch := strings.ReplaceAll(strings.ReplaceAll(pitch, "+", "plus"), ".", "_")
	name := fmt.Sprintf("%s_pitch_%s", pairNumber, safePitch)
	if effect != "none" && effect != "" {
		name += "_" + effect
	}
	return name + ".mp3"
}

// Prepare renders every missing variant for the given pairs across all
// channels' distinct audio settings. Existing files are never re-encoded.
func (s *VariantStore) Prepare(ctx context.Context, pairs []media.MediaPair, channels []channel.Channel) error {
	if err := util.EnsureDir(s.dir); err != nil {
		return fmt.Errorf("create variant folder: %w", err)
	}

	seen := make(map[audioSetting]bool)
	var settings []audioSetting
	for i := range channels {
		st := audioSetting{Pitch: channels[i].Effects.AudioPitch, Effect: channels[i].Effects.AudioEffect}
		if !seen[st] {
			seen[st] = true
			settings = append(settings, st)
		}
	}

	created := 0
	for i := range pairs {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, st := range settings {
			if st.Pitch == "0" && st.Effect == "none" {
				continue
			}
			variantPath := filepath.Join(s.dir, VariantName(pairs[i].Number, st.Pitch, st.Effect))
			if util.FileExists(variantPath) {
				continue
			}
			if err := s.render(ctx, pairs[i].AudioFile, variantPath, st); err != nil {
				return err
			}
			created++
		}
	}

	s.logger.Info().Int("created", created).Int("pairs", len(pairs)).Msg("audio variants ready")
	return nil
}

// Resolve returns the audio file to use for a pair under the channel's
// settings: the variant when one applies and exists, otherwise the
// original recording.
func (s *VariantStore) Resolve(pair *media.MediaPair, cfg *channel.EffectConfig) string {
	if cfg.AudioPitch == "0" && cfg.AudioEffect == "none" {
		return pair.AudioFile
	}
	variantPath := filepath.Join(s.dir, VariantName(pair.Number, cfg.AudioPitch, cfg.AudioEffect))
	if util.FileExists(variantPath) {
		return variantPath
	}
	return pair.AudioFile
}

func (s *VariantStore) render(ctx context.Context, inputPath, outputPath string, st audioSetting) error {
	cfg := channel.DefaultEffectConfig()
	cfg.AudioPitch = st.Pitch
	cfg.AudioEffect = st.Effect
	cfg.AudioNormalize = true

	cmd := &ffmpeg.Command{
		Inputs:      []ffmpeg.Input{{Path: inputPath}},
		AudioFilter: effects.AudioProgram(&cfg, s.caps),
		CodecArgs:   []string{"-b:a", "192k"},
		Output:      outputPath,
	}

	s.logger.Debug().Str("variant", filepath.Base(outputPath)).Msg("rendering audio variant")

	if err := s.exec.Run(ctx, cmd); err != nil {
		return &RenderError{PairNumber: filepath.Base(inputPath), Stage: "audio", Err: err}
	}
	return nil
}
