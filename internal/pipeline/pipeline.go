package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/effects"
	"github.com/keagan/montagecannon/internal/ffmpeg"
	"github.com/keagan/montagecannon/internal/media"
	"github.com/keagan/montagecannon/pkg/util"
)

// Options controls one pipeline run.
type Options struct {
	ProjectDir    string
	TempDir       string // session dirs are created under this root
	Jobs          int    // concurrent channel renders; <1 means 1
	TestMode      bool   // render only the first pair per channel
	KeepTemp      bool
	IncludeVideos bool
	Progress      ProgressFunc
}

// Pipeline drives the full montage run: scan, audio variants, per-channel
// clip rendering and assembly. Channels render concurrently; clips within
// a channel render sequentially because each clip feeds the next stage.
type Pipeline struct {
	logger   zerolog.Logger
	exec     *ffmpeg.Executor
	caps     ffmpeg.CapabilitySet
	opts     Options
	variants *VariantStore

	pairs []media.MediaPair
}

// New creates a pipeline rooted at the project folder. The audio_variants
// and renders folders are created up front.
func New(logger zerolog.Logger, exec *ffmpeg.Executor, caps ffmpeg.CapabilitySet, opts Options) (*Pipeline, error) {
	if opts.ProjectDir == "" {
		return nil, &ValidationError{Subject: "options", Reason: "project folder is required"}
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	if opts.TempDir == "" {
		opts.TempDir = filepath.Join(os.TempDir(), "montagecannon")
	}

	for _, dir := range []string{
		filepath.Join(opts.ProjectDir, "audio_variants"),
		filepath.Join(opts.ProjectDir, "renders"),
	} {
		if err := util.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	plLogger := logger.With().Str("component", "pipeline").Logger()
	return &Pipeline{
		logger: plLogger,
		exec:   exec,
		caps:   caps,
		opts:   opts,
		variants: NewVariantStore(logger, exec, caps,
			filepath.Join(opts.ProjectDir, "audio_variants")),
	}, nil
}

// Scan discovers numbered media/audio pairs in the project folder.
func (p *Pipeline) Scan() (media.ScanSummary, error) {
	pairs, summary, err := media.ScanPairs(p.opts.ProjectDir, p.opts.IncludeVideos, p.logger)
	if err != nil {
		return summary, err
	}
	p.pairs = pairs
	return summary, nil
}

// Run renders every channel. All channels share one scan and one variant
// preparation pass; renders then fan out across the worker pool. A failed
// channel does not stop the others; the first error is returned after all
// channels finish.
func (p *Pipeline) Run(ctx context.Context, channels []channel.Channel) ([]Result, error) {
	if len(channels) == 0 {
		return nil, &ValidationError{Subject: "channels", Reason: "no channels configured"}
	}

	if p.pairs == nil {
		if _, err := p.Scan(); err != nil {
			return nil, err
		}
	}
	if len(p.pairs) == 0 {
		return nil, &ValidationError{Subject: "project", Reason: "no media/audio pairs found"}
	}

	if err := p.variants.Prepare(ctx, p.pairs, channels); err != nil {
		return nil, err
	}

	results := make([]Result, len(channels))
	ok := make([]bool, len(channels))
	errs := make([]error, len(channels))

	// One failed channel must not cancel its siblings, so errors are
	// collected per slot instead of propagated through the group.
	var g errgroup.Group
	g.SetLimit(p.opts.Jobs)
	for i := range channels {
		i := i
		g.Go(func() error {
			res, err := p.renderChannel(ctx, &channels[i])
			if err != nil {
				p.logger.Error().Err(err).Str("channel", channels[i].Name).Msg("channel render failed")
				errs[i] = err
				return nil
			}
			results[i] = res
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	done := results[:0]
	var firstErr error
	for i := range results {
		if ok[i] {
			done = append(done, results[i])
		} else if firstErr == nil {
			firstErr = errs[i]
		}
	}
	return done, firstErr
}

func (p *Pipeline) renderChannel(ctx context.Context, ch *channel.Channel) (Result, error) {
	ch.Validate()
	logger := p.logger.With().Str("channel", ch.Name).Logger()
	logger.Info().Msg("rendering channel montage")

	pairs := p.pairs
	if p.opts.TestMode {
		pairs = pairs[:1]
	}

	sessionDir := filepath.Join(p.opts.TempDir, fmt.Sprintf("session_%s", uuid.NewString()))
	if err := util.EnsureDir(sessionDir); err != nil {
		return Result{}, fmt.Errorf("create session dir: %w", err)
	}
	if !p.opts.KeepTemp {
		defer os.RemoveAll(sessionDir)
	}

	tracker := NewTracker(len(pairs) + 2)
	tracker.OnProgress(p.opts.Progress)

	renderer := NewClipRenderer(logger, p.exec, p.caps)
	selector := effects.NewSelector(&ch.Effects, rand.New(rand.NewSource(time.Now().UnixNano())))

	var clips []VideoClip
	var totalDuration float64
	for i := range pairs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		pair := &pairs[i]
		audioPath := p.variants.Resolve(pair, &ch.Effects)
		duration, err := p.exec.Duration(ctx, audioPath)
		if err != nil {
			logger.Warn().Err(&ProbeError{Path: audioPath, Err: err}).
				Str("pair", pair.Number).Msg("skipping pair, audio probe failed")
			tracker.Increment(fmt.Sprintf("skipped pair %s", pair.Number))
			continue
		}

		assigned := selector.Pick(i, len(pairs))
		clipPath, err := renderer.Render(ctx, pair, duration, ch, assigned, i, len(pairs), sessionDir)
		if err != nil {
			// A bad pair loses its clip, not the whole channel.
			logger.Warn().Err(err).Str("pair", pair.Number).Msg("skipping pair, clip render failed")
			tracker.Increment(fmt.Sprintf("skipped pair %s", pair.Number))
			continue
		}

		clips = append(clips, VideoClip{
			VideoPath: clipPath,
			AudioPath: audioPath,
			Duration:  duration,
			IsFirst:   i == 0,
			IsLast:    i == len(pairs)-1,
			AppliedEffects: map[string]string{
				"ken_burns":       assigned.KenBurns,
				"transient_start": assigned.TransientStart,
				"transient_end":   assigned.TransientEnd,
			},
		})
		totalDuration += duration
		tracker.Increment(fmt.Sprintf("rendered clip %d/%d", i+1, len(pairs)))
	}

	if len(clips) == 0 {
		return Result{}, &RenderError{PairNumber: "all", Stage: "clips",
			Err: fmt.Errorf("no clip survived rendering")}
	}
	// Boundary flags may have shifted if pairs were skipped.
	clips[0].IsFirst = true
	clips[len(clips)-1].IsLast = true

	outputName := fmt.Sprintf("%s_%d.%s", media.SafeFileName(ch.Name), time.Now().Unix(), ch.Export.Container)
	outputPath := filepath.Join(p.opts.ProjectDir, "renders", outputName)

	tracker.Set(len(pairs)+1, "assembling montage")

	assembler := NewAssembler(logger, p.exec, p.caps, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err := assembler.Assemble(ctx, clips, outputPath, ch, sessionDir); err != nil {
		return Result{}, err
	}

	tracker.Finish("montage complete")
	logger.Info().Str("output", outputPath).Float64("duration", totalDuration).Msg("montage created")

	return Result{
		ChannelID:   ch.ID,
		ChannelName: ch.Name,
		OutputPath:  outputPath,
		ClipCount:   len(clips),
		Duration:    totalDuration,
	}, nil
}

// CleanupOldRenders deletes renders older than the given number of days
// and returns how many were removed.
func (p *Pipeline) CleanupOldRenders(days int) int {
	dir := filepath.Join(p.opts.ProjectDir, "renders")
	return util.CleanupOldFiles(dir, time.Duration(days)*24*time.Hour, "*.mp4")
}
