package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"
)

// Executor handles all ffmpeg/ffprobe invocations. One subprocess runs at
// a time per call; long encodes block until the tool exits.
type Executor struct {
	logger      zerolog.Logger
	ffmpegPath  string
	ffprobePath string
	threads     int
}

// ExecError carries the transcoder's diagnostic stderr alongside the exit
// failure. It is the payload every stage error wraps.
type ExecError struct {
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("ffmpeg execution failed: %v", e.Err)
	}
	return fmt.Sprintf("ffmpeg execution failed: %v: %s", e.Err, lastLines(e.Stderr, 3))
}

func (e *ExecError) Unwrap() error { return e.Err }

// New creates an executor. Bare command names are resolved via PATH;
// explicit paths are taken as configured and verified at first use.
func New(logger zerolog.Logger, ffmpegPath, ffprobePath string, threads int) (*Executor, error) {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}

	if resolved, err := exec.LookPath(ffmpegPath); err == nil {
		ffmpegPath = resolved
	} else if ffmpegPath == "ffmpeg" {
		return nil, fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	if resolved, err := exec.LookPath(ffprobePath); err == nil {
		ffprobePath = resolved
	} else if ffprobePath == "ffprobe" {
		return nil, fmt.Errorf("ffprobe not found in PATH: %w", err)
	}

	return &Executor{
		logger:      logger.With().Str("component", "ffmpeg").Logger(),
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		threads:     threads,
	}, nil
}

// BinaryPath returns the resolved ffmpeg binary path. Capability lookups
// are cached per binary path.
func (e *Executor) BinaryPath() string { return e.ffmpegPath }

// Run executes ffmpeg with the given command. Exit code 0 is the only
// success signal; on failure stderr is captured as the diagnostic payload.
func (e *Executor) Run(ctx context.Context, cmd *Command) error {
	args := e.baseArgs()
	args = append(args, cmd.Args()...)

	e.logger.Debug().Strs("args", args).Msg("executing ffmpeg")

	proc := exec.CommandContext(ctx, e.ffmpegPath, args...)
	var stderrBuf bytes.Buffer
	proc.Stderr = &stderrBuf

	if err := proc.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &ExecError{Stderr: stderrBuf.String(), Err: err}
	}

	e.logger.Debug().Msg("ffmpeg execution completed")
	return nil
}

// rawOutput runs an ffmpeg informational query (-filters, -encoders,
// -version) and returns combined output.
func (e *Executor) rawOutput(ctx context.Context, args ...string) (string, error) {
	proc := exec.CommandContext(ctx, e.ffmpegPath, args...)
	out, err := proc.CombinedOutput()
	return string(out), err
}

func (e *Executor) baseArgs() []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	if e.threads > 0 {
		args = append(args, "-threads", strconv.Itoa(e.threads))
	}
	return args
}

func lastLines(s string, n int) string {
	lines := bytes.Split(bytes.TrimSpace([]byte(s)), []byte("\n"))
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return string(bytes.Join(lines, []byte("; ")))
}
