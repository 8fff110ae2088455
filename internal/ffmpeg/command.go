package ffmpeg

import "strconv"

// Input is one input specification. Loop freezes a still image;
// StreamLoop loops a video stream until trimmed.
type Input struct {
	Path       string
	Loop       bool
	StreamLoop bool
	Framerate  int
	Lavfi      bool
	Duration   float64 // seconds; 0 = full input
}

// Command is a typed ffmpeg invocation. Args assembles the argument list
// in a fixed stage order so filter/codec ordering is enforced by
// construction rather than by call-site convention.
type Command struct {
	Inputs        []Input
	ConcatList    string // -f concat -safe 0 -i <list>
	VideoFilter   string // -vf program
	AudioFilter   string // -af program
	FilterComplex string
	Maps          []string
	CodecArgs     []string
	Shortest      bool
	NoAudio       bool
	Faststart     bool
	Output        string
}

// Args renders the command into an ffmpeg argument list. Global flags
// (-y, -loglevel, -threads) are owned by the Executor.
func (c *Command) Args() []string {
	args := make([]string, 0, 32)

	if c.ConcatList != "" {
		args = append(args, "-f", "concat", "-safe", "0", "-i", c.ConcatList)
	}

	for _, in := range c.Inputs {
		if in.Loop {
			args = append(args, "-loop", "1")
			if in.Framerate > 0 {
				args = append(args, "-framerate", strconv.Itoa(in.Framerate))
			}
		}
		if in.StreamLoop {
			args = append(args, "-stream_loop", "-1")
		}
		if in.Lavfi {
			args = append(args, "-f", "lavfi")
		}
		args = append(args, "-i", in.Path)
		if in.Duration > 0 {
			args = append(args, "-t", formatFloat(in.Duration))
		}
	}

	if c.FilterComplex != "" {
		args = append(args, "-filter_complex", c.FilterComplex)
	}
	if c.VideoFilter != "" {
		args = append(args, "-vf", c.VideoFilter)
	}
	if c.AudioFilter != "" {
		args = append(args, "-af", c.AudioFilter)
	}

	for _, m := range c.Maps {
		args = append(args, "-map", m)
	}

	args = append(args, c.CodecArgs...)

	if c.Faststart {
		args = append(args, "-movflags", "+faststart")
	}
	if c.Shortest {
		args = append(args, "-shortest")
	}
	if c.NoAudio {
		args = append(args, "-an")
	}

	args = append(args, c.Output)
	return args
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
