package effects

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/ffmpeg"
)

// CodecArgs builds the encoder argument list for one export profile.
// GPU encoders are negotiated against the capability set: "auto" takes
// the first available vendor encoder, a forced vendor is used only when
// its encoder is actually present, and anything unavailable falls back
// to libx264.
func CodecArgs(export *channel.ExportConfig, caps ffmpeg.CapabilitySet, includeAudio bool) []string {
	var args []string

	encoder := pickEncoder(export, caps)
	switch encoder {
	case "h264_nvenc":
		args = append(args, "-c:v", "h264_nvenc",
			"-preset", "p4", "-tune", "hq",
			"-rc", "vbr", "-cq", strconv.Itoa(export.Quality.CRF))
	case "h264_amf":
		args = append(args, "-c:v", "h264_amf",
			"-quality", "balanced",
			"-rc", "cqp", "-qp_i", strconv.Itoa(export.Quality.CRF))
	case "h264_qsv":
		args = append(args, "-c:v", "h264_qsv",
			"-preset", "medium",
			"-global_quality", strconv.Itoa(export.Quality.CRF))
	default:
		args = append(args, "-c:v", "libx264",
			"-preset", export.Quality.Preset,
			"-crf", strconv.Itoa(export.Quality.CRF))
	}

	args = append(args,
		"-b:v", fmt.Sprintf("%dM", export.Bitrate),
		"-maxrate", fmt.Sprintf("%dM", export.Bitrate+2),
		"-bufsize", fmt.Sprintf("%dM", export.Bitrate*2),
	)

	// nvenc rejects the h264 profile/level pair in this form.
	if export.Codec == "h264" && !strings.Contains(encoder, "nvenc") {
		args = append(args,
			"-profile:v", export.Quality.Profile,
			"-level", export.Quality.Level,
		)
	}

	args = append(args, "-pix_fmt", export.Quality.PixelFormat)
	if export.Quality.ColorSpace != "" {
		args = append(args, "-colorspace", export.Quality.ColorSpace)
	}
	if export.Quality.ColorRange != "" {
		args = append(args, "-color_range", export.Quality.ColorRange)
	}

	if includeAudio {
		args = append(args,
			"-c:a", export.AudioCodec,
			"-b:a", fmt.Sprintf("%dk", export.AudioBitrate),
		)
	}

	return args
}

func pickEncoder(export *channel.ExportConfig, caps ffmpeg.CapabilitySet) string {
	if !export.UseGPU || export.GPUType == channel.GPUOff {
		return "libx264"
	}
	if enc := caps.GPUEncoder(export.GPUType); enc != "" {
		return enc
	}
	return "libx264"
}
