package ffmpeg

import (
	"bufio"
	"context"
	"strings"
	"sync"
)

// CapabilitySet maps filter and encoder names to availability. It is
// immutable after the first probe; concurrent reads are safe.
type CapabilitySet map[string]bool

// Has reports whether the named filter or encoder is available.
func (c CapabilitySet) Has(name string) bool { return c[name] }

// GPUEncoder returns the first available hardware h264 encoder for the
// requested vendor ("auto" tries all vendors), or "" when none exists.
func (c CapabilitySet) GPUEncoder(vendor string) string {
	byVendor := map[string]string{
		"nvidia": "h264_nvenc",
		"amd":    "h264_amf",
		"intel":  "h264_qsv",
		"apple":  "h264_videotoolbox",
	}
	if vendor != "auto" {
		if enc := byVendor[vendor]; enc != "" && c[enc] {
			return enc
		}
		return ""
	}
	for _, enc := range []string{"h264_nvenc", "h264_amf", "h264_qsv", "h264_videotoolbox"} {
		if c[enc] {
			return enc
		}
	}
	return ""
}

// probedFilters is the filter surface the compiler negotiates over.
var probedFilters = []string{
	"zoompan", "scale", "rotate", "fade", "xfade",
	"crop", "overlay", "colorchannelmixer", "colorbalance", "curves",
	"eq", "hue", "vignette", "noise", "gblur", "boxblur", "minterpolate",
	"split", "blend", "setpts", "fps", "format", "concat",
	"rubberband", "asetrate", "aresample", "aecho", "bass", "chorus",
	"highpass", "lowpass", "acompressor", "alimiter", "afftfilt",
	"stereotools", "loudnorm", "volume", "anull",
}

var probedEncoders = []string{
	"libx264", "libx265", "h264_nvenc", "hevc_nvenc",
	"h264_amf", "h264_qsv", "h264_videotoolbox", "aac",
}

var capCache = struct {
	sync.Mutex
	sets map[string]CapabilitySet
}{sets: make(map[string]CapabilitySet)}

// Capabilities probes the binary's filter and encoder registries once per
// binary path. Probe failure degrades to an all-false set rather than an
// error; every consumer has a fallback for "not available".
func (e *Executor) Capabilities(ctx context.Context) CapabilitySet {
	capCache.Lock()
	defer capCache.Unlock()

	if set, ok := capCache.sets[e.ffmpegPath]; ok {
		return set
	}

	set := make(CapabilitySet, len(probedFilters)+len(probedEncoders))
	for _, name := range probedFilters {
		set[name] = false
	}
	for _, name := range probedEncoders {
		set[name] = false
	}

	if out, err := e.rawOutput(ctx, "-filters"); err == nil {
		parseRegistry(out, probedFilters, set)
	} else {
		e.logger.Warn().Err(err).Msg("filter probe failed, assuming no capabilities")
	}
	if out, err := e.rawOutput(ctx, "-encoders"); err == nil {
		parseRegistry(out, probedEncoders, set)
	} else {
		e.logger.Warn().Err(err).Msg("encoder probe failed, assuming no encoders")
	}

	capCache.sets[e.ffmpegPath] = set
	return set
}

// parseRegistry scans `ffmpeg -filters`/`-encoders` output for exact name
// tokens. Substring matching would confuse e.g. "fade" with "xfade".
func parseRegistry(out string, names []string, set CapabilitySet) {
	present := make(map[string]bool)
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		for _, field := range strings.Fields(scanner.Text()) {
			present[field] = true
		}
	}
	for _, name := range names {
		if present[name] {
			set[name] = true
		}
	}
}

// AllCapabilities returns a set with every probed name enabled. Test
// helper for compiling against a fully-featured build.
func AllCapabilities() CapabilitySet {
	set := make(CapabilitySet, len(probedFilters)+len(probedEncoders))
	for _, name := range probedFilters {
		set[name] = true
	}
	for _, name := range probedEncoders {
		set[name] = true
	}
	return set
}

// NoCapabilities returns an all-false set, the degraded state after a
// failed probe.
func NoCapabilities() CapabilitySet {
	set := make(CapabilitySet, len(probedFilters)+len(probedEncoders))
	for _, name := range probedFilters {
		set[name] = false
	}
	for _, name := range probedEncoders {
		set[name] = false
	}
	return set
}
