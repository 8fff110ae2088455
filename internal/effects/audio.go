package effects

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/ffmpeg"
)

// namedAudioEffects maps named effect ids to their filter chains.
var namedAudioEffects = map[string]string{
	"bass":       "bass=g=10:f=100",
	"reverb":     "aecho=0.8:0.9:40:0.4",
	"echo":       "aecho=0.8:0.7:60:0.5",
	"chorus":     "chorus=0.5:0.9:50|60|40:0.4|0.32|0.3:0.25|0.4|0.3:2|2.3|1.3",
	"telephone":  "highpass=f=300,lowpass=f=3000",
	"underwater": "lowpass=f=500,aecho=0.8:0.9:1000:0.3",
	"radio":      "highpass=f=300,lowpass=f=3000,aecho=0.8:0.7:40:0.25",
	"vintage":    "lowpass=f=8000,aecho=0.6:0.8:60:0.35",
	"distortion": "acompressor=threshold=0.5:ratio=5:attack=10",
	"robot":      "afftfilt=real='re * (1-clip((b/nb)*b,0,1))':imag='im * (1-clip((b/nb)*b,0,1))'",
}

// robotFallback approximates the spectral robot effect with stacked
// short echoes when afftfilt is unavailable.
const robotFallback = "aecho=0.8:0.8:5:0.7,aecho=0.8:0.8:11:0.5"

// AudioProgram compiles the audio processing chain: pitch shift, named
// effect, stereo widening, compression, limiting, then loudness
// normalization last. Returns "anull" when nothing is enabled so the
// filter slot is always valid.
func AudioProgram(cfg *channel.EffectConfig, caps ffmpeg.CapabilitySet) string {
	var parts []string

	if cfg.AudioPitch != "" && cfg.AudioPitch != "0" {
		if semitones, err := strconv.ParseFloat(cfg.AudioPitch, 64); err == nil && semitones != 0 {
			parts = append(parts, pitchFilter(semitones, caps))
		}
	}

	if chain, ok := namedAudioEffects[cfg.AudioEffect]; ok {
		if strings.Contains(chain, "afftfilt") && !caps.Has("afftfilt") {
			chain = robotFallback
		}
		parts = append(parts, chain)
	}

	if cfg.AudioStereo && caps.Has("stereotools") {
		parts = append(parts, "stereotools=slev=1.5:sbal=0")
	}

	if cfg.AudioCompressor {
		parts = append(parts, "acompressor=threshold=0.1:ratio=4:attack=5:release=50")
	}

	if cfg.AudioLimiter {
		parts = append(parts, "alimiter=limit=0.95:attack=5:release=50")
	}

	// Normalization always runs last so it sees the final signal.
	if cfg.AudioNormalize {
		if caps.Has("loudnorm") {
			parts = append(parts, "loudnorm=I=-16:TP=-1.5:LRA=11")
		} else {
			parts = append(parts, "volume=0.9")
		}
	}

	if len(parts) == 0 {
		return "anull"
	}
	return strings.Join(parts, ",")
}

// pitchFilter shifts by the given semitone count, preserving tempo when
// rubberband is available and falling back to a resample shift otherwise.
func pitchFilter(semitones float64, caps ffmpeg.CapabilitySet) string {
	if caps.Has("rubberband") {
		return fmt.Sprintf("rubberband=pitch=%s", num(semitones))
	}
	rate := math.Pow(2, semitones/12)
	return fmt.Sprintf("asetrate=44100*%s,aresample=44100", num(rate))
}
