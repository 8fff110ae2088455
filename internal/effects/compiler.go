package effects

import (
	"fmt"
	"strings"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/ffmpeg"
)

// ClipSpec describes one clip render as the compiler sees it.
type ClipSpec struct {
	Duration float64
	Index    int
	Total    int
	IsImage  bool
	Effects  Assignment
}

// OutputFPS returns the intermediate clip frame rate. Ken Burns clips
// render at 60 fps for motion smoothness; everything else sticks to the
// export rate. The export rate is re-imposed at finalization.
func OutputFPS(cfg *channel.EffectConfig, exportFPS int) int {
	if len(cfg.KenBurns) > 0 {
		return kenBurnsFPS
	}
	return exportFPS
}

// ClipProgram compiles the full -vf chain for one clip. Stage order is
// fixed: base scale, entry transient, Ken Burns (or plain scale+crop),
// exit transient, color correction, motion blur, first/last fades, and
// an fps lock. The result is never empty.
func ClipProgram(spec ClipSpec, cfg *channel.EffectConfig, w, h, outputFPS int, caps ffmpeg.CapabilitySet) string {
	var parts []string

	if spec.IsImage {
		// 2x oversample so the zoompan crop never upscales.
		parts = append(parts, fmt.Sprintf(
			"scale=%d:%d:force_original_aspect_ratio=increase:flags=lanczos", w*2, h*2))

		// Entry transient runs over the first 30% of the clip.
		if spec.Effects.TransientStart != "" {
			if f := TransientProgram(spec.Effects.TransientStart, spec.Duration*0.3, cfg, spec.Index, caps); f != "" {
				parts = append(parts, f)
			}
		}

		kb := ""
		if spec.Effects.KenBurns != "" {
			kb = KenBurnsProgram(spec.Effects.KenBurns, spec.Duration,
				cfg.KenBurnsIntensity, w, h, cfg.EasingType, caps)
		}
		if kb != "" {
			parts = append(parts, kb)
		} else {
			parts = append(parts,
				fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase", w, h),
				fmt.Sprintf("crop=%d:%d", w, h))
		}

		// Exit transient is delayed onto the last 30% via split+overlay.
		if spec.Effects.TransientEnd != "" {
			endStart := spec.Duration * 0.7
			if f := TransientProgram(spec.Effects.TransientEnd, spec.Duration*0.3, cfg, spec.Index, caps); f != "" {
				parts = append(parts, fmt.Sprintf(
					"split[main][effect];"+
						"[effect]%s,setpts=PTS+%s/TB[effect_delayed];"+
						"[main][effect_delayed]overlay=enable='gte(t,%s)'",
					f, num(endStart), num(endStart)))
			}
		}
	} else {
		// Video clips keep their own motion; only conform the frame.
		parts = append(parts,
			fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase:flags=lanczos", w, h),
			fmt.Sprintf("crop=%d:%d", w, h))
	}

	if color := ColorProgram(cfg, caps); color != "" {
		parts = append(parts, color)
	}

	if cfg.MotionBlur && caps.Has("minterpolate") {
		amount := float64(cfg.MotionBlurAmount) / 100.0
		parts = append(parts, fmt.Sprintf(
			"minterpolate=fps=%d:mi_mode=mci:mc_mode=aobmc:me_mode=bidir:mb_size=%d",
			outputFPS, int(8*amount)))
	}

	if spec.Index == 0 && cfg.FadeInFromBlack {
		parts = append(parts, FadeFilter("in", cfg.FadeInDuration, 0))
	}
	if spec.Index == spec.Total-1 && cfg.FadeOutToBlack {
		fadeStart := spec.Duration - cfg.FadeOutDuration
		if fadeStart < 0 {
			fadeStart = 0
		}
		parts = append(parts, FadeFilter("out", cfg.FadeOutDuration, fadeStart))
	}

	parts = append(parts, fmt.Sprintf("fps=%d", outputFPS))

	return strings.Join(parts, ",")
}
