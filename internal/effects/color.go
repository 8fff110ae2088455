package effects

import (
	"fmt"
	"strings"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/ffmpeg"
)

// colorPresets maps filter names to their full-capability filter chains.
var colorPresets = map[string]string{
	"warm":       "colorbalance=rs=0.3:gs=0.1:bs=-0.2",
	"cold":       "colorbalance=rs=-0.2:gs=-0.1:bs=0.3",
	"vintage":    "curves=preset=vintage,colorbalance=rs=0.3:gs=-0.1:bs=-0.2",
	"blackwhite": "hue=s=0",
	"sepia":      "colorchannelmixer=.393:.769:.189:0:.349:.686:.168:0:.272:.534:.131",
	"cinematic":  "curves=preset=darker,colorbalance=rs=0.2:bs=-0.1",
	"vibrant":    "eq=saturation=1.5:contrast=1.2",
	"faded":      "eq=saturation=0.7:contrast=0.9",
	"instagram":  "curves=preset=lighter,eq=saturation=1.2",
	"film":       "curves=preset=vintage",
}

// eq-only approximations used when colorbalance or curves is missing.
var colorFallbacks = map[string]string{
	"warm":      "eq=saturation=1.2:gamma_r=1.1:gamma_b=0.9",
	"cold":      "eq=saturation=0.9:gamma_r=0.9:gamma_b=1.1",
	"vintage":   "eq=saturation=0.8:contrast=0.9:brightness=0.05",
	"cinematic": "eq=contrast=1.1:brightness=-0.05",
	"film":      "eq=saturation=0.8:contrast=0.9:brightness=0.05",
	"instagram": "eq=saturation=1.2:brightness=0.05",
}

// ColorProgram compiles the color-correction stage: preset filter,
// vignette, film grain and edge blur, each degraded to an approximation
// when the preferred filter is unavailable.
func ColorProgram(cfg *channel.EffectConfig, caps ffmpeg.CapabilitySet) string {
	var parts []string

	if cfg.ColorCorrection {
		if preset, ok := colorPresets[cfg.ColorFilter]; ok {
			needsBalance := strings.Contains(preset, "colorbalance") && !caps.Has("colorbalance")
			needsCurves := strings.Contains(preset, "curves") && !caps.Has("curves")
			if needsBalance || needsCurves {
				if fb, ok := colorFallbacks[cfg.ColorFilter]; ok {
					preset = fb
				}
			}
			parts = append(parts, preset)
		}
	}

	if cfg.Vignette {
		intensity := float64(cfg.VignetteIntensity) / 100.0
		if caps.Has("vignette") {
			parts = append(parts, fmt.Sprintf("vignette=angle=PI/4*%s:mode=backward", num(intensity)))
		} else {
			parts = append(parts, fmt.Sprintf("eq=brightness=-%s", num(intensity*0.1)))
		}
	}

	if cfg.Grain && caps.Has("noise") {
		parts = append(parts, fmt.Sprintf("noise=alls=%d:allf=t", cfg.GrainIntensity))
	}

	if cfg.BlurEdges && caps.Has("gblur") {
		sigma := float64(cfg.BlurIntensity) / 100.0 * 20
		parts = append(parts, fmt.Sprintf("gblur=sigma=%s:steps=1", num(sigma)))
	}

	return strings.Join(parts, ",")
}
