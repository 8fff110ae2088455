package effects

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/ffmpeg"
)

// Ken Burns clips are rendered at 60 fps for motion smoothness regardless
// of the channel's export fps; the export fps is locked at finalization.
const kenBurnsFPS = 60

// KenBurnsProgram compiles one Ken Burns effect into a zoompan-based
// filter chain. The source is 2x oversampled before the crop to avoid
// aliasing. Returns "" when zoompan is unavailable; the caller falls back
// to a plain scale+crop.
func KenBurnsProgram(effect string, duration float64, intensity int, w, h int, easing string, caps ffmpeg.CapabilitySet) string {
	if !caps.Has("zoompan") {
		return ""
	}

	frames := int(duration * kenBurnsFPS)
	if frames < 1 {
		frames = 1
	}
	factor := float64(intensity) / 100.0
	ease := EasingExpr(easing, "on", strconv.Itoa(frames))

	oversample := fmt.Sprintf("scale=%d:%d:flags=lanczos", w*2, h*2)
	zoompan := func(z, x, y string) string {
		return fmt.Sprintf("zoompan=z='%s':d=%d:x='%s':y='%s':s=%dx%d:fps=%d",
			z, frames, x, y, w, h, kenBurnsFPS)
	}
	centerX := "(iw-ow)/2"
	centerY := "(ih-oh)/2"

	var parts []string

	switch effect {
	case channel.KenBurnsZoomIn:
		start := 1.0 + factor*0.3
		z := fmt.Sprintf("%s-(%s-%s)*%s", num(start), num(start), num(1.0), ease)
		parts = []string{oversample, zoompan(z, centerX, centerY)}
		if caps.Has("minterpolate") {
			parts = append(parts, fmt.Sprintf("minterpolate=fps=%d:mi_mode=mci:mc_mode=aobmc:me_mode=bidir", kenBurnsFPS))
		}

	case channel.KenBurnsZoomOut:
		end := 1.0 + factor*0.3
		z := fmt.Sprintf("%s+(%s-%s)*%s", num(1.0), num(end), num(1.0), ease)
		parts = []string{oversample, zoompan(z, centerX, centerY)}
		if caps.Has("minterpolate") {
			parts = append(parts, fmt.Sprintf("minterpolate=fps=%d:mi_mode=mci", kenBurnsFPS))
		}

	case channel.KenBurnsPanLeft:
		zoom := 1.2 + factor*0.2
		pan := factor * 0.3
		x := fmt.Sprintf("(iw-ow)*%s*(1-%s)", num(pan), ease)
		parts = []string{oversample, zoompan(num(zoom), x, centerY)}

	case channel.KenBurnsPanRight:
		zoom := 1.2 + factor*0.2
		pan := factor * 0.3
		x := fmt.Sprintf("(iw-ow)*%s*%s", num(pan), ease)
		parts = []string{oversample, zoompan(num(zoom), x, centerY)}

	case channel.KenBurnsPanUp:
		zoom := 1.2 + factor*0.2
		pan := factor * 0.3
		y := fmt.Sprintf("(ih-oh)*%s*(1-%s)", num(pan), ease)
		parts = []string{oversample, zoompan(num(zoom), centerX, y)}

	case channel.KenBurnsPanDown:
		zoom := 1.2 + factor*0.2
		pan := factor * 0.3
		y := fmt.Sprintf("(ih-oh)*%s*%s", num(pan), ease)
		parts = []string{oversample, zoompan(num(zoom), centerX, y)}

	case channel.KenBurnsRotate:
		if caps.Has("rotate") {
			angle := factor * 15
			rot := fmt.Sprintf("%s*sin(2*PI*%s)", num(angle), EasingExpr(easing, "t", num(duration)))
			parts = []string{
				oversample,
				fmt.Sprintf("rotate=%s*PI/180:c=none:ow=rotw(iw):oh=roth(ih)", rot),
				fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=increase:flags=lanczos", w, h),
				fmt.Sprintf("crop=%d:%d", w, h),
			}
		} else {
			parts = []string{oversample, zoompan(num(1.3), centerX, centerY)}
		}

	case channel.KenBurnsDiagonal:
		zoom := 1.3 + factor*0.2
		pan := factor * 0.2
		x := fmt.Sprintf("(iw-ow)*%s*%s", num(pan), ease)
		y := fmt.Sprintf("(ih-oh)*%s*%s", num(pan), ease)
		parts = []string{oversample, zoompan(num(zoom), x, y)}

	case channel.KenBurnsZoomRotate:
		end := 1.0 + factor*0.3
		z := fmt.Sprintf("%s+(%s-%s)*%s", num(1.0), num(end), num(1.0), ease)
		parts = []string{oversample, zoompan(z, centerX, centerY)}
		if caps.Has("rotate") {
			angle := factor * 10
			rot := fmt.Sprintf("%s*%s", num(angle), EasingExpr(easing, "t", num(duration)))
			parts = append(parts, fmt.Sprintf("rotate=%s*PI/180:c=none", rot))
		}

	case channel.KenBurnsParallax:
		timeEase := EasingExpr(easing, "t", num(duration))
		x := fmt.Sprintf("(iw-ow)/2+sin(2*PI*%s)*%s", timeEase, num(factor*50))
		y := fmt.Sprintf("(ih-oh)/2+cos(2*PI*%s)*%s", timeEase, num(factor*30))
		parts = []string{oversample, zoompan(num(1.4), x, y)}

	case channel.KenBurnsSpiral, channel.KenBurnsShake:
		// No closed-form program of their own; a fixed gentle zoom keeps
		// visible motion instead of dropping to a static crop.
		parts = []string{oversample, zoompan(num(1.2 + factor*0.2), centerX, centerY)}

	default:
		return ""
	}

	return strings.Join(parts, ",")
}

// num formats a numeric constant for embedding in a filter expression.
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
