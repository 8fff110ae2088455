package effects

import (
	"fmt"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/ffmpeg"
)

// transientParams are the knobs a transient program reads from the
// channel's effect configuration.
type transientParams struct {
	duration       float64
	clipIndex      int
	scaleAmplitude float64 // 0..1
	burstStart     float64 // 1..3, start scale multiplier
	burstDecay     float64 // 0..1, share of duration
	intensity      float64 // 0..1
}

// transientPlan is one (primary, fallback) strategy pair. primary runs
// when every capability in needs is present; otherwise fallback emits a
// visible cheaper approximation. A transient effect is never silently
// dropped.
type transientPlan struct {
	needs    []string
	primary  func(p transientParams) string
	fallback func(p transientParams) string
}

var transientPlans = map[string]transientPlan{
	channel.TransientZoomBurst: {primary: zoomBurstProgram},
	channel.TransientPulse:     {primary: pulseProgram},
	channel.TransientBounce:    {primary: bounceProgram},
	channel.TransientElastic:   {primary: bounceProgram},
	channel.TransientShake:     {primary: shakeProgram},
	channel.TransientPendulum:  {primary: shakeProgram},
	channel.TransientSwing:     {primary: shakeProgram},
	channel.TransientWobble:    {primary: wobbleProgram},
	channel.TransientWave:      {primary: wobbleProgram},
	channel.TransientGlitch: {
		needs:    []string{"split", "overlay", "setpts"},
		primary:  glitchProgram,
		fallback: brightnessPulseProgram,
	},
	channel.TransientDistortion: {
		needs:    []string{"split", "overlay", "setpts"},
		primary:  glitchProgram,
		fallback: brightnessPulseProgram,
	},
	channel.TransientChromatic: {
		needs:    []string{"split", "colorchannelmixer", "blend", "setpts"},
		primary:  chromaticProgram,
		fallback: saturationPulseProgram,
	},
	channel.TransientRGBSplit: {
		needs:    []string{"split", "colorchannelmixer", "blend", "setpts"},
		primary:  chromaticProgram,
		fallback: saturationPulseProgram,
	},
	channel.TransientZoomBlur: {
		needs:    []string{"gblur"},
		primary:  zoomBlurProgram,
		fallback: zoomOnlyProgram,
	},
	channel.TransientSpin: {
		needs:    []string{"rotate"},
		primary:  spinProgram,
		fallback: brightnessPulseProgram,
	},
	channel.TransientFlip: {
		needs:    []string{"rotate"},
		primary:  spinProgram,
		fallback: brightnessPulseProgram,
	},
}

// TransientProgram compiles one transient effect over the given
// sub-interval duration, resolving the plan against the capability set.
func TransientProgram(effect string, duration float64, cfg *channel.EffectConfig, clipIndex int, caps ffmpeg.CapabilitySet) string {
	plan, ok := transientPlans[effect]
	if !ok {
		return ""
	}

	p := transientParams{
		duration:       duration,
		clipIndex:      clipIndex,
		scaleAmplitude: float64(cfg.ScaleAmplitude) / 100.0,
		burstStart:     float64(cfg.ZoomBurstStart) / 100.0,
		burstDecay:     float64(cfg.ZoomBurstDecay) / 100.0,
		intensity:      float64(cfg.MotionIntensity) / 100.0,
	}

	for _, need := range plan.needs {
		if !caps.Has(need) {
			return plan.fallback(p)
		}
	}
	return plan.primary(p)
}

func scaleBoth(expr string) string {
	return fmt.Sprintf("scale=w='iw*(%s)':h='ih*(%s)':eval=frame:flags=lanczos", expr, expr)
}

// zoomBurstProgram: sharp zoom with exponential decay back to 1.
func zoomBurstProgram(p transientParams) string {
	decay := p.burstDecay * p.duration
	expr := fmt.Sprintf("if(lt(t,%s),%s*exp(-3*t/%s)+1*(1-exp(-3*t/%s)),1)",
		num(decay), num(p.burstStart), num(decay), num(decay))
	return scaleBoth(expr)
}

func pulseProgram(p transientParams) string {
	amplitude := p.scaleAmplitude * 0.1
	const frequency = 2.5 // pulses per clip
	expr := fmt.Sprintf("1+%s*sin(2*PI*t*%s/%s)", num(amplitude), num(frequency), num(p.duration))
	return scaleBoth(expr)
}

// bounceProgram: damped oscillation settling back to unit scale.
func bounceProgram(p transientParams) string {
	amplitude := p.scaleAmplitude * 0.15
	expr := fmt.Sprintf("1+%s*sin(10*PI*t/%s)*exp(-5*t/%s)", num(amplitude), num(p.duration), num(p.duration))
	return scaleBoth(expr)
}

// shakeProgram: dual-frequency sinusoidal camera shake, phase-offset by
// clip index so consecutive clips don't shake in sync.
func shakeProgram(p transientParams) string {
	intensity := p.intensity * 10
	xShake := fmt.Sprintf("%s*sin(t*50+%d)", num(intensity), p.clipIndex)
	yShake := fmt.Sprintf("%s*cos(t*37+%d)", num(intensity), p.clipIndex*2)
	return fmt.Sprintf("crop=w=iw-%s:h=ih-%s:x='%s+%s':y='%s+%s':eval=frame",
		num(intensity*2), num(intensity*2), num(intensity), xShake, num(intensity), yShake)
}

func wobbleProgram(p transientParams) string {
	amplitude := p.intensity * 0.05
	expr := fmt.Sprintf("1+%s*sin(4*PI*t/%s)*cos(2*PI*t/%s)", num(amplitude), num(p.duration), num(p.duration))
	return fmt.Sprintf("scale=w='iw*(%s)':h='ih':eval=frame", expr)
}

func glitchProgram(p transientParams) string {
	return fmt.Sprintf(
		"split[main][glitch];"+
			"[glitch]crop=w=iw:h=ih/3:x=0:y=ih/3,setpts=PTS+%s[g1];"+
			"[main][g1]overlay=x=%s*sin(t*10):y=H/3:enable='mod(t,0.5)'",
		num(p.intensity*0.1), num(p.intensity*5))
}

func chromaticProgram(p transientParams) string {
	shift := p.intensity * 5
	return fmt.Sprintf(
		"split=3[r][g][b];"+
			"[r]colorchannelmixer=1:0:0:0:0:0:0:0:0:0:0:0[red];"+
			"[g]colorchannelmixer=0:0:0:0:1:0:0:0:0:0:0:0[green];"+
			"[b]colorchannelmixer=0:0:0:0:0:0:0:0:1:0:0:0[blue];"+
			"[red]setpts=PTS-%s/TB[r1];"+
			"[blue]setpts=PTS+%s/TB[b1];"+
			"[r1][green]blend=all_mode=screen[rg];"+
			"[rg][b1]blend=all_mode=screen",
		num(shift*0.01), num(shift*0.01))
}

func zoomBlurProgram(p transientParams) string {
	zoom := fmt.Sprintf("1+0.1*sin(2*PI*t/%s)", num(p.duration))
	return fmt.Sprintf("scale=w='iw*(%s)':h='ih*(%s)':eval=frame,"+
		"gblur=sigma=%s*abs(sin(2*PI*t/%s)):steps=1",
		zoom, zoom, num(p.intensity*5), num(p.duration))
}

func zoomOnlyProgram(p transientParams) string {
	zoom := fmt.Sprintf("1+0.1*sin(2*PI*t/%s)", num(p.duration))
	return fmt.Sprintf("scale=w='iw*(%s)':h='ih*(%s)':eval=frame", zoom, zoom)
}

func spinProgram(p transientParams) string {
	degreesPerSecond := p.intensity * 360
	return fmt.Sprintf("rotate=a=%s*t*PI/180:c=none:ow=rotw(iw):oh=roth(ih)", num(degreesPerSecond))
}

func brightnessPulseProgram(p transientParams) string {
	return fmt.Sprintf("eq=brightness=%s*sin(t*20):eval=frame", num(p.intensity*0.1))
}

func saturationPulseProgram(p transientParams) string {
	return fmt.Sprintf("eq=saturation=1+%s*sin(t*5):eval=frame", num(p.intensity*0.5))
}
