package channel

// Ken Burns effect identifiers.
const (
	KenBurnsZoomIn     = "zoomIn"
	KenBurnsZoomOut    = "zoomOut"
	KenBurnsPanLeft    = "panLeft"
	KenBurnsPanRight   = "panRight"
	KenBurnsPanUp      = "panUp"
	KenBurnsPanDown    = "panDown"
	KenBurnsRotate     = "rotate"
	KenBurnsDiagonal   = "diagonal"
	KenBurnsZoomRotate = "zoomRotate"
	KenBurnsParallax   = "parallax"
	KenBurnsSpiral     = "spiral"
	KenBurnsShake      = "shake"
)

// Transient (CapCut-style) effect identifiers.
const (
	TransientZoomBurst  = "zoomBurst"
	TransientPulse      = "pulse"
	TransientBounce     = "bounce"
	TransientElastic    = "elastic"
	TransientWave       = "wave"
	TransientGlitch     = "glitch"
	TransientShake      = "shake"
	TransientWobble     = "wobble"
	TransientPendulum   = "pendulum"
	TransientSwing      = "swing"
	TransientSpin       = "spin"
	TransientFlip       = "flip"
	TransientZoomBlur   = "zoomBlur"
	TransientChromatic  = "chromatic"
	TransientRGBSplit   = "rgbSplit"
	TransientDistortion = "distortion"
)

// Transition identifiers.
const (
	TransitionFade     = "fade"
	TransitionDissolve = "dissolve"
	TransitionDipBlack = "dip_black"
	TransitionDipWhite = "dip_white"
	TransitionWipe     = "wipe"
	TransitionSlide    = "slide"
	TransitionPush     = "push"
	TransitionZoom     = "zoom"
	TransitionBlur     = "blur"
	TransitionPixelate = "pixelate"
	TransitionGlitch   = "glitch"
	TransitionRotate   = "rotate"
	TransitionSqueeze  = "squeeze"
	TransitionMorph    = "morph"
)

// Transient effect frequency policies.
const (
	FrequencyAll     = "all"
	FrequencyPercent = "percent"
	FrequencyEvery   = "every"
	FrequencyRandom  = "random"
)

// Transient effect timing policies. TimingMiddle is treated as a start-slot
// application point, matching the behavior this replaces.
const (
	TimingStart  = "start"
	TimingMiddle = "middle"
	TimingEnd    = "end"
	TimingRandom = "random"
)

var validKenBurns = map[string]bool{
	KenBurnsZoomIn: true, KenBurnsZoomOut: true,
	KenBurnsPanLeft: true, KenBurnsPanRight: true,
	KenBurnsPanUp: true, KenBurnsPanDown: true,
	KenBurnsRotate: true, KenBurnsDiagonal: true,
	KenBurnsZoomRotate: true, KenBurnsParallax: true,
	KenBurnsSpiral: true, KenBurnsShake: true,
}

var validTransients = map[string]bool{
	TransientZoomBurst: true, TransientPulse: true, TransientBounce: true,
	TransientElastic: true, TransientWave: true, TransientGlitch: true,
	TransientShake: true, TransientWobble: true, TransientPendulum: true,
	TransientSwing: true, TransientSpin: true, TransientFlip: true,
	TransientZoomBlur: true, TransientChromatic: true,
	TransientRGBSplit: true, TransientDistortion: true,
}

var validTransitions = map[string]bool{
	TransitionFade: true, TransitionDissolve: true,
	TransitionDipBlack: true, TransitionDipWhite: true,
	TransitionWipe: true, TransitionSlide: true, TransitionPush: true,
	TransitionZoom: true, TransitionBlur: true, TransitionPixelate: true,
	TransitionGlitch: true, TransitionRotate: true,
	TransitionSqueeze: true, TransitionMorph: true,
}

var validEasings = map[string]bool{
	"linear": true, "ease": true, "ease-in": true, "ease-out": true,
	"ease-in-out": true, "bounce": true, "elastic": true, "back": true,
}

var validAudioEffects = map[string]bool{
	"none": true, "bass": true, "reverb": true, "echo": true,
	"chorus": true, "telephone": true, "underwater": true, "radio": true,
	"vintage": true, "distortion": true, "robot": true,
}

// EffectConfig holds the full set of effect toggles and intensities for
// one channel.
type EffectConfig struct {
	// Ken Burns
	KenBurns          []string `json:"ken_burns"`
	KenBurnsIntensity int      `json:"ken_burns_intensity"`
	KenBurnsRandomize bool     `json:"kb_randomize"`
	KenBurnsSmooth    float64  `json:"kb_smooth_factor"`
	EasingType        string   `json:"easing_type"`

	// Transitions
	Transitions        []string `json:"transitions"`
	TransitionDuration float64  `json:"transition_duration"`
	TransitionOverlap  float64  `json:"trans_overlap"`

	// Fades
	FadeInFromBlack bool    `json:"fade_in_from_black"`
	FadeInDuration  float64 `json:"fade_in_duration"`
	FadeInEasing    string  `json:"fade_in_type"`
	FadeOutToBlack  bool    `json:"fade_out_to_black"`
	FadeOutDuration float64 `json:"fade_out_duration"`
	FadeOutEasing   string  `json:"fade_out_type"`
	AddBlackFrame   bool    `json:"add_black_frame"`

	// Color correction
	ColorCorrection   bool   `json:"color_correction"`
	ColorFilter       string `json:"color_filter"`
	Vignette          bool   `json:"vignette"`
	VignetteIntensity int    `json:"vignette_intensity"`
	Grain             bool   `json:"grain"`
	GrainIntensity    int    `json:"grain_intensity"`
	BlurEdges         bool   `json:"blur_edges"`
	BlurIntensity     int    `json:"blur_intensity"`

	// Audio
	AudioPitch      string `json:"audio_pitch"`
	AudioEffect     string `json:"audio_effect"`
	AudioStereo     bool   `json:"audio_stereo_enhance"`
	AudioNormalize  bool   `json:"audio_normalize"`
	AudioCompressor bool   `json:"audio_compressor"`
	AudioLimiter    bool   `json:"audio_limiter"`

	// Motion
	MotionBlur       bool `json:"motion_blur"`
	MotionBlurAmount int  `json:"motion_blur_amount"`

	// Transient (CapCut-style) effects
	ScaleEffects    []string `json:"capcut_effects"`
	MotionEffects   []string `json:"motion_effects"`
	ScaleAmplitude  int      `json:"scale_amplitude"`
	ZoomBurstStart  int      `json:"zoom_burst_start"`
	ZoomBurstDecay  int      `json:"zoom_burst_decay"`
	MotionIntensity int      `json:"motion_intensity"`
	EffectFrequency string   `json:"effect_frequency"`
	EffectPercent   int      `json:"effect_percent"`
	EffectEvery     int      `json:"effect_every"`
	EffectTiming    string   `json:"capcut_timing"`
}

// DefaultEffectConfig returns effect settings with safe defaults.
func DefaultEffectConfig() EffectConfig {
	return EffectConfig{
		KenBurnsIntensity:  30,
		KenBurnsSmooth:     0.7,
		EasingType:         "ease",
		Transitions:        []string{TransitionFade},
		TransitionDuration: 1.0,
		TransitionOverlap:  0.5,
		FadeInDuration:     1.0,
		FadeInEasing:       "ease",
		FadeOutDuration:    1.0,
		FadeOutEasing:      "ease",
		AddBlackFrame:      true,
		ColorFilter:        "none",
		VignetteIntensity:  40,
		GrainIntensity:     20,
		BlurIntensity:      30,
		AudioPitch:         "0",
		AudioEffect:        "none",
		AudioNormalize:     true,
		MotionBlurAmount:   20,
		ScaleAmplitude:     15,
		ZoomBurstStart:     150,
		ZoomBurstDecay:     80,
		MotionIntensity:    30,
		EffectFrequency:    FrequencyAll,
		EffectPercent:      50,
		EffectEvery:        3,
		EffectTiming:       TimingStart,
	}
}

// Validate clamps intensities to their documented ranges and drops
// unknown effect ids. An empty transition list falls back to fade.
func (e *EffectConfig) Validate() {
	e.KenBurnsIntensity = clampInt(e.KenBurnsIntensity, 0, 100)
	e.KenBurnsSmooth = clampFloat(e.KenBurnsSmooth, 0.0, 1.0)
	if !validEasings[e.EasingType] {
		e.EasingType = "ease"
	}

	e.TransitionDuration = clampFloat(e.TransitionDuration, 0.1, 5.0)
	e.TransitionOverlap = clampFloat(e.TransitionOverlap, 0.0, 1.0)
	e.FadeInDuration = clampFloat(e.FadeInDuration, 0.1, 5.0)
	e.FadeOutDuration = clampFloat(e.FadeOutDuration, 0.1, 5.0)
	if !validEasings[e.FadeInEasing] {
		e.FadeInEasing = "ease"
	}
	if !validEasings[e.FadeOutEasing] {
		e.FadeOutEasing = "ease"
	}

	e.VignetteIntensity = clampInt(e.VignetteIntensity, 0, 100)
	e.GrainIntensity = clampInt(e.GrainIntensity, 0, 100)
	e.BlurIntensity = clampInt(e.BlurIntensity, 0, 100)
	e.MotionBlurAmount = clampInt(e.MotionBlurAmount, 0, 100)

	if !validAudioEffects[e.AudioEffect] {
		e.AudioEffect = "none"
	}

	e.ScaleAmplitude = clampInt(e.ScaleAmplitude, 0, 100)
	e.ZoomBurstStart = clampInt(e.ZoomBurstStart, 100, 300)
	e.ZoomBurstDecay = clampInt(e.ZoomBurstDecay, 0, 100)
	e.MotionIntensity = clampInt(e.MotionIntensity, 0, 100)
	e.EffectPercent = clampInt(e.EffectPercent, 0, 100)
	e.EffectEvery = clampInt(e.EffectEvery, 1, 10)

	switch e.EffectFrequency {
	case FrequencyAll, FrequencyPercent, FrequencyEvery, FrequencyRandom:
	default:
		e.EffectFrequency = FrequencyAll
	}
	switch e.EffectTiming {
	case TimingStart, TimingMiddle, TimingEnd, TimingRandom:
	default:
		e.EffectTiming = TimingStart
	}

	e.KenBurns = filterKnown(e.KenBurns, validKenBurns)
	e.ScaleEffects = filterKnown(e.ScaleEffects, validTransients)
	e.MotionEffects = filterKnown(e.MotionEffects, validTransients)

	e.Transitions = filterKnown(e.Transitions, validTransitions)
	if len(e.Transitions) == 0 {
		e.Transitions = []string{TransitionFade}
	}
}

func filterKnown(ids []string, valid map[string]bool) []string {
	out := ids[:0]
	for _, id := range ids {
		if valid[id] {
			out = append(out, id)
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
