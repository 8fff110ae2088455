package channel

import "testing"

func TestEffectConfigClamps(t *testing.T) {
	cfg := DefaultEffectConfig()
	cfg.KenBurnsIntensity = 250
	cfg.KenBurnsSmooth = 3.0
	cfg.TransitionDuration = 99
	cfg.ZoomBurstStart = 50
	cfg.EffectEvery = 0
	cfg.EffectPercent = -10
	cfg.Validate()

	if cfg.KenBurnsIntensity != 100 {
		t.Errorf("intensity = %d, want 100", cfg.KenBurnsIntensity)
	}
	if cfg.KenBurnsSmooth != 1.0 {
		t.Errorf("smooth = %f, want 1.0", cfg.KenBurnsSmooth)
	}
	if cfg.TransitionDuration != 5.0 {
		t.Errorf("transition duration = %f, want 5.0", cfg.TransitionDuration)
	}
	if cfg.ZoomBurstStart != 100 {
		t.Errorf("zoom burst start = %d, want 100", cfg.ZoomBurstStart)
	}
	if cfg.EffectEvery != 1 {
		t.Errorf("effect every = %d, want 1", cfg.EffectEvery)
	}
	if cfg.EffectPercent != 0 {
		t.Errorf("effect percent = %d, want 0", cfg.EffectPercent)
	}
}

func TestEffectConfigDropsUnknownIDs(t *testing.T) {
	cfg := DefaultEffectConfig()
	cfg.KenBurns = []string{KenBurnsZoomIn, "warpDrive", KenBurnsPanLeft}
	cfg.ScaleEffects = []string{"nosuch", TransientPulse}
	cfg.EasingType = "hyperbolic"
	cfg.EffectFrequency = "sometimes"
	cfg.Validate()

	if len(cfg.KenBurns) != 2 || cfg.KenBurns[1] != KenBurnsPanLeft {
		t.Errorf("ken burns = %v", cfg.KenBurns)
	}
	if len(cfg.ScaleEffects) != 1 || cfg.ScaleEffects[0] != TransientPulse {
		t.Errorf("scale effects = %v", cfg.ScaleEffects)
	}
	if cfg.EasingType != "ease" {
		t.Errorf("easing = %q, want ease", cfg.EasingType)
	}
	if cfg.EffectFrequency != FrequencyAll {
		t.Errorf("frequency = %q, want all", cfg.EffectFrequency)
	}
}

func TestEffectConfigEmptyTransitionsDefaultToFade(t *testing.T) {
	cfg := DefaultEffectConfig()
	cfg.Transitions = []string{"teleport"}
	cfg.Validate()

	if len(cfg.Transitions) != 1 || cfg.Transitions[0] != TransitionFade {
		t.Errorf("transitions = %v, want [fade]", cfg.Transitions)
	}
}

func TestExportConfigResolution(t *testing.T) {
	cfg := DefaultExportConfig()

	w, h := cfg.ResolutionSize()
	if w != 1920 || h != 1080 {
		t.Errorf("default = %dx%d", w, h)
	}

	cfg.Resolution = "1080x1920"
	w, h = cfg.ResolutionSize()
	if w != 1080 || h != 1920 {
		t.Errorf("vertical = %dx%d", w, h)
	}

	cfg.Resolution = "custom"
	cfg.CustomWidth = 640
	cfg.CustomHeight = 480
	w, h = cfg.ResolutionSize()
	if w != 640 || h != 480 {
		t.Errorf("custom = %dx%d", w, h)
	}

	cfg.Resolution = "999x999"
	w, h = cfg.ResolutionSize()
	if w != 1920 || h != 1080 {
		t.Errorf("unknown preset should fall back to 1080p, got %dx%d", w, h)
	}
}

func TestExportConfigValidate(t *testing.T) {
	cfg := DefaultExportConfig()
	cfg.FPS = 500
	cfg.Bitrate = 0
	cfg.AudioBitrate = 10
	cfg.GPUType = "matrox"
	cfg.Validate()

	if cfg.FPS != 120 {
		t.Errorf("fps = %d, want 120", cfg.FPS)
	}
	if cfg.Bitrate != 1 {
		t.Errorf("bitrate = %d, want 1", cfg.Bitrate)
	}
	if cfg.AudioBitrate != 64 {
		t.Errorf("audio bitrate = %d, want 64", cfg.AudioBitrate)
	}
	if cfg.GPUType != GPUAuto {
		t.Errorf("gpu type = %q, want auto", cfg.GPUType)
	}
}

func TestFromJSONAcceptsArrayAndWrapped(t *testing.T) {
	array := []byte(`[{"name":"one"},{"name":"two"}]`)
	channels, err := FromJSON(array)
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) != 2 || channels[0].Name != "one" {
		t.Errorf("array form = %+v", channels)
	}
	// Defaults must be present for absent fields.
	if channels[0].Export.FPS != 30 {
		t.Errorf("fps = %d, want default 30", channels[0].Export.FPS)
	}
	if channels[0].Effects.EffectFrequency != FrequencyAll {
		t.Errorf("frequency = %q, want all", channels[0].Effects.EffectFrequency)
	}

	wrapped := []byte(`{"channels":[{"name":"inner"}]}`)
	channels, err = FromJSON(wrapped)
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) != 1 || channels[0].Name != "inner" {
		t.Errorf("wrapped form = %+v", channels)
	}

	if _, err := FromJSON([]byte(`"garbage"`)); err == nil {
		t.Error("expected error for non-channel JSON")
	}
}

func TestFromJSONValidatesChannels(t *testing.T) {
	data := []byte(`[{"name":"x","effects":{"ken_burns_intensity":9999,"ken_burns":["zoomIn","bogus"]}}]`)
	channels, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if channels[0].Effects.KenBurnsIntensity != 100 {
		t.Errorf("intensity = %d, want clamped 100", channels[0].Effects.KenBurnsIntensity)
	}
	if len(channels[0].Effects.KenBurns) != 1 {
		t.Errorf("ken burns = %v, want unknown dropped", channels[0].Effects.KenBurns)
	}
}

func TestLoadFileMissingGivesDefaultChannel(t *testing.T) {
	channels, err := LoadFile("/nonexistent/channels.json")
	if err != nil {
		t.Fatal(err)
	}
	if len(channels) != 1 || channels[0].Name != "default" {
		t.Errorf("channels = %+v", channels)
	}
}

func TestFromTemplate(t *testing.T) {
	shorts := FromTemplate("shorts")
	if shorts.Export.Resolution != "1080x1920" {
		t.Errorf("shorts resolution = %q", shorts.Export.Resolution)
	}

	cinematic := FromTemplate("cinematic")
	if cinematic.Export.FPS != 24 || !cinematic.Effects.Vignette {
		t.Errorf("cinematic = %+v", cinematic.Export)
	}

	unknown := FromTemplate("betamax")
	if unknown.Template != "youtube" {
		t.Errorf("unknown template = %q, want youtube fallback", unknown.Template)
	}

	if shorts.ID == cinematic.ID || shorts.ID == "" {
		t.Error("channel ids must be unique and non-empty")
	}
}
