package channel

import "github.com/google/uuid"

// NewChannel creates a channel with default settings.
func NewChannel(name string) Channel {
	ch := Channel{
		ID:       uuid.NewString(),
		Name:     name,
		Template: "youtube",
		Export:   DefaultExportConfig(),
		Effects:  DefaultEffectConfig(),
		Overlays: DefaultOverlayConfig(),
	}
	ch.Validate()
	return ch
}

// FromTemplate creates a channel from a named preset. Unknown template
// names fall back to the youtube preset.
func FromTemplate(template string) Channel {
	ch := NewChannel("")
	ch.Template = template

	switch template {
	case "shorts":
		ch.Name = "Shorts/Reels channel"
		ch.Export.Resolution = "1080x1920"
		ch.Export.Bitrate = 10
		ch.Effects.KenBurns = []string{KenBurnsZoomIn, KenBurnsZoomOut}
		ch.Effects.Transitions = []string{TransitionZoom, TransitionSlide}
		ch.Effects.ScaleEffects = []string{TransientZoomBurst, TransientShake}
	case "instagram":
		ch.Name = "Instagram channel"
		ch.Export.Resolution = "1080x1080"
		ch.Export.Bitrate = 6
		ch.Effects.KenBurns = []string{KenBurnsDiagonal}
		ch.Effects.Transitions = []string{TransitionFade}
		ch.Effects.ColorFilter = "instagram"
		ch.Effects.ColorCorrection = true
	case "cinematic":
		ch.Name = "Cinematic channel"
		ch.Export.Resolution = "3840x2160"
		ch.Export.FPS = 24
		ch.Export.Bitrate = 20
		ch.Effects.KenBurns = []string{KenBurnsPanLeft, KenBurnsPanRight}
		ch.Effects.Transitions = []string{TransitionDissolve}
		ch.Effects.ColorFilter = "cinematic"
		ch.Effects.ColorCorrection = true
		ch.Effects.Vignette = true
		ch.Effects.Grain = true
	default:
		ch.Name = "YouTube channel"
		ch.Template = "youtube"
		ch.Effects.KenBurns = []string{KenBurnsZoomIn, KenBurnsPanRight}
		ch.Effects.Transitions = []string{TransitionFade, TransitionDissolve}
		ch.Effects.ColorFilter = "cinematic"
		ch.Effects.ColorCorrection = true
	}

	ch.Validate()
	return ch
}
