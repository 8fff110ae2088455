package effects

import (
	"fmt"
	"strings"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/ffmpeg"
)

var overlayPositions = map[string]string{
	"center":       "x=(W-w)/2:y=(H-h)/2",
	"top-left":     "x=0:y=0",
	"top-right":    "x=W-w:y=0",
	"bottom-left":  "x=0:y=H-h",
	"bottom-right": "x=W-w:y=H-h",
}

var overlayBlends = map[string]string{
	"normal":   "",
	"screen":   ":blend=screen",
	"overlay":  ":blend=overlay",
	"multiply": ":blend=multiply",
	"add":      ":blend=addition",
	"lighten":  ":blend=lighten",
	"darken":   ":blend=darken",
}

// OverlayChain compiles the overlay input's preprocessing plus the
// overlay join. The result is a filter_complex fragment applied to the
// overlay input stream; the base video is the other overlay operand.
// Returns "" when the pass is disabled or has no source files.
func OverlayChain(cfg *channel.OverlayConfig, caps ffmpeg.CapabilitySet) string {
	if !cfg.Enabled || len(cfg.Files) == 0 {
		return ""
	}

	position := overlayPositions[cfg.Position]
	if position == "" {
		position = overlayPositions["center"]
	}
	blend := overlayBlends[cfg.BlendMode]

	var parts []string

	if cfg.Scale != 100 {
		scale := float64(cfg.Scale) / 100.0
		parts = append(parts, fmt.Sprintf("scale=iw*%s:ih*%s", num(scale), num(scale)))
	}

	if cfg.Rotation != 0 && caps.Has("rotate") {
		parts = append(parts, fmt.Sprintf("rotate=%d*PI/180:c=none", cfg.Rotation))
	}

	opacity := float64(cfg.Opacity) / 100.0
	if caps.Has("format") {
		parts = append(parts, fmt.Sprintf("format=rgba,colorchannelmixer=aa=%s", num(opacity)))
	}

	if cfg.Animate {
		switch cfg.AnimationType {
		case "fade":
			parts = append(parts, "fade=in:st=0:d=1:alpha=1")
		case "slide":
			position = fmt.Sprintf("%s:x='if(lt(t,2),W-w*t/2,x)':eval=frame", position)
		case "zoom":
			parts = append(parts, "scale=w='iw*(1+0.1*sin(t))':h='ih*(1+0.1*sin(t))':eval=frame")
		case "rotate":
			if caps.Has("rotate") {
				parts = append(parts, "rotate=0.1*sin(t)*PI/180:c=none")
			}
		}
	}

	chain := "null"
	if len(parts) > 0 {
		chain = strings.Join(parts, ",")
	}
	return fmt.Sprintf("%s[ov];[ov]overlay=%s%s", chain, position, blend)
}
