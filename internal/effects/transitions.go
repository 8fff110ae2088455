package effects

import (
	"fmt"
	"strings"

	"github.com/keagan/montagecannon/internal/channel"
	"github.com/keagan/montagecannon/internal/ffmpeg"
)

// xfadeNames maps transition ids to xfade transition names. Ids absent
// here (plain fade) never use xfade.
var xfadeNames = map[string]string{
	channel.TransitionDissolve: "dissolve",
	channel.TransitionDipBlack: "fadeblack",
	channel.TransitionDipWhite: "fadewhite",
	channel.TransitionWipe:     "wipeleft",
	channel.TransitionSlide:    "slideright",
	channel.TransitionPush:     "slideleft",
	channel.TransitionZoom:     "zoomin",
	channel.TransitionBlur:     "hblur",
	channel.TransitionPixelate: "pixelize",
	channel.TransitionGlitch:   "hlslice",
	channel.TransitionRotate:   "radial",
	channel.TransitionSqueeze:  "squeezeh",
	channel.TransitionMorph:    "smoothleft",
}

// Transition is a resolved transition strategy: either a two-input
// xfade filter or a single-input fade approximation.
type Transition struct {
	Name     string
	TwoInput bool   // true when Filter is an xfade joining two streams
	Filter   string
}

// TransitionFilter resolves a transition id against the capability set.
// Every id degrades to a plain fade rather than disappearing.
func TransitionFilter(id string, duration float64, caps ffmpeg.CapabilitySet) Transition {
	if name, ok := xfadeNames[id]; ok && caps.Has("xfade") {
		return Transition{
			Name:     "xfade",
			TwoInput: true,
			Filter:   fmt.Sprintf("xfade=transition=%s:duration=%s:offset=0", name, num(duration)),
		}
	}
	return Transition{
		Name:   "fade",
		Filter: fmt.Sprintf("fade=t=out:st=0:d=%s:alpha=1", num(duration)),
	}
}

// BoundaryFadeProgram emits the transition pass over an already
// concatenated timeline: at each clip boundary b the outgoing clip fades
// out over [b-d/2, b] and the incoming clip fades in over [b, b+d/2].
// clipDurations are the source clip lengths in order; an empty or
// single-clip timeline produces no filter.
func BoundaryFadeProgram(clipDurations []float64, transitionDuration float64) string {
	if len(clipDurations) < 2 {
		return ""
	}

	half := transitionDuration / 2
	var parts []string
	boundary := 0.0
	for _, d := range clipDurations[:len(clipDurations)-1] {
		boundary += d
		parts = append(parts,
			fmt.Sprintf("fade=t=out:st=%s:d=%s", num(boundary-half), num(half)),
			fmt.Sprintf("fade=t=in:st=%s:d=%s", num(boundary), num(half)),
		)
	}
	return strings.Join(parts, ",")
}

// FadeFilter returns a simple fade over wall time. kind is "in" or "out".
func FadeFilter(kind string, duration, startTime float64) string {
	switch kind {
	case "in":
		return fmt.Sprintf("fade=t=in:st=%s:d=%s", num(startTime), num(duration))
	case "out":
		return fmt.Sprintf("fade=t=out:st=%s:d=%s", num(startTime), num(duration))
	}
	return ""
}
