package channel

import "fmt"

// GPU preference for export encoding.
const (
	GPUAuto   = "auto"
	GPUNvidia = "nvidia"
	GPUAmd    = "amd"
	GPUIntel  = "intel"
	GPUOff    = "off"
)

var resolutionPresets = map[string][2]int{
	"1920x1080": {1920, 1080},
	"3840x2160": {3840, 2160},
	"2560x1440": {2560, 1440},
	"1280x720":  {1280, 720},
	"1080x1920": {1080, 1920},
	"1080x1080": {1080, 1080},
	"720x1280":  {720, 1280},
}

var validPresets = map[string]bool{
	"ultrafast": true, "superfast": true, "veryfast": true, "faster": true,
	"fast": true, "medium": true, "slow": true, "slower": true, "veryslow": true,
}

// Quality holds encoder speed/quality parameters.
type Quality struct {
	Preset      string `json:"preset"`
	CRF         int    `json:"crf"`
	Profile     string `json:"profile"`
	Level       string `json:"level"`
	PixelFormat string `json:"pixel_format"`
	ColorSpace  string `json:"color_space"`
	ColorRange  string `json:"color_range"`
}

// DefaultQuality returns the standard h264 quality profile.
func DefaultQuality() Quality {
	return Quality{
		Preset:      "medium",
		CRF:         23,
		Profile:     "high",
		Level:       "4.2",
		PixelFormat: "yuv420p",
		ColorSpace:  "bt709",
		ColorRange:  "tv",
	}
}

// Validate clamps quality parameters to sane ranges.
func (q *Quality) Validate() {
	if !validPresets[q.Preset] {
		q.Preset = "medium"
	}
	q.CRF = clampInt(q.CRF, 0, 51)
	switch q.Profile {
	case "baseline", "main", "high":
	default:
		q.Profile = "high"
	}
	if q.PixelFormat == "" {
		q.PixelFormat = "yuv420p"
	}
}

// ExportConfig describes one channel's output profile.
type ExportConfig struct {
	Resolution   string  `json:"resolution"`
	CustomWidth  int     `json:"custom_width"`
	CustomHeight int     `json:"custom_height"`
	FPS          int     `json:"fps"`
	Bitrate      int     `json:"bitrate"` // Mbps
	Codec        string  `json:"codec"`
	Quality      Quality `json:"quality"`
	UseGPU       bool    `json:"use_gpu"`
	GPUType      string  `json:"gpu_type"`
	AudioBitrate int     `json:"audio_bitrate"` // kbps
	AudioCodec   string  `json:"audio_codec"`
	Container    string  `json:"container"`
}

// DefaultExportConfig returns a 1080p30 h264 export profile.
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Resolution:   "1920x1080",
		CustomWidth:  1920,
		CustomHeight: 1080,
		FPS:          30,
		Bitrate:      8,
		Codec:        "h264",
		Quality:      DefaultQuality(),
		UseGPU:       true,
		GPUType:      GPUAuto,
		AudioBitrate: 192,
		AudioCodec:   "aac",
		Container:    "mp4",
	}
}

// ResolutionSize resolves the named preset (or custom dimensions) into
// pixel width and height.
func (e *ExportConfig) ResolutionSize() (int, int) {
	if e.Resolution == "custom" {
		return e.CustomWidth, e.CustomHeight
	}
	if wh, ok := resolutionPresets[e.Resolution]; ok {
		return wh[0], wh[1]
	}
	return 1920, 1080
}

// Validate clamps export parameters to their documented ranges.
func (e *ExportConfig) Validate() {
	e.CustomWidth = clampInt(e.CustomWidth, 320, 7680)
	e.CustomHeight = clampInt(e.CustomHeight, 240, 4320)
	e.FPS = clampInt(e.FPS, 1, 120)
	e.Bitrate = clampInt(e.Bitrate, 1, 100)
	e.AudioBitrate = clampInt(e.AudioBitrate, 64, 320)
	if e.Codec == "" {
		e.Codec = "h264"
	}
	if e.AudioCodec == "" {
		e.AudioCodec = "aac"
	}
	if e.Container == "" {
		e.Container = "mp4"
	}
	switch e.GPUType {
	case GPUAuto, GPUNvidia, GPUAmd, GPUIntel, GPUOff:
	default:
		e.GPUType = GPUAuto
	}
	e.Quality.Validate()
}

// OverlayConfig describes the optional overlay compositing pass.
type OverlayConfig struct {
	Enabled       bool     `json:"enabled"`
	Folder        string   `json:"folder"`
	Files         []string `json:"files"`
	BlendMode     string   `json:"blend_mode"`
	Opacity       int      `json:"opacity"`
	Randomize     bool     `json:"randomize"`
	Position      string   `json:"position"`
	Scale         int      `json:"scale"`
	Rotation      int      `json:"rotation"`
	Animate       bool     `json:"animate"`
	AnimationType string   `json:"animation_type"`
}

// DefaultOverlayConfig returns a disabled overlay pass.
func DefaultOverlayConfig() OverlayConfig {
	return OverlayConfig{
		BlendMode:     "screen",
		Opacity:       100,
		Position:      "center",
		Scale:         100,
		AnimationType: "fade",
	}
}

// Validate clamps overlay parameters and resets unknown modes.
func (o *OverlayConfig) Validate() {
	switch o.BlendMode {
	case "normal", "screen", "overlay", "multiply", "add", "lighten", "darken":
	default:
		o.BlendMode = "screen"
	}
	switch o.Position {
	case "center", "top-left", "top-right", "bottom-left", "bottom-right":
	default:
		o.Position = "center"
	}
	switch o.AnimationType {
	case "fade", "slide", "zoom", "rotate":
	default:
		o.AnimationType = "fade"
	}
	o.Opacity = clampInt(o.Opacity, 0, 100)
	o.Scale = clampInt(o.Scale, 10, 200)
	o.Rotation = clampInt(o.Rotation, -180, 180)
}

// Channel aggregates one export, effect and overlay configuration under a
// name. It is the unit of montage generation.
type Channel struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Template    string        `json:"template"`
	Export      ExportConfig  `json:"export"`
	Effects     EffectConfig  `json:"effects"`
	Overlays    OverlayConfig `json:"overlays"`
}

// Validate validates all nested configuration.
func (c *Channel) Validate() {
	if c.Name == "" {
		c.Name = fmt.Sprintf("channel_%s", c.ID)
	}
	c.Export.Validate()
	c.Effects.Validate()
	c.Overlays.Validate()
}
