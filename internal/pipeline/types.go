package pipeline

// VideoClip is one rendered intermediate clip, paired with the audio
// that determined its duration.
type VideoClip struct {
	VideoPath      string
	AudioPath      string
	Duration       float64
	IsFirst        bool
	IsLast         bool
	AppliedEffects map[string]string
}

// ProgressFunc receives progress in [0,100] and a human-readable stage
// label.
type ProgressFunc func(percent float64, stage string)

// Result describes one finished channel montage.
type Result struct {
	ChannelID   string
	ChannelName string
	OutputPath  string
	ClipCount   int
	Duration    float64
}
