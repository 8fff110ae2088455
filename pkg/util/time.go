package util

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSeconds converts seconds to ffmpeg timestamp format (HH:MM:SS.mmm)
func FormatSeconds(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int((seconds - float64(hours*3600)) / 60)
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
}

// ParseTimestamp parses an ffmpeg timestamp (HH:MM:SS.mmm, MM:SS or SS.mmm)
// into seconds.
func ParseTimestamp(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")

	var hours, minutes, seconds float64
	var err error

	switch len(parts) {
	case 1:
		seconds, err = strconv.ParseFloat(parts[0], 64)
	case 2:
		minutes, err = strconv.ParseFloat(parts[0], 64)
		if err == nil {
			seconds, err = strconv.ParseFloat(parts[1], 64)
		}
	case 3:
		hours, err = strconv.ParseFloat(parts[0], 64)
		if err == nil {
			minutes, err = strconv.ParseFloat(parts[1], 64)
		}
		if err == nil {
			seconds, err = strconv.ParseFloat(parts[2], 64)
		}
	default:
		return 0, fmt.Errorf("invalid timestamp format: %s", s)
	}

	if err != nil {
		return 0, fmt.Errorf("invalid timestamp format: %s", s)
	}
	return hours*3600 + minutes*60 + seconds, nil
}

// ParseFrameRate parses frame rate from ffprobe format (e.g., "30/1").
// Bare numbers parse as-is.
func ParseFrameRate(s string) float64 {
	parts := strings.Split(s, "/")
	if len(parts) == 1 {
		rate, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0
		}
		return rate
	}
	if len(parts) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}
