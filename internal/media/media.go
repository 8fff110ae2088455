package media

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Kind classifies a media file.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
	KindOther Kind = "other"
)

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".tiff": true,
	".bmp": true, ".tif": true, ".webp": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true,
	".webm": true, ".flv": true,
}

var audioExts = map[string]bool{
	".mp3": true, ".wav": true, ".aiff": true, ".m4a": true,
	".flac": true, ".ogg": true,
}

var overlayExts = map[string]bool{
	".png": true, ".mp4": true, ".mov": true, ".gif": true, ".webm": true,
}

// KindOf classifies a file by extension.
func KindOf(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case imageExts[ext]:
		return KindImage
	case videoExts[ext]:
		return KindVideo
	case audioExts[ext]:
		return KindAudio
	default:
		return KindOther
	}
}

// IsOverlay reports whether a file is usable as an overlay asset.
func IsOverlay(path string) bool {
	return overlayExts[strings.ToLower(filepath.Ext(path))]
}

// FileNumber extracts the leading fixed-width numeric id from a filename
// (e.g. "0001_sunset.jpg" → "0001"). Returns "" when absent.
func FileNumber(name string) string {
	if len(name) < 4 {
		return ""
	}
	for i := 0; i < 4; i++ {
		if name[i] < '0' || name[i] > '9' {
			return ""
		}
	}
	return name[:4]
}

// MediaPair is one numbered (media, audio) pair. Duration is 0 until the
// paired audio is probed.
type MediaPair struct {
	Number    string
	Kind      Kind
	MediaFile string
	AudioFile string
	Duration  float64
}

// Valid reports whether both halves of the pair exist on disk.
func (p *MediaPair) Valid() bool {
	if _, err := os.Stat(p.MediaFile); err != nil {
		return false
	}
	if _, err := os.Stat(p.AudioFile); err != nil {
		return false
	}
	return true
}

// ScanSummary counts what a project-folder scan found.
type ScanSummary struct {
	Images int
	Videos int
	Audio  int
	Pairs  int
}

// ScanPairs walks a project folder and pairs media files with audio files
// by leading numeric id, ordered by ascending id. Pairs missing either
// half are excluded with a warning, never fatally.
func ScanPairs(dir string, includeVideos bool, logger zerolog.Logger) ([]MediaPair, ScanSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ScanSummary{}, err
	}

	type mediaEntry struct {
		kind Kind
		path string
	}
	mediaFiles := make(map[string]mediaEntry)
	audioFiles := make(map[string]string)
	var summary ScanSummary

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		number := FileNumber(entry.Name())

		switch KindOf(entry.Name()) {
		case KindImage:
			summary.Images++
			if number != "" {
				mediaFiles[number] = mediaEntry{KindImage, path}
			}
		case KindVideo:
			if !includeVideos {
				continue
			}
			summary.Videos++
			if number != "" {
				mediaFiles[number] = mediaEntry{KindVideo, path}
			}
		case KindAudio:
			summary.Audio++
			if number != "" {
				audioFiles[number] = path
			}
		}
	}

	numbers := make([]string, 0, len(mediaFiles))
	for number := range mediaFiles {
		numbers = append(numbers, number)
	}
	sort.Strings(numbers)

	pairs := make([]MediaPair, 0, len(numbers))
	for _, number := range numbers {
		audio, ok := audioFiles[number]
		if !ok {
			logger.Warn().Str("number", number).Msg("media file has no paired audio, skipping")
			continue
		}
		pair := MediaPair{
			Number:    number,
			Kind:      mediaFiles[number].kind,
			MediaFile: mediaFiles[number].path,
			AudioFile: audio,
		}
		if !pair.Valid() {
			logger.Warn().Str("number", number).Msg("pair failed validation, skipping")
			continue
		}
		pairs = append(pairs, pair)
	}

	summary.Pairs = len(pairs)
	return pairs, summary, nil
}
