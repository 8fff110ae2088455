package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestInitWithFileWritesJSONStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	if err := InitWithFile(false, path); err != nil {
		t.Fatalf("InitWithFile: %v", err)
	}

	log.Info().Str("component", "test").Msg("file sink check")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"message":"file sink check"`) {
		t.Errorf("log file missing JSON event, got %q", data)
	}
}

func TestInitWithFileBadPath(t *testing.T) {
	if err := InitWithFile(false, filepath.Join(t.TempDir(), "no", "such", "dir", "run.log")); err == nil {
		t.Error("expected error for unwritable log path")
	}
}

func TestNewLoggerMultiWriter(t *testing.T) {
	var a, b bytes.Buffer
	logger := NewLogger(&a, &b)
	logger.Info().Msg("fan out")

	if !strings.Contains(a.String(), "fan out") || !strings.Contains(b.String(), "fan out") {
		t.Errorf("event not fanned out: a=%q b=%q", a.String(), b.String())
	}
}
