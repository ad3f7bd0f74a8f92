package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"picon/config"

	"go.uber.org/zap"
)

// go test -v --run TestNewInvalidLevel
func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

// go test -v --run TestNewWritesFile
func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "picon.log")

	log, err := New(config.LogConfig{Level: "info", Format: "json", OutputFile: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Info("cache loaded", zap.String("kind", "latest"))
	log.Debug("filtered out")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"msg":"cache loaded"`) || !strings.Contains(text, `"kind":"latest"`) {
		t.Errorf("log line missing fields: %s", text)
	}
	if strings.Contains(text, "filtered out") {
		t.Errorf("debug line should be filtered at info level: %s", text)
	}
}

// go test -v --run TestNewWithoutOutputs
func TestNewWithoutOutputs(t *testing.T) {
	log, err := New(config.LogConfig{Level: "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if log.Core().Enabled(zap.ErrorLevel) {
		t.Error("expected a no-op logger when no outputs are configured")
	}
}
