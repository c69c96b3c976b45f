package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/talenthub/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	l, err := New(&config.Config{Log: config.Log{Level: "warn", Format: "console"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info should be disabled at warn level")
	}
	if !l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("warn should be enabled at warn level")
	}
}

func TestNewTUIWithoutFileDiscards(t *testing.T) {
	l, err := NewTUI(&config.Config{Log: config.Log{Level: "debug"}})
	if err != nil {
		t.Fatalf("NewTUI: %v", err)
	}
	if l.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected a no-op logger when log.file is unset")
	}
}

func TestNewTUIWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tui.log")
	l, err := NewTUI(&config.Config{Log: config.Log{Level: "info", Format: "console", File: path}})
	if err != nil {
		t.Fatalf("NewTUI: %v", err)
	}
	l.Info("preview loaded", zap.Int("questions", 20))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["msg"] != "preview loaded" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["questions"] != float64(20) {
		t.Errorf("questions = %v", entry["questions"])
	}
}
