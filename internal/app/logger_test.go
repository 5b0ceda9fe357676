package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/heartmarshall/parla-dictionary/internal/config"
)

func TestNewLogger_SetsDefault(t *testing.T) {
	logger := NewLogger(config.LogConfig{Level: "info", Format: "json"})

	if slog.Default().Handler() != logger.Handler() {
		t.Error("NewLogger should set the returned logger as slog default")
	}
}

func TestNewHandler_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.LogConfig{Level: "info", Format: "JSON"}, true))

	logger.Info("sync finished", slog.Int("words", 3))

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("JSON handler should produce valid JSON: %v", err)
	}
	if m["msg"] != "sync finished" {
		t.Errorf("msg = %v, want %q", m["msg"], "sync finished")
	}
	if _, ok := m["source"]; ok {
		t.Error("json format should not include source")
	}
}

func TestNewHandler_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, config.LogConfig{Level: "debug", Format: "text"}, true))

	logger.Debug("source test", slog.String("word", "hello"))

	out := buf.String()
	if !strings.Contains(out, "source test") || !strings.Contains(out, "word=hello") {
		t.Errorf("unexpected text output: %q", out)
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Errorf("text format should include source information, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("noColor output should not contain ANSI escapes, got %q", out)
	}
}

func TestNewHandler_Levels(t *testing.T) {
	tests := []struct {
		level    string
		wantSlog slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		for _, format := range []string{"json", "text"} {
			t.Run(format+"_level_"+tt.level, func(t *testing.T) {
				var buf bytes.Buffer
				logger := slog.New(newHandler(&buf, config.LogConfig{Level: tt.level, Format: format}, true))

				logger.Log(context.TODO(), tt.wantSlog, "should appear")
				if buf.Len() == 0 {
					t.Errorf("expected log output at level %v", tt.wantSlog)
				}

				buf.Reset()
				below := tt.wantSlog - 1
				logger.Log(context.TODO(), below, "should be suppressed")
				if buf.Len() != 0 {
					t.Errorf("level %v should suppress level %v, but got output: %s", tt.wantSlog, below, buf.String())
				}
			})
		}
	}
}
