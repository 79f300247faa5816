package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"info", "info", slog.LevelInfo},
		{"debug", "debug", slog.LevelDebug},
		{"trace", "trace", LevelTrace},
		{"uppercase DEBUG", "DEBUG", slog.LevelDebug},
		{"mixed case Trace", "Trace", LevelTrace},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		logAtDebug bool
	}{
		{"info filters debug", "info", false},
		{"debug passes debug", "debug", true},
		{"trace passes debug", "trace", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, &buf)

			logger.Debug("solving falloff rate")
			hasDebug := strings.Contains(buf.String(), "solving falloff rate")
			if hasDebug != tt.logAtDebug {
				t.Errorf("debug message visible = %v, want %v (buf: %q)", hasDebug, tt.logAtDebug, buf.String())
			}

			buf.Reset()
			logger.Info("table written")
			if !strings.Contains(buf.String(), "table written") {
				t.Errorf("info message not visible at level %q", tt.level)
			}
		})
	}
}

func TestTraceLoggerInfoLevelIsNil(t *testing.T) {
	dir := t.TempDir()
	tl := NewTraceLogger(dir, "info")

	if tl != nil {
		t.Error("expected nil TraceLogger at info level")
	}

	// Nil logger must still be safe to use.
	tl.Log(map[string]any{"event": "falloff_solve_fine"})
	tl.Close()

	if _, err := os.Stat(filepath.Join(dir, "solves.jsonl")); err == nil {
		t.Error("solves.jsonl should not exist at info level")
	}
}

func TestTraceLoggerDebugLevel(t *testing.T) {
	dir := t.TempDir()
	tl := NewTraceLogger(dir, "debug")
	defer tl.Close()

	tl.Log(map[string]any{"event": "falloff_solve_fine", "rate": 1.965, "residual": 0.017})

	data, err := os.ReadFile(filepath.Join(dir, "solves.jsonl"))
	if err != nil {
		t.Fatalf("failed to read solves.jsonl: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("failed to parse JSONL entry: %v", err)
	}

	if entry["event"] != "falloff_solve_fine" {
		t.Errorf("event = %v, want falloff_solve_fine", entry["event"])
	}
	if entry["rate"] != 1.965 {
		t.Errorf("rate = %v, want 1.965", entry["rate"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected 'time' field in trace entry")
	}
}

func TestTraceLoggerMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	tl := NewTraceLogger(dir, "trace")
	defer tl.Close()

	tl.Log(map[string]any{"event": "falloff_solve_coarse"})
	tl.Log(map[string]any{"event": "falloff_solve_fine"})

	data, err := os.ReadFile(filepath.Join(dir, "solves.jsonl"))
	if err != nil {
		t.Fatalf("failed to read solves.jsonl: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), string(data))
	}
}

func TestTraceLoggerNilSafety(t *testing.T) {
	var tl *TraceLogger
	tl.Log(map[string]any{"event": "should_not_panic"})
	tl.Close()
}

func TestTraceLoggerDoesNotMutateCallerMap(t *testing.T) {
	dir := t.TempDir()
	tl := NewTraceLogger(dir, "debug")
	defer tl.Close()

	event := map[string]any{"event": "falloff_solve_coarse"}
	tl.Log(event)

	if _, hasTime := event["time"]; hasTime {
		t.Error("Log() should not mutate caller's map, but 'time' was injected")
	}
}

func TestTraceLoggerLogAfterClose(t *testing.T) {
	dir := t.TempDir()
	tl := NewTraceLogger(dir, "debug")

	tl.Log(map[string]any{"event": "before_close"})
	tl.Close()

	// Should be a no-op, not panic or error.
	tl.Log(map[string]any{"event": "after_close"})
}
