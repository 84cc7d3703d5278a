package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("debug message", nil)
	l.Info("info message", nil)
	l.Warn("warn message", nil)
	l.Error("error message", nil, errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Error("messages below min level should be discarded")
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Error("messages at or above min level should be logged")
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("game imported", Fields{"game_id": 8000})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Level != "INFO" {
		t.Errorf("level = %q, expected INFO", entry.Level)
	}
	if entry.Message != "game imported" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Fields["game_id"] != float64(8000) {
		t.Errorf("fields = %v", entry.Fields)
	}
}

func TestLoggerErrorField(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Error("fetch failed", Fields{"page": 3}, errors.New("connection refused"))

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry.Error != "connection refused" {
		t.Errorf("error = %q", entry.Error)
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("import.games")
	m.IncrCounter("import.games")
	m.AddCounter("import.failed", 3)

	if got := m.Counter("import.games"); got != 2 {
		t.Errorf("counter = %d, expected 2", got)
	}
	if got := m.Counter("import.failed"); got != 3 {
		t.Errorf("counter = %d, expected 3", got)
	}
	if got := m.Counter("never.set"); got != 0 {
		t.Errorf("unset counter = %d, expected 0", got)
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("fetch.list")
	m.RecordTiming("fetch.game", 100*time.Millisecond)
	m.RecordTiming("fetch.game", 300*time.Millisecond)

	snapshot := m.GetSnapshot()

	counters, ok := snapshot["counters"].(map[string]int64)
	if !ok || counters["fetch.list"] != 1 {
		t.Errorf("counters snapshot = %v", snapshot["counters"])
	}

	timings, ok := snapshot["timings"].(map[string]map[string]interface{})
	if !ok {
		t.Fatalf("timings snapshot = %v", snapshot["timings"])
	}
	stats := timings["fetch.game"]
	if stats["count"] != 2 {
		t.Errorf("timing count = %v, expected 2", stats["count"])
	}
	if stats["average"] != "200ms" {
		t.Errorf("timing average = %v, expected 200ms", stats["average"])
	}
}
