package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestLogger(buf *bytes.Buffer) *Logger {
	l := New().SetOutput(buf)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf)

	l.Debug("hidden")
	l.Info("shown")
	l.SetLevel(LevelError)
	l.Warn("hidden too")
	l.Error("boom")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Level != "INFO" || entries[1].Level != "ERROR" {
		t.Fatalf("unexpected levels: %s %s", entries[0].Level, entries[1].Level)
	}
	if entries[0].Timestamp != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected timestamp %s", entries[0].Timestamp)
	}
}

func TestLogger_FieldsMerge(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf).WithField("service", "server")
	child := base.WithError(errors.New("bad")).WithFields(map[string]interface{}{"user_id": "u1"})

	child.Info("generated", map[string]interface{}{"status": "ok"})

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	f := entries[0].Fields
	for key, want := range map[string]string{"service": "server", "error": "bad", "user_id": "u1", "status": "ok"} {
		if f[key] != want {
			t.Errorf("field %s: expected %q, got %v", key, want, f[key])
		}
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	base := newTestLogger(&buf)
	child := base.WithField("k", "v")

	base.SetLevel(LevelWarn)
	child.Info("suppressed")

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": LevelDebug, "WARN": LevelWarn, "warning": LevelWarn, "error": LevelError, "": LevelInfo, "x": LevelInfo}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestContextLogger(t *testing.T) {
	if FromContext(context.Background()) != Default {
		t.Fatal("expected default logger for empty context")
	}
	l := New()
	ctx := NewContext(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatal("expected stored logger")
	}
}
