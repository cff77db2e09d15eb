package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, l Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(l)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("log line %q is not JSON: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestKeyValues(t *testing.T) {
	buf := capture(t, LevelDebug)
	Info("grid built", "days", 5, 42, "ignored", "dangling")
	Error("fetch failed", errors.New("boom"), "id", "grid")

	got := lines(t, buf)
	if len(got) != 2 {
		t.Fatalf("got %d lines, want 2", len(got))
	}
	if got[0]["message"] != "grid built" || got[0]["level"] != "info" || got[0]["days"] != float64(5) {
		t.Fatalf("info line = %v", got[0])
	}
	if _, ok := got[0]["dangling"]; ok {
		t.Fatalf("odd trailing value logged: %v", got[0])
	}
	if got[1]["error"] != "boom" || got[1]["id"] != "grid" || got[1]["level"] != "error" {
		t.Fatalf("error line = %v", got[1])
	}
}

func TestLevelFilter(t *testing.T) {
	buf := capture(t, LevelWarn)
	Debug("hidden")
	Info("hidden")
	Warn("empty stretch", "pass", "lecture")

	got := lines(t, buf)
	if len(got) != 1 || got[0]["message"] != "empty stretch" || got[0]["level"] != "warn" {
		t.Fatalf("lines = %v, want only the warning", got)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug": LevelDebug,
		"WARN":  LevelWarn,
		"error": LevelError,
		"info":  LevelInfo,
		"loud":  LevelInfo,
		"":      LevelInfo,
	} {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
