package obs

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSetOutputForTests_CapturesStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutputForTests(&buf)
	defer restore()

	Pkg("obstest").Info("probe started", "target", "https://dash.example.com")

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("no log output captured")
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, line)
	}
	if entry["msg"] != "probe started" {
		t.Errorf("msg = %v, want %q", entry["msg"], "probe started")
	}
	if entry["pkg"] != "obstest" {
		t.Errorf("pkg = %v, want %q", entry["pkg"], "obstest")
	}
	if entry["target"] != "https://dash.example.com" {
		t.Errorf("target = %v", entry["target"])
	}

	ts, ok := entry["time"].(string)
	if !ok {
		t.Fatalf("time attr missing or not a string: %v", entry["time"])
	}
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		t.Fatalf("time %q is not RFC3339Nano: %v", ts, err)
	}
	if parsed.Location() != time.UTC {
		t.Errorf("timestamp not UTC: %q", ts)
	}
}

func TestSetOutputForTests_RestoreSwitchesBack(t *testing.T) {
	var first, second bytes.Buffer
	restoreFirst := SetOutputForTests(&first)
	restoreSecond := SetOutputForTests(&second)

	Pkg("obstest").Info("to second")
	restoreSecond()
	Pkg("obstest").Info("to first")
	restoreFirst()

	if !strings.Contains(second.String(), "to second") {
		t.Error("override did not capture output")
	}
	if !strings.Contains(first.String(), "to first") {
		t.Error("restore did not return to the previous output")
	}
	if strings.Contains(first.String(), "to second") {
		t.Error("first buffer captured output meant for second")
	}
}
