package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sundry/internal/logging"
)

func TestConsoleHandlerFormatsAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("processed file", "path", "/tmp/a b.txt", "count", 3)

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Fatalf("missing level label: %q", line)
	}
	if !strings.Contains(line, "processed file") {
		t.Fatalf("missing message: %q", line)
	}
	if !strings.Contains(line, `path="/tmp/a b.txt"`) {
		t.Fatalf("expected quoted path attr: %q", line)
	}
	if !strings.Contains(line, "count=3") {
		t.Fatalf("missing count attr: %q", line)
	}
}

func TestConsoleHandlerHonorsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info message should be suppressed: %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Fatalf("warn message missing: %q", out)
	}
}

func TestJSONHandlerRenamesKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Error("boom", "reason", "bad input")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if record["msg"] != "boom" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if record["level"] != "error" {
		t.Fatalf("level = %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("missing ts key")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
