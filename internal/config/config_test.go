package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sundry/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Tools.FFmpeg != "ffmpeg" {
		t.Fatalf("Tools.FFmpeg = %q, want ffmpeg", cfg.Tools.FFmpeg)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[tools]
ffmpeg = "/opt/ffmpeg/bin/ffmpeg"
xfoil = "xfoil-dev"

[run]
workers = 4

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Tools.FFmpeg != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("Tools.FFmpeg = %q", cfg.Tools.FFmpeg)
	}
	if cfg.Tools.XFoil != "xfoil-dev" {
		t.Fatalf("Tools.XFoil = %q", cfg.Tools.XFoil)
	}
	if cfg.Run.Workers != 4 {
		t.Fatalf("Run.Workers = %d", cfg.Run.Workers)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	// Unknown formats normalize back to console rather than failing.
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestValidateRejectsEmptyFFmpeg(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.FFmpeg = "  "
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "tools.ffmpeg") {
		t.Fatalf("error %q does not mention tools.ffmpeg", err)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := config.ExpandPath("~/logs")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "logs") {
		t.Fatalf("ExpandPath = %q", got)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[tools]") {
		t.Fatal("sample config missing [tools] section")
	}
}
