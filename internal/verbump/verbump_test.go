package verbump_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"

	"sundry/internal/verbump"
)

func next(t *testing.T, current string, level int, release bool) string {
	t.Helper()
	v, err := semver.NewVersion(current)
	if err != nil {
		t.Fatalf("parse %q: %v", current, err)
	}
	got, err := verbump.Next(v, level, release)
	if err != nil {
		t.Fatalf("Next(%q, %d, %v): %v", current, level, release, err)
	}
	return got.String()
}

func TestNext(t *testing.T) {
	cases := []struct {
		current string
		level   int
		release bool
		want    string
	}{
		{"1.2.3", 0, false, "1.2.3-dev0"},
		{"1.2.3-dev4", 0, false, "1.2.3-dev5"},
		{"1.2.3-rc1", 0, false, "1.2.3-dev0"},
		{"1.2.3-dev4", 0, true, "1.2.3"},
		{"1.2.3", 1, false, "1.2.4-dev0"},
		{"1.2.3-dev4", 2, false, "1.3.0-dev0"},
		{"1.2.3", 3, false, "2.0.0-dev0"},
		{"1.2.3-dev4", 3, true, "2.0.0"},
		{"1.2.3-dev4+build7", 0, false, "1.2.3-dev5+build7"},
		{"1.2.3-dev4+build7", 1, false, "1.2.4-dev0"},
	}
	for _, tc := range cases {
		if got := next(t, tc.current, tc.level, tc.release); got != tc.want {
			t.Errorf("Next(%q, %d, release=%v) = %q, want %q", tc.current, tc.level, tc.release, got, tc.want)
		}
	}
}

func TestNextRejectsLevelOutOfRange(t *testing.T) {
	v := semver.MustParse("1.0.0")
	if _, err := verbump.Next(v, 4, false); err == nil {
		t.Fatal("expected error for level 4")
	}
}

func TestBumpFilePreservesLayout(t *testing.T) {
	content := `[build-system]
requires = ["hatchling"]

[project]
name = "widget"
version = "0.4.1"   # bumped by tooling
description = "a widget"

[tool.pytest.ini_options]
addopts = "-q"
`
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	oldV, newV, err := verbump.BumpFile(path, 1, false)
	if err != nil {
		t.Fatalf("BumpFile: %v", err)
	}
	if oldV != "0.4.1" || newV != "0.4.2-dev0" {
		t.Fatalf("old=%q new=%q", oldV, newV)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	got := string(updated)
	if !strings.Contains(got, `version = "0.4.2-dev0"`) {
		t.Fatalf("version line not rewritten:\n%s", got)
	}
	if !strings.Contains(got, `requires = ["hatchling"]`) || !strings.Contains(got, `addopts = "-q"`) {
		t.Fatalf("other sections disturbed:\n%s", got)
	}
	if !strings.Contains(got, `name = "widget"`) {
		t.Fatalf("project table disturbed:\n%s", got)
	}
}

func TestBumpFileMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	if err := os.WriteFile(path, []byte("[project]\nname = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := verbump.BumpFile(path, 0, false); err == nil {
		t.Fatal("expected error for missing version")
	}
}
