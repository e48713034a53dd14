package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"sundry/internal/fileutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCopyFileVerified(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "payload data")

	if err := fileutil.CopyFileVerified(src, dst); err != nil {
		t.Fatalf("CopyFileVerified: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != "payload data" {
		t.Fatalf("dst content = %q", data)
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "sub", "b.txt")
	writeFile(t, src, "move me")
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := fileutil.MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source still exists")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != "move me" {
		t.Fatalf("dst content = %q", data)
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	if got := fileutil.UniquePath(path); got != path {
		t.Fatalf("UniquePath on free path = %q", got)
	}

	writeFile(t, path, "x")
	want := filepath.Join(dir, "report (1).txt")
	if got := fileutil.UniquePath(path); got != want {
		t.Fatalf("UniquePath = %q, want %q", got, want)
	}

	writeFile(t, want, "x")
	want2 := filepath.Join(dir, "report (2).txt")
	if got := fileutil.UniquePath(path); got != want2 {
		t.Fatalf("UniquePath = %q, want %q", got, want2)
	}
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "1234")
	writeFile(t, filepath.Join(dir, "sub", "b.txt"), "56789")

	size, err := fileutil.DirSize(dir)
	if err != nil {
		t.Fatalf("DirSize: %v", err)
	}
	if size != 9 {
		t.Fatalf("DirSize = %d, want 9", size)
	}
}

func TestPruneEmptyDirs(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a", "b", "c"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root, "keep", "file.txt"), "x")

	removed, err := fileutil.PruneEmptyDirs(root)
	if err != nil {
		t.Fatalf("PruneEmptyDirs: %v", err)
	}
	if len(removed) != 3 {
		t.Fatalf("removed %d dirs, want 3: %v", len(removed), removed)
	}
	if _, err := os.Stat(filepath.Join(root, "a")); !os.IsNotExist(err) {
		t.Fatal("empty tree not removed")
	}
	if _, err := os.Stat(filepath.Join(root, "keep", "file.txt")); err != nil {
		t.Fatalf("non-empty tree touched: %v", err)
	}
}
