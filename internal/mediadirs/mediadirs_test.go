package mediadirs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
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

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIsMedia(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.mp4", "e.MOV"} {
		if !IsMedia(name) {
			t.Errorf("IsMedia(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"a.txt", "b.zip", "noext", "c.jpg.bak"} {
		if IsMedia(name) {
			t.Errorf("IsMedia(%q) = true, want false", name)
		}
	}
}

func TestAudit(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "full", "1.jpg"), "x")
	writeFile(t, filepath.Join(root, "full", "2.png"), "x")
	writeFile(t, filepath.Join(root, "thin", "1.jpg"), "x")
	writeFile(t, filepath.Join(root, "thin", "notes.txt"), "x")
	writeFile(t, filepath.Join(root, "stray.jpg"), "x")

	thin, err := Audit(root, 2)
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if len(thin) != 1 {
		t.Fatalf("got %d thin dirs, want 1: %v", len(thin), thin)
	}
	if thin[0].Path != filepath.Join(root, "thin") || thin[0].Count != 1 {
		t.Errorf("unexpected result %+v", thin[0])
	}
}

func TestEradicateDeletes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "set_1", "keep.jpg"), "x")
	writeFile(t, filepath.Join(root, "set_1", "junk.txt"), "x")
	writeFile(t, filepath.Join(root, "set_2", "junk.db"), "x")

	n, err := Eradicate([]string{root}, "", quietLogger())
	if err != nil {
		t.Fatalf("Eradicate: %v", err)
	}
	if n != 2 {
		t.Errorf("got %d removed, want 2", n)
	}
	if _, err := os.Stat(filepath.Join(root, "set_1", "keep.jpg")); err != nil {
		t.Errorf("media file removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "set_1", "junk.txt")); !os.IsNotExist(err) {
		t.Errorf("junk.txt still present")
	}
}

func TestEradicateMovesToOutput(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(root, "set_1", "junk.txt"), "hello")

	n, err := Eradicate([]string{root}, out, quietLogger())
	if err != nil {
		t.Fatalf("Eradicate: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d moved, want 1", n)
	}
	data, err := os.ReadFile(filepath.Join(out, "junk.txt"))
	if err != nil {
		t.Fatalf("read moved file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("moved content = %q", data)
	}
}

func TestMergeGroupsByArtistID(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(root, "batch_777", "a.jpg"), "aa")
	writeFile(t, filepath.Join(root, "other_777", "b.png"), "bb")
	writeFile(t, filepath.Join(root, "solo_888", "c.gif"), "cc")

	n, err := Merge(MergeOptions{
		InputDirs: []string{root},
		OutputDir: out,
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if n != 3 {
		t.Errorf("processed %d files, want 3", n)
	}

	// The first directory seen for id 777 is reused for the second.
	first := filepath.Join(out, "batch_777")
	for _, name := range []string{"a.jpg", "b.png"} {
		if _, err := os.Stat(filepath.Join(first, name)); err != nil {
			t.Errorf("missing %s in %s: %v", name, first, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "solo_888", "c.gif")); err != nil {
		t.Errorf("missing solo file: %v", err)
	}

	// Copy mode keeps the sources.
	if _, err := os.Stat(filepath.Join(root, "batch_777", "a.jpg")); err != nil {
		t.Errorf("source removed in copy mode: %v", err)
	}
}

func TestMergeCutRemovesSource(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	src := filepath.Join(root, "set_42", "a.jpg")
	writeFile(t, src, "aa")

	if _, err := Merge(MergeOptions{
		InputDirs: []string{root},
		OutputDir: out,
		Cut:       true,
		Logger:    quietLogger(),
	}); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source still present after cut")
	}
	if _, err := os.Stat(filepath.Join(out, "set_42", "a.jpg")); err != nil {
		t.Errorf("missing merged file: %v", err)
	}
}

func TestMergeSkipsLargerExisting(t *testing.T) {
	root := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(root, "set_42", "a.jpg"), "s")
	writeFile(t, filepath.Join(out, "set_42", "a.jpg"), "much larger")

	n, err := Merge(MergeOptions{
		InputDirs: []string{root},
		OutputDir: out,
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if n != 0 {
		t.Errorf("processed %d files, want 0", n)
	}
	data, _ := os.ReadFile(filepath.Join(out, "set_42", "a.jpg"))
	if string(data) != "much larger" {
		t.Errorf("existing file overwritten: %q", data)
	}
}
