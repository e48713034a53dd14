package batchdl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"sundry/internal/execx"
	"sundry/internal/services/bbdown"
)

type stubExecutor struct {
	specs   []execx.Spec
	failURL string
}

func (s *stubExecutor) Run(_ context.Context, spec execx.Spec, _ func(string)) error {
	s.specs = append(s.specs, spec)
	if s.failURL != "" && spec.Args[len(spec.Args)-1] == s.failURL {
		return fmt.Errorf("exit status 1")
	}
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, stub *stubExecutor) *bbdown.Client {
	t.Helper()
	client, err := bbdown.New("bbdown", bbdown.WithExecutor(stub))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestCollectEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.csv")
	content := "title,url\nfirst,https://v/1\nsecond,https://v/2\n,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	entries, err := CollectEntries([]string{path, filepath.Join(dir, "missing.csv")}, "url", "title")
	if err != nil {
		t.Fatalf("CollectEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(entries), entries)
	}
	if entries[0] != (Entry{URL: "https://v/1", Title: "first"}) {
		t.Errorf("entry 0 = %+v", entries[0])
	}
}

func TestCollectEntriesRaggedRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.csv")
	// Second row stops at the url column; third is complete.
	content := "title,extra,url\nfirst,x,https://v/1\nshort\nthird,y,https://v/3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	entries, err := CollectEntries([]string{path}, "url", "title")
	if err != nil {
		t.Fatalf("CollectEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(entries), entries)
	}
	if entries[0] != (Entry{URL: "https://v/1", Title: "first"}) {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1] != (Entry{URL: "https://v/3", Title: "third"}) {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestCollectEntriesShortRowMissingTitle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.csv")
	// The url column exists on the short row but the title column does not.
	content := "url,name,title\nhttps://v/1,a,first\nhttps://v/2,b\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	entries, err := CollectEntries([]string{path}, "url", "title")
	if err != nil {
		t.Fatalf("CollectEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2: %v", len(entries), entries)
	}
	if entries[1] != (Entry{URL: "https://v/2", Title: ""}) {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestRunSkipsExistingTitles(t *testing.T) {
	work := t.TempDir()
	if err := os.WriteFile(filepath.Join(work, "done.mp4"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	stub := &stubExecutor{}
	n, err := Run(context.Background(), newClient(t, stub), Options{
		Entries: []Entry{
			{URL: "https://v/1", Title: "done"},
			{URL: "https://v/2", Title: "fresh"},
		},
		WorkDir: work,
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 1 {
		t.Errorf("downloaded %d entries, want 1", n)
	}
	if len(stub.specs) != 1 {
		t.Fatalf("got %d invocations, want 1", len(stub.specs))
	}
	args := stub.specs[0].Args
	if args[len(args)-1] != "https://v/2" {
		t.Errorf("downloaded wrong URL: %v", args)
	}
	if args[0] != "--work-dir" || args[1] != work {
		t.Errorf("work dir flags missing: %v", args)
	}
}

func TestRunFailureIsNotFatal(t *testing.T) {
	stub := &stubExecutor{failURL: "https://v/bad"}
	n, err := Run(context.Background(), newClient(t, stub), Options{
		Entries: []Entry{
			{URL: "https://v/bad", Title: "bad"},
			{URL: "https://v/good", Title: "good"},
		},
		WorkDir: t.TempDir(),
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 1 {
		t.Errorf("downloaded %d entries, want 1", n)
	}
	if len(stub.specs) != 2 {
		t.Errorf("got %d invocations, want 2", len(stub.specs))
	}
}

func TestRunRangeBounds(t *testing.T) {
	stub := &stubExecutor{}
	entries := []Entry{
		{URL: "https://v/1", Title: "a"},
		{URL: "https://v/2", Title: "b"},
		{URL: "https://v/3", Title: "c"},
	}
	n, err := Run(context.Background(), newClient(t, stub), Options{
		Entries: entries,
		WorkDir: t.TempDir(),
		Start:   1,
		End:     2,
		Logger:  quietLogger(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n != 1 || len(stub.specs) != 1 {
		t.Fatalf("processed %d downloads with %d invocations, want 1 and 1", n, len(stub.specs))
	}
	args := stub.specs[0].Args
	if args[len(args)-1] != "https://v/2" {
		t.Errorf("wrong entry selected: %v", args)
	}
}

func TestRunSleepsBetweenDownloads(t *testing.T) {
	stub := &stubExecutor{}
	var pauses []time.Duration
	_, err := Run(context.Background(), newClient(t, stub), Options{
		Entries: []Entry{
			{URL: "https://v/1", Title: "a"},
			{URL: "https://v/2", Title: "b"},
		},
		WorkDir:  t.TempDir(),
		Interval: 6 * time.Second,
		Sleep:    func(d time.Duration) { pauses = append(pauses, d) },
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(pauses) != 1 {
		t.Fatalf("got %d pauses, want 1", len(pauses))
	}
	if pauses[0] < 3*time.Second || pauses[0] > 4*time.Second {
		t.Errorf("pause = %v, want within [3s, 4s]", pauses[0])
	}
}

func TestDeleteNumericDirs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"123", "456", "keep", "7a"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	if err := DeleteNumericDirs(dir, quietLogger()); err != nil {
		t.Fatalf("DeleteNumericDirs: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 {
		t.Errorf("remaining dirs = %v, want keep and 7a", names)
	}
}
