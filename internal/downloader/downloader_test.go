package downloader

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"https://example.com/a/b/data.zip": "data.zip",
		"https://example.com/report.csv":   "report.csv",
		"https://example.com/":             "example.com",
		"plainstring":                      "downloaded_file",
	}
	for url, want := range cases {
		if got := FileName(url); got != want {
			t.Errorf("FileName(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/files/hello.txt" {
			io.WriteString(w, "hello body")
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	out := t.TempDir()
	client := NewClient(quietLogger())
	path, err := client.Download(context.Background(), server.URL+"/files/hello.txt", out)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if filepath.Base(path) != "hello.txt" {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	if string(data) != "hello body" {
		t.Errorf("content = %q", data)
	}
}

func TestDownloadBadStatus(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := NewClient(quietLogger())
	if _, err := client.Download(context.Background(), server.URL+"/missing", t.TempDir()); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestDownloadFromCSV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/a.txt":
			io.WriteString(w, "aaa")
		case "/b.txt":
			io.WriteString(w, "bbb")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "urls.csv")
	content := "name,link\nfirst," + server.URL + "/a.txt\nsecond," + server.URL + "/b.txt\nbroken," + server.URL + "/missing\n"
	if err := os.WriteFile(csvPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	out := filepath.Join(dir, "downloads")
	client := NewClient(quietLogger(), WithWorkers(2))
	n, err := client.DownloadFromCSV(context.Background(), csvPath, "link", out)
	if err != nil {
		t.Fatalf("DownloadFromCSV: %v", err)
	}
	if n != 2 {
		t.Errorf("downloaded %d files, want 2", n)
	}
	for name, want := range map[string]string{"a.txt": "aaa", "b.txt": "bbb"} {
		data, err := os.ReadFile(filepath.Join(out, name))
		if err != nil {
			t.Errorf("read %s: %v", name, err)
			continue
		}
		if string(data) != want {
			t.Errorf("%s content = %q, want %q", name, data, want)
		}
	}
}

func TestDownloadFromCSVMissingColumn(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "urls.csv")
	if err := os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	client := NewClient(quietLogger())
	if _, err := client.DownloadFromCSV(context.Background(), csvPath, "link", t.TempDir()); err == nil {
		t.Fatal("expected error for missing column")
	}
}
