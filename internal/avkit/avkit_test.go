package avkit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"sundry/internal/execx"
	"sundry/internal/services/ffmpeg"
)

type stubExecutor struct {
	mu        sync.Mutex
	specs     []execx.Spec
	durations map[string]string
	failInput string
}

func (s *stubExecutor) Run(_ context.Context, spec execx.Spec, onLine func(string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specs = append(s.specs, spec)

	if spec.Binary == "ffprobe" {
		path := spec.Args[len(spec.Args)-1]
		if onLine != nil {
			onLine(s.durations[filepath.Base(path)])
		}
		return nil
	}
	for _, arg := range spec.Args {
		if s.failInput != "" && strings.Contains(arg, s.failInput) {
			return os.ErrInvalid
		}
	}
	return nil
}

func (s *stubExecutor) ffmpegCalls() []execx.Spec {
	s.mu.Lock()
	defer s.mu.Unlock()
	var calls []execx.Spec
	for _, spec := range s.specs {
		if spec.Binary == "ffmpeg" {
			calls = append(calls, spec)
		}
	}
	return calls
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newClient(t *testing.T, stub *stubExecutor) *ffmpeg.Client {
	t.Helper()
	client, err := ffmpeg.New("ffmpeg", "ffprobe", ffmpeg.WithExecutor(stub))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestResampleTreeMirrorsLayout(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeFile(t, filepath.Join(in, "a.flac"))
	writeFile(t, filepath.Join(in, "nested", "b.wav"))

	stub := &stubExecutor{}
	n, err := ResampleTree(context.Background(), newClient(t, stub), ResampleOptions{
		InputDir:    in,
		OutputDir:   out,
		BitrateKbps: 320,
		SampleRate:  48000,
		TargetExt:   "mp3",
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("ResampleTree: %v", err)
	}
	if n != 2 {
		t.Errorf("resampled %d files, want 2", n)
	}

	outputs := make(map[string]bool)
	for _, spec := range stub.ffmpegCalls() {
		outputs[spec.Args[len(spec.Args)-1]] = true
	}
	for _, want := range []string{
		filepath.Join(out, "a.mp3"),
		filepath.Join(out, "nested", "b.mp3"),
	} {
		if !outputs[want] {
			t.Errorf("missing ffmpeg output %s in %v", want, outputs)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "nested")); err != nil {
		t.Errorf("nested output dir not created: %v", err)
	}
}

func TestResampleTreeFailureIsNotFatal(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "good.flac"))
	writeFile(t, filepath.Join(in, "bad.flac"))

	stub := &stubExecutor{failInput: "bad.flac"}
	n, err := ResampleTree(context.Background(), newClient(t, stub), ResampleOptions{
		InputDir:  in,
		OutputDir: t.TempDir(),
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("ResampleTree: %v", err)
	}
	if n != 1 {
		t.Errorf("resampled %d files, want 1", n)
	}
}

func TestCollectVideos(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp4"))
	writeFile(t, filepath.Join(dir, "sub", "b.MKV"))
	writeFile(t, filepath.Join(dir, "c.txt"))

	videos, err := CollectVideos(dir)
	if err != nil {
		t.Fatalf("CollectVideos: %v", err)
	}
	if len(videos) != 2 {
		t.Errorf("got %d videos, want 2: %v", len(videos), videos)
	}
}

func TestConcatShort(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "short.mp4"))
	writeFile(t, filepath.Join(in, "long.mp4"))

	stub := &stubExecutor{durations: map[string]string{
		"short.mp4": "5.0",
		"long.mp4":  "30.0",
	}}
	output := filepath.Join(t.TempDir(), "joined.mp4")
	n, err := ConcatShort(context.Background(), newClient(t, stub), ConcatOptions{
		InputDir:    in,
		Output:      output,
		MaxDuration: 15 * time.Second,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("ConcatShort: %v", err)
	}
	if n != 1 {
		t.Errorf("concatenated %d videos, want 1", n)
	}

	calls := stub.ffmpegCalls()
	if len(calls) != 1 {
		t.Fatalf("got %d ffmpeg calls, want 1", len(calls))
	}
	args := calls[0].Args
	if args[0] != "-f" || args[1] != "concat" || args[len(args)-1] != output {
		t.Errorf("unexpected concat args %v", args)
	}
}

func TestConcatShortNoCandidates(t *testing.T) {
	in := t.TempDir()
	writeFile(t, filepath.Join(in, "long.mp4"))

	stub := &stubExecutor{durations: map[string]string{"long.mp4": "60"}}
	n, err := ConcatShort(context.Background(), newClient(t, stub), ConcatOptions{
		InputDir:    in,
		Output:      filepath.Join(t.TempDir(), "out.mp4"),
		MaxDuration: 15 * time.Second,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("ConcatShort: %v", err)
	}
	if n != 0 {
		t.Errorf("concatenated %d videos, want 0", n)
	}
	if len(stub.ffmpegCalls()) != 0 {
		t.Errorf("unexpected ffmpeg invocation")
	}
}
