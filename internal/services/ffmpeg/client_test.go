package ffmpeg_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"sundry/internal/execx"
	"sundry/internal/services/ffmpeg"
)

type stubExecutor struct {
	specs  []execx.Spec
	output string
	err    error
}

func (s *stubExecutor) Run(_ context.Context, spec execx.Spec, onLine func(string)) error {
	s.specs = append(s.specs, spec)
	if s.output != "" && onLine != nil {
		for _, line := range strings.Split(strings.TrimRight(s.output, "\n"), "\n") {
			onLine(line)
		}
	}
	return s.err
}

func TestResampleArgs(t *testing.T) {
	stub := &stubExecutor{}
	client, err := ffmpeg.New("ffmpeg", "ffprobe", ffmpeg.WithExecutor(stub))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := client.Resample(context.Background(), "in.flac", "out.mp3", 320, 48000); err != nil {
		t.Fatalf("Resample: %v", err)
	}
	if len(stub.specs) != 1 {
		t.Fatalf("got %d invocations", len(stub.specs))
	}
	got := strings.Join(stub.specs[0].Args, " ")
	want := "-i in.flac -vn -b:a 320k -ar 48000 -y out.mp3"
	if got != want {
		t.Fatalf("args = %q, want %q", got, want)
	}
}

func TestConcatCopyArgs(t *testing.T) {
	stub := &stubExecutor{}
	client, err := ffmpeg.New("ffmpeg", "ffprobe", ffmpeg.WithExecutor(stub))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := client.ConcatCopy(context.Background(), "list.txt", "out.mp4", false); err != nil {
		t.Fatalf("ConcatCopy: %v", err)
	}
	got := strings.Join(stub.specs[0].Args, " ")
	if got != "-f concat -safe 0 -i list.txt -c copy -y out.mp4" {
		t.Fatalf("args = %q", got)
	}

	if err := client.ConcatCopy(context.Background(), "list.txt", "out.mp4", true); err != nil {
		t.Fatalf("ConcatCopy nvenc: %v", err)
	}
	got = strings.Join(stub.specs[1].Args, " ")
	if !strings.Contains(got, "-c:v h264_nvenc -c:a copy") {
		t.Fatalf("nvenc args = %q", got)
	}
}

func TestDurationParsesSeconds(t *testing.T) {
	stub := &stubExecutor{output: "12.480000\n"}
	client, err := ffmpeg.New("ffmpeg", "ffprobe", ffmpeg.WithExecutor(stub))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	d, err := client.Duration(context.Background(), "clip.mp4")
	if err != nil {
		t.Fatalf("Duration: %v", err)
	}
	if d != time.Duration(12.48*float64(time.Second)) {
		t.Fatalf("duration = %v", d)
	}
	if stub.specs[0].Binary != "ffprobe" {
		t.Fatalf("binary = %q, want ffprobe", stub.specs[0].Binary)
	}
}

func TestDurationRejectsGarbage(t *testing.T) {
	stub := &stubExecutor{output: "N/A\n"}
	client, err := ffmpeg.New("ffmpeg", "ffprobe", ffmpeg.WithExecutor(stub))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := client.Duration(context.Background(), "clip.mp4"); err == nil {
		t.Fatal("expected parse error")
	}
}
