package wavx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func TestNonSilentRegions(t *testing.T) {
	samples := []int{0, 0, 500, 600, 0, 0, 700, 0}
	regions := NonSilentRegions(samples, 100)
	want := []Region{{Start: 2, End: 3}, {Start: 6, End: 6}}
	if len(regions) != len(want) {
		t.Fatalf("got %d regions, want %d: %v", len(regions), len(want), regions)
	}
	for i, r := range regions {
		if r != want[i] {
			t.Errorf("region %d = %+v, want %+v", i, r, want[i])
		}
	}
}

func TestNonSilentRegionsAllSilent(t *testing.T) {
	if regions := NonSilentRegions([]int{0, 1, -2, 3}, 100); regions != nil {
		t.Errorf("got %v, want none", regions)
	}
}

func TestNonSilentRegionsTrailingRun(t *testing.T) {
	regions := NonSilentRegions([]int{0, 200, 300}, 100)
	if len(regions) != 1 || regions[0] != (Region{Start: 1, End: 2}) {
		t.Errorf("got %v", regions)
	}
}

func TestNonSilentRegionsNegativeSamples(t *testing.T) {
	regions := NonSilentRegions([]int{0, -500, 0}, 100)
	if len(regions) != 1 || regions[0] != (Region{Start: 1, End: 1}) {
		t.Errorf("got %v", regions)
	}
}

func TestThresholdFromDB(t *testing.T) {
	if got := ThresholdFromDB(0); got != 32767 {
		t.Errorf("ThresholdFromDB(0) = %d, want 32767", got)
	}
	got := ThresholdFromDB(-60)
	if got < 30 || got > 35 {
		t.Errorf("ThresholdFromDB(-60) = %d, want about 32", got)
	}
}

func writeTestWAV(t *testing.T, path string, samples []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	defer f.Close()
	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: 8000, NumChannels: 1},
		SourceBitDepth: 16,
		Data:           samples,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav: %v", err)
	}
}

func TestStripSilence(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.wav")
	output := filepath.Join(dir, "out.wav")

	samples := []int{0, 0, 0, 10000, 12000, 0, 0, 9000, 0, 0}
	writeTestWAV(t, input, samples)

	stats, err := StripSilence(StripOptions{
		InputPath:   input,
		OutputPath:  output,
		ThresholdDB: -20,
	})
	if err != nil {
		t.Fatalf("StripSilence: %v", err)
	}
	if stats.TotalSamples != len(samples) {
		t.Errorf("TotalSamples = %d, want %d", stats.TotalSamples, len(samples))
	}
	if stats.KeptSamples != 3 || stats.Regions != 2 {
		t.Errorf("stats = %+v, want 3 kept in 2 regions", stats)
	}

	f, err := os.Open(output)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := []int{10000, 12000, 9000}
	if len(buf.Data) != len(want) {
		t.Fatalf("output has %d samples, want %d: %v", len(buf.Data), len(want), buf.Data)
	}
	for i, v := range want {
		if buf.Data[i] != v {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], v)
		}
	}
}
