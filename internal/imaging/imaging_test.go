package imaging

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func solidImage(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func grayImage(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 128})
		}
	}
	return img
}

func TestParseRatioRanges(t *testing.T) {
	ranges, err := ParseRatioRanges("0:1,1:8")
	if err != nil {
		t.Fatalf("ParseRatioRanges: %v", err)
	}
	if len(ranges) != 2 || ranges[0] != (RatioRange{0, 1}) || ranges[1] != (RatioRange{1, 8}) {
		t.Errorf("unexpected ranges %v", ranges)
	}
	if ranges[1].DirName() != "aspect_1_8" {
		t.Errorf("DirName = %q", ranges[1].DirName())
	}

	for _, bad := range []string{"", "1", "a:b", "1:2:3,"} {
		if _, err := ParseRatioRanges(bad); err == nil {
			t.Errorf("ParseRatioRanges(%q) succeeded, want error", bad)
		}
	}
}

func TestClassifyByAspect(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "classified")
	writePNG(t, filepath.Join(in, "set", "wide.png"), solidImage(4, 1, color.NRGBA{255, 0, 0, 255}))
	writePNG(t, filepath.Join(in, "tall.png"), solidImage(1, 4, color.NRGBA{0, 255, 0, 255}))

	n, err := ClassifyByAspect(ClassifyOptions{
		InputDir:  in,
		OutputDir: out,
		Ratios:    []RatioRange{{0, 1}, {1, 8}},
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("ClassifyByAspect: %v", err)
	}
	if n != 2 {
		t.Errorf("classified %d images, want 2", n)
	}

	if _, err := os.Stat(filepath.Join(out, "aspect_1_8", "set", "wide.png")); err != nil {
		t.Errorf("wide image misplaced: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "aspect_0_1", "tall.png")); err != nil {
		t.Errorf("tall image misplaced: %v", err)
	}

	// Copy mode keeps sources.
	if _, err := os.Stat(filepath.Join(in, "tall.png")); err != nil {
		t.Errorf("source removed in copy mode: %v", err)
	}
}

func TestClassifyByAspectUnmatchedGoesToOther(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "classified")
	writePNG(t, filepath.Join(in, "huge.png"), solidImage(10, 1, color.NRGBA{0, 0, 255, 255}))

	if _, err := ClassifyByAspect(ClassifyOptions{
		InputDir:  in,
		OutputDir: out,
		Ratios:    []RatioRange{{0, 1}},
		Logger:    quietLogger(),
	}); err != nil {
		t.Fatalf("ClassifyByAspect: %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "other", "huge.png")); err != nil {
		t.Errorf("unmatched image not in other: %v", err)
	}
}

func TestClassifyByAspectRefusesExistingOutput(t *testing.T) {
	if _, err := ClassifyByAspect(ClassifyOptions{
		InputDir:  t.TempDir(),
		OutputDir: t.TempDir(),
		Ratios:    []RatioRange{{0, 1}},
		Logger:    quietLogger(),
	}); err == nil {
		t.Fatal("expected error for existing output directory")
	}
}

func TestIdentify(t *testing.T) {
	dir := t.TempDir()

	grayPath := filepath.Join(dir, "gray.png")
	writePNG(t, grayPath, grayImage(2, 2))
	props, err := Identify(grayPath)
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if !props.Grayscale || props.Transparent {
		t.Errorf("gray image props = %+v", props)
	}

	transPath := filepath.Join(dir, "trans.png")
	writePNG(t, transPath, solidImage(2, 2, color.NRGBA{255, 0, 0, 128}))
	props, err = Identify(transPath)
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if props.Grayscale || !props.Transparent {
		t.Errorf("transparent image props = %+v", props)
	}
}

func TestIsGrayscale(t *testing.T) {
	dir := t.TempDir()

	neutral := filepath.Join(dir, "neutral.png")
	writePNG(t, neutral, solidImage(4, 4, color.NRGBA{100, 100, 100, 255}))
	gray, err := IsGrayscale(neutral, 0.02)
	if err != nil {
		t.Fatalf("IsGrayscale: %v", err)
	}
	if !gray {
		t.Error("neutral image not detected as grayscale")
	}

	red := filepath.Join(dir, "red.png")
	writePNG(t, red, solidImage(4, 4, color.NRGBA{255, 0, 0, 255}))
	gray, err = IsGrayscale(red, 0.02)
	if err != nil {
		t.Fatalf("IsGrayscale: %v", err)
	}
	if gray {
		t.Error("red image detected as grayscale")
	}

	margin, err := GrayscaleMargin(red, 0.02)
	if err != nil {
		t.Fatalf("GrayscaleMargin: %v", err)
	}
	if margin <= 0 {
		t.Errorf("margin = %v, want positive for colorful image", margin)
	}
}

func TestExtractGrayscale(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writePNG(t, filepath.Join(in, "gray.png"), grayImage(2, 2))
	writePNG(t, filepath.Join(in, "red.png"), solidImage(2, 2, color.NRGBA{255, 0, 0, 255}))

	n, err := Extract(ExtractOptions{
		InputDir:  in,
		OutputDir: out,
		Filter:    FilterGrayscale,
		Threshold: 0.02,
		Logger:    quietLogger(),
	})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if n != 1 {
		t.Errorf("extracted %d images, want 1", n)
	}
	if _, err := os.Stat(filepath.Join(out, "gray.png")); err != nil {
		t.Errorf("gray image not extracted: %v", err)
	}
	if _, err := os.Stat(filepath.Join(in, "red.png")); err != nil {
		t.Errorf("colorful image moved: %v", err)
	}
}

func TestExtractDefaultOutputInsideInputIsSkipped(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "trans.png"), solidImage(2, 2, color.NRGBA{0, 0, 0, 0}))

	n, err := Extract(ExtractOptions{InputDir: in, Filter: FilterTransparent, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if n != 1 {
		t.Fatalf("extracted %d images, want 1", n)
	}

	// A second run must not re-extract from the output directory.
	n, err = Extract(ExtractOptions{InputDir: in, Filter: FilterTransparent, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("second Extract: %v", err)
	}
	if n != 0 {
		t.Errorf("second run extracted %d images, want 0", n)
	}
}

func TestExtractSmall(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	small := filepath.Join(in, "small.png")
	writePNG(t, small, solidImage(1, 1, color.NRGBA{0, 0, 0, 255}))

	big := filepath.Join(in, "big.png")
	writePNG(t, big, solidImage(1, 1, color.NRGBA{0, 0, 0, 255}))
	padding := make([]byte, 64*1024)
	f, err := os.OpenFile(big, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open big: %v", err)
	}
	if _, err := f.Write(padding); err != nil {
		t.Fatalf("pad big: %v", err)
	}
	f.Close()

	n, err := ExtractSmall(SmallOptions{
		InputDir:    in,
		OutputDir:   out,
		SizeLimitMB: 0.01,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("ExtractSmall: %v", err)
	}
	if n != 1 {
		t.Errorf("moved %d images, want 1", n)
	}
	if _, err := os.Stat(filepath.Join(out, "small.png")); err != nil {
		t.Errorf("small image not moved: %v", err)
	}
	if _, err := os.Stat(big); err != nil {
		t.Errorf("big image moved: %v", err)
	}
}
