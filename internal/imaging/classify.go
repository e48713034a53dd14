// Package imaging sorts image files by their pixel properties: aspect
// ratio buckets, grayscale versus colorful, transparency, and file size.
package imaging

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"sundry/internal/fileutil"
)

var imageExts = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
}

func isImage(name string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// RatioRange is a half-open aspect ratio interval [Min, Max).
type RatioRange struct {
	Min float64
	Max float64
}

func (r RatioRange) contains(ratio float64) bool {
	return ratio >= r.Min && ratio < r.Max
}

// DirName returns the bucket directory name for the range.
func (r RatioRange) DirName() string {
	return "aspect_" + formatRatio(r.Min) + "_" + formatRatio(r.Max)
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseRatioRanges parses a comma-separated list of "min:max" ranges.
func ParseRatioRanges(s string) ([]RatioRange, error) {
	var ranges []RatioRange
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.SplitN(part, ":", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid ratio range %q", part)
		}
		min, err := strconv.ParseFloat(bounds[0], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ratio range %q: %w", part, err)
		}
		max, err := strconv.ParseFloat(bounds[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ratio range %q: %w", part, err)
		}
		ranges = append(ranges, RatioRange{Min: min, Max: max})
	}
	if len(ranges) == 0 {
		return nil, fmt.Errorf("no ratio ranges given")
	}
	return ranges, nil
}

// ClassifyOptions configures an aspect ratio classification run.
type ClassifyOptions struct {
	InputDir  string
	OutputDir string
	Ratios    []RatioRange
	// Move relocates files instead of copying them.
	Move bool
	// CleanEmpty removes directories emptied by the run.
	CleanEmpty bool
	Workers    int
	Logger     *slog.Logger
}

// ClassifyByAspect sorts every image under the input tree into aspect ratio
// bucket directories, preserving the relative layout beneath each bucket.
// Images whose ratio matches no range land in "other". The output directory
// must not already exist. Undecodable images are logged and skipped.
func ClassifyByAspect(opts ClassifyOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Ratios) == 0 {
		return 0, fmt.Errorf("no ratio ranges given")
	}
	if _, err := os.Stat(opts.OutputDir); err == nil {
		return 0, fmt.Errorf("output directory %s already exists", opts.OutputDir)
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	err := filepath.WalkDir(opts.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isImage(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk input dir: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(workerLimit(opts.Workers))
	for _, path := range paths {
		g.Go(func() error {
			if err := classifyOne(path, opts); err != nil {
				logger.Warn("skipping image", "path", path, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if opts.CleanEmpty {
		removed, err := fileutil.PruneEmptyDirs(opts.InputDir)
		if err != nil {
			return len(paths), fmt.Errorf("prune empty dirs: %w", err)
		}
		for _, dir := range removed {
			logger.Debug("removed empty directory", "dir", dir)
		}
	}
	return len(paths), nil
}

func classifyOne(path string, opts ClassifyOptions) error {
	width, height, err := imageDimensions(path)
	if err != nil {
		return err
	}
	ratio := float64(width) / float64(height)

	bucket := "other"
	for _, r := range opts.Ratios {
		if r.contains(ratio) {
			bucket = r.DirName()
			break
		}
	}

	rel, err := filepath.Rel(opts.InputDir, path)
	if err != nil {
		return fmt.Errorf("relativize %s: %w", path, err)
	}
	targetDir := filepath.Join(opts.OutputDir, bucket, filepath.Dir(rel))
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("create bucket dir: %w", err)
	}

	target := filepath.Join(targetDir, filepath.Base(path))
	if opts.Move {
		return fileutil.MoveFile(path, target)
	}
	return fileutil.CopyFile(path, target)
}

func imageDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

func workerLimit(n int) int {
	if n <= 0 {
		return 4
	}
	return n
}
