// Package avkit batches audio and video work through the ffmpeg client:
// tree-mirrored audio resampling and short-video concatenation.
package avkit

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sundry/internal/services/ffmpeg"
)

// ResampleOptions configures a batch resample run.
type ResampleOptions struct {
	InputDir    string
	OutputDir   string
	BitrateKbps int
	SampleRate  int
	// TargetExt without the leading dot, for example "mp3".
	TargetExt string
	Workers   int
	Logger    *slog.Logger
}

// ResampleTree re-encodes every file under the input tree into a mirrored
// output tree with the target extension. Per-file failures are logged and
// skipped. It returns the number of files that converted cleanly.
func ResampleTree(ctx context.Context, client *ffmpeg.Client, opts ResampleOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TargetExt == "" {
		opts.TargetExt = "mp3"
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string
	err := filepath.WalkDir(opts.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walk input dir: %w", err)
	}

	var g errgroup.Group
	g.SetLimit(workerLimit(opts.Workers))
	succeeded := make(chan string, len(paths))
	for _, path := range paths {
		g.Go(func() error {
			rel, err := filepath.Rel(opts.InputDir, path)
			if err != nil {
				return fmt.Errorf("relativize %s: %w", path, err)
			}
			output := swapExtension(filepath.Join(opts.OutputDir, rel), opts.TargetExt)
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("create output subdir: %w", err)
			}
			if err := client.Resample(ctx, path, output, opts.BitrateKbps, opts.SampleRate); err != nil {
				logger.Error("resample failed", "path", path, "error", err)
				return nil
			}
			logger.Info("resampled", "output", output)
			succeeded <- output
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	close(succeeded)
	count := 0
	for range succeeded {
		count++
	}
	return count, nil
}

func swapExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + strings.TrimPrefix(ext, ".")
}

var videoExts = map[string]struct{}{
	".mp4": {}, ".avi": {}, ".mkv": {},
}

// CollectVideos walks dir for mp4/avi/mkv files in sorted order.
func CollectVideos(dir string) ([]string, error) {
	var videos []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := videoExts[strings.ToLower(filepath.Ext(path))]; ok {
			videos = append(videos, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(videos)
	return videos, nil
}

func workerLimit(n int) int {
	if n <= 0 {
		return 4
	}
	return n
}
