package avkit

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"sundry/internal/services/ffmpeg"
)

// ConcatOptions configures short-video concatenation.
type ConcatOptions struct {
	InputDir string
	Output   string
	// MaxDuration excludes videos at or above this length.
	MaxDuration time.Duration
	NVENC       bool
	Logger      *slog.Logger
}

// ConcatShort joins every video under the input dir shorter than the cutoff
// into a single output file using the concat demuxer. It returns the number
// of videos concatenated; zero means no candidate was found and no output
// was written.
func ConcatShort(ctx context.Context, client *ffmpeg.Client, opts ConcatOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	videos, err := CollectVideos(opts.InputDir)
	if err != nil {
		return 0, err
	}

	var short []string
	for _, path := range videos {
		duration, err := client.Duration(ctx, path)
		if err != nil {
			logger.Warn("skipping unreadable video", "path", path, "error", err)
			continue
		}
		if duration < opts.MaxDuration {
			short = append(short, path)
		}
	}
	if len(short) == 0 {
		logger.Info("no videos below cutoff", "cutoff", opts.MaxDuration)
		return 0, nil
	}

	listFile, err := writeConcatList(short)
	if err != nil {
		return 0, err
	}
	defer os.Remove(listFile)

	logger.Info("concatenating videos", "count", len(short), "output", opts.Output)
	if err := client.ConcatCopy(ctx, listFile, opts.Output, opts.NVENC); err != nil {
		return 0, err
	}
	return len(short), nil
}

// writeConcatList emits the ffmpeg concat demuxer file list format.
func writeConcatList(paths []string) (string, error) {
	f, err := os.CreateTemp("", "concat-*.txt")
	if err != nil {
		return "", fmt.Errorf("create list file: %w", err)
	}
	var b strings.Builder
	for _, path := range paths {
		fmt.Fprintf(&b, "file '%s'\n", path)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write list file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close list file: %w", err)
	}
	return f.Name(), nil
}
