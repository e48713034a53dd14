package organize

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// PackOptions configures cumulative bucketing of source directories.
type PackOptions struct {
	SourceDir string
	TargetDir string
	// MinBucketSize is the file count at which a bucket is flushed.
	MinBucketSize int
	// UIDSeparator filters source dirs to those whose name contains it.
	UIDSeparator string
	Logger       *slog.Logger
}

// PackIntoBuckets moves source subdirectories into sequentially numbered
// "Nth" target buckets, flushing a bucket once its cumulative file count
// reaches the minimum. Numbering continues after existing buckets.
func PackIntoBuckets(opts PackOptions) error {
	if opts.MinBucketSize <= 0 {
		return fmt.Errorf("minimum bucket size must be positive")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	separator := opts.UIDSeparator
	if separator == "" {
		separator = "_"
	}

	entries, err := os.ReadDir(opts.SourceDir)
	if err != nil {
		return fmt.Errorf("read source dir: %w", err)
	}
	var sources []string
	for _, entry := range entries {
		if entry.IsDir() && strings.Contains(entry.Name(), separator) {
			sources = append(sources, filepath.Join(opts.SourceDir, entry.Name()))
		}
	}
	logger.Info("detected source dirs", "count", len(sources))

	nextIndex, err := nextBucketIndex(opts.TargetDir)
	if err != nil {
		return err
	}

	var pending []string
	var pendingFiles int
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		bucket := filepath.Join(opts.TargetDir, fmt.Sprintf("%dth", nextIndex))
		if err := os.MkdirAll(bucket, 0o755); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("flushing bucket", "bucket", bucket, "dirs", len(pending), "files", pendingFiles)
		for _, src := range pending {
			dest := filepath.Join(bucket, filepath.Base(src))
			if _, err := os.Lstat(dest); err == nil {
				logger.Warn("destination exists, skipping", "path", dest)
				continue
			}
			if err := os.Rename(src, dest); err != nil {
				return fmt.Errorf("move %s: %w", src, err)
			}
		}
		nextIndex++
		pending = pending[:0]
		pendingFiles = 0
		return nil
	}

	for _, src := range sources {
		children, err := os.ReadDir(src)
		if err != nil {
			return fmt.Errorf("read %s: %w", src, err)
		}
		pending = append(pending, src)
		pendingFiles += len(children)

		if pendingFiles >= opts.MinBucketSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}

// nextBucketIndex finds the highest existing "Nth" bucket and returns N+1.
func nextBucketIndex(targetDir string) (int, error) {
	entries, err := os.ReadDir(targetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 1, nil
		}
		return 0, fmt.Errorf("read target dir: %w", err)
	}
	maxIndex := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		num, ok := strings.CutSuffix(entry.Name(), "th")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(num); err == nil && n > maxIndex {
			maxIndex = n
		}
	}
	return maxIndex + 1, nil
}
