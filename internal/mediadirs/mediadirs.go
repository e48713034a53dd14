// Package mediadirs curates per-artist media directory trees: auditing thin
// directories, clearing non-media files, and merging files into per-artist
// folders keyed by the trailing id of the directory name.
package mediadirs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sundry/internal/fileutil"
)

var mediaExts = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
	".mp4": {}, ".avi": {}, ".mov": {},
}

// IsMedia reports whether the file name has an image or video extension.
func IsMedia(name string) bool {
	_, ok := mediaExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// AuditResult names a subdirectory whose media count is below the minimum.
type AuditResult struct {
	Path  string
	Count int
}

// Audit checks the immediate subdirectories of inputDir and reports those
// holding fewer than minCount media files.
func Audit(inputDir string, minCount int) ([]AuditResult, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var thin []AuditResult
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(inputDir, entry.Name())
		names, err := fileutil.FileNames(path)
		if err != nil {
			return nil, err
		}
		count := 0
		for _, name := range names {
			if IsMedia(name) {
				count++
			}
		}
		if count < minCount {
			thin = append(thin, AuditResult{Path: path, Count: count})
		}
	}
	sort.Slice(thin, func(i, j int) bool { return thin[i].Path < thin[j].Path })
	return thin, nil
}

// collectFiles walks input dirs two levels deep (inputDir/sub/file) and
// returns the files matching the filter.
func collectFiles(inputDirs []string, match func(string) bool) ([]string, error) {
	var files []string
	for _, dir := range inputDirs {
		subs, err := fileutil.SubdirNames(dir)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, sub := range subs {
			subPath := filepath.Join(dir, sub)
			names, err := fileutil.FileNames(subPath)
			if err != nil {
				return nil, err
			}
			for _, name := range names {
				if match(name) {
					files = append(files, filepath.Join(subPath, name))
				}
			}
		}
	}
	return files, nil
}

// Eradicate removes every non-media file in the subdirectories of the input
// dirs. With outputDir set the files are moved there instead of deleted. It
// returns the number of files handled.
func Eradicate(inputDirs []string, outputDir string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}
	files, err := collectFiles(inputDirs, func(name string) bool { return !IsMedia(name) })
	if err != nil {
		return 0, err
	}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return 0, fmt.Errorf("create output dir: %w", err)
		}
	}

	for i, path := range files {
		if outputDir != "" {
			dest := filepath.Join(outputDir, filepath.Base(path))
			if err := fileutil.MoveFile(path, dest); err != nil {
				return i, fmt.Errorf("move %s: %w", path, err)
			}
		} else {
			if err := os.Remove(path); err != nil {
				return i, fmt.Errorf("remove %s: %w", path, err)
			}
		}
		logger.Debug("eradicated", "path", path)
	}
	return len(files), nil
}

// MergeOptions configures a media merge run.
type MergeOptions struct {
	InputDirs []string
	OutputDir string
	// Cut moves files instead of copying them.
	Cut    bool
	Logger *slog.Logger
	// Progress is called once per processed file.
	Progress func()
}

// Merge gathers the media files beneath the input dirs into per-artist
// directories under the output dir. The artist key is the segment after the
// last underscore of the source directory name; an existing output directory
// containing the key is reused, otherwise the source directory name is kept.
// A file already present at the destination with equal or greater size is
// skipped.
func Merge(opts MergeOptions) (int, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	files, err := collectFiles(opts.InputDirs, IsMedia)
	if err != nil {
		return 0, err
	}
	logger.Info("merging media files", "count", len(files), "output", opts.OutputDir)

	processed := 0
	for _, path := range files {
		parent := filepath.Base(filepath.Dir(path))
		destDir, err := resolveArtistDir(opts.OutputDir, parent)
		if err != nil {
			return processed, err
		}

		dest := filepath.Join(destDir, filepath.Base(path))
		if skipBySize(path, dest) {
			logger.Debug("skipping smaller or equal source", "path", path)
			continue
		}
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return processed, fmt.Errorf("create artist dir: %w", err)
		}
		if opts.Cut {
			err = fileutil.MoveFile(path, dest)
		} else {
			err = fileutil.CopyFile(path, dest)
		}
		if err != nil {
			return processed, fmt.Errorf("merge %s: %w", path, err)
		}
		processed++
		if opts.Progress != nil {
			opts.Progress()
		}
	}
	return processed, nil
}

// resolveArtistDir finds an existing output subdirectory containing the
// artist id, falling back to the source directory name.
func resolveArtistDir(outputDir, sourceName string) (string, error) {
	parts := strings.Split(sourceName, "_")
	artistID := parts[len(parts)-1]

	names, err := fileutil.SubdirNames(outputDir)
	if err != nil {
		return "", fmt.Errorf("read output dir: %w", err)
	}
	for _, name := range names {
		if strings.Contains(name, artistID) {
			return filepath.Join(outputDir, name), nil
		}
	}
	return filepath.Join(outputDir, sourceName), nil
}

func skipBySize(src, dest string) bool {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false
	}
	destInfo, err := os.Stat(dest)
	if err != nil {
		return false
	}
	return destInfo.Size() >= srcInfo.Size()
}
