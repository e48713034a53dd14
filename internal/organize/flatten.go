// Package organize reshapes directory trees: flattening, bucketing, size
// reporting, reference-based sync, and batch command execution.
package organize

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sundry/internal/fileutil"
)

// CollisionStrategy decides what happens when a flatten move target exists.
type CollisionStrategy string

const (
	// CollisionAuto renames the destination with a numeric suffix.
	CollisionAuto CollisionStrategy = "auto"
	// CollisionOverride removes the existing destination first.
	CollisionOverride CollisionStrategy = "override"
	// CollisionHalt aborts the run.
	CollisionHalt CollisionStrategy = "halt"
)

// ParseCollisionStrategy validates a strategy name.
func ParseCollisionStrategy(s string) (CollisionStrategy, error) {
	switch CollisionStrategy(strings.ToLower(s)) {
	case CollisionAuto:
		return CollisionAuto, nil
	case CollisionOverride:
		return CollisionOverride, nil
	case CollisionHalt:
		return CollisionHalt, nil
	default:
		return "", fmt.Errorf("unknown collision strategy %q", s)
	}
}

// FlattenOptions configures a directory flattening run.
type FlattenOptions struct {
	InputDir  string
	OutputDir string
	// Depth is how many directory levels to descend before moving contents
	// up. Depth 1 moves the contents of immediate subdirectories.
	Depth    int
	Strategy CollisionStrategy
	Logger   *slog.Logger
}

// Flatten moves the contents of subdirectories at the configured depth into
// the output directory, then removes input subdirectories left empty.
func Flatten(opts FlattenOptions) error {
	if opts.Depth < 1 {
		return fmt.Errorf("depth must be at least 1")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	type job struct {
		dir   string
		depth int
	}
	queue := []job{{dir: opts.InputDir, depth: opts.Depth}}
	for len(queue) > 0 {
		cur := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		if cur.depth == 0 {
			if err := moveDirContents(cur.dir, opts.OutputDir, opts.Strategy, logger); err != nil {
				return err
			}
			continue
		}
		entries, err := os.ReadDir(cur.dir)
		if err != nil {
			return fmt.Errorf("read dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				queue = append(queue, job{dir: filepath.Join(cur.dir, entry.Name()), depth: cur.depth - 1})
			}
		}
	}

	return removeEmptiedSubdirs(opts.InputDir, logger)
}

func moveDirContents(srcDir, destDir string, strategy CollisionStrategy, logger *slog.Logger) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	for _, entry := range entries {
		src := filepath.Join(srcDir, entry.Name())
		dest := filepath.Join(destDir, entry.Name())

		resolved, move, err := resolveCollision(src, dest, strategy, logger)
		if err != nil {
			return err
		}
		if !move {
			continue
		}
		if err := os.Rename(src, resolved); err != nil {
			return fmt.Errorf("move %s: %w", src, err)
		}
		logger.Debug("moved", "from", src, "to", resolved)
	}
	return nil
}

func resolveCollision(src, dest string, strategy CollisionStrategy, logger *slog.Logger) (string, bool, error) {
	if _, err := os.Lstat(dest); os.IsNotExist(err) {
		return dest, true, nil
	}

	switch strategy {
	case CollisionOverride:
		if err := os.RemoveAll(dest); err != nil {
			return "", false, fmt.Errorf("override %s: %w", dest, err)
		}
		logger.Debug("overriding destination", "path", dest)
		return dest, true, nil
	case CollisionHalt:
		return "", false, fmt.Errorf("destination already exists: %s", dest)
	default:
		srcAbs, err1 := filepath.Abs(src)
		destAbs, err2 := filepath.Abs(dest)
		if err1 == nil && err2 == nil && srcAbs == destAbs {
			logger.Debug("skipping self move", "path", src)
			return "", false, nil
		}
		renamed := numberedPath(dest)
		logger.Debug("renaming to avoid collision", "from", dest, "to", renamed)
		return renamed, true, nil
	}
}

// numberedPath appends _1, _2, ... to the stem until the path is free.
func numberedPath(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

func removeEmptiedSubdirs(root string, logger *slog.Logger) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if _, err := fileutil.PruneEmptyDirs(path); err != nil {
			return err
		}
		empty, err := fileutil.IsDirEmpty(path)
		if err != nil {
			return err
		}
		if empty {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("clean %s: %w", path, err)
			}
			logger.Debug("cleaned", "path", path)
		}
	}
	return nil
}
