package verbump

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"sundry/internal/services/gitcli"
)

// RunOptions configures a bump across several project directories.
type RunOptions struct {
	// Patterns are project directories or glob patterns matching them.
	// Every resolved directory must contain a pyproject.toml.
	Patterns []string
	Level    int
	Release  bool
	// GitAware skips projects whose subtree has no pending git changes
	// touching one of the watched extensions.
	GitAware        bool
	WatchExtensions []string
	Git             *gitcli.Client
	Logger          *slog.Logger
	Progress        func()
}

// Result records the outcome for one project directory.
type Result struct {
	Dir     string
	Old     string
	New     string
	Skipped bool
	Reason  string
}

// Run bumps project.version in each resolved project. Projects skipped by
// git gating are reported, not errors; a bump failure aborts the run.
func Run(ctx context.Context, opts RunOptions) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.GitAware && opts.Git == nil {
		return nil, fmt.Errorf("git-aware mode requires a git client")
	}

	dirs, err := resolveProjects(opts.Patterns)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no project directories matched")
	}

	results := make([]Result, 0, len(dirs))
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if opts.GitAware {
			changed, err := opts.Git.HasChangesWithExtensions(ctx, dir, opts.WatchExtensions)
			if err != nil {
				return results, err
			}
			if !changed {
				logger.Info("no watched changes, skipping", "dir", dir)
				results = append(results, Result{Dir: dir, Skipped: true, Reason: "no watched changes"})
				if opts.Progress != nil {
					opts.Progress()
				}
				continue
			}
		}

		oldVersion, newVersion, err := BumpFile(filepath.Join(dir, "pyproject.toml"), opts.Level, opts.Release)
		if err != nil {
			return results, fmt.Errorf("bump %s: %w", dir, err)
		}
		logger.Info("version bumped", "dir", dir, "from", oldVersion, "to", newVersion)
		results = append(results, Result{Dir: dir, Old: oldVersion, New: newVersion})
		if opts.Progress != nil {
			opts.Progress()
		}
	}
	return results, nil
}

// resolveProjects expands each pattern to directories containing a
// pyproject.toml. A literal path that misses the manifest is an error; a
// glob match without one is silently dropped.
func resolveProjects(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	for _, pattern := range patterns {
		if info, err := os.Stat(pattern); err == nil && info.IsDir() {
			if !hasManifest(pattern) {
				return nil, fmt.Errorf("%s has no pyproject.toml", pattern)
			}
			add(filepath.Clean(pattern))
			continue
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				continue
			}
			if hasManifest(match) {
				add(filepath.Clean(match))
			}
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func hasManifest(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "pyproject.toml"))
	return err == nil && info.Mode().IsRegular()
}
