package organize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"sundry/internal/execx"
)

// CollectDirs lists subdirectories of root, optionally recursing, skipping
// directories whose name contains exclude.
func CollectDirs(root string, recursive bool, exclude string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if exclude != "" && strings.Contains(entry.Name(), exclude) {
			continue
		}
		path := filepath.Join(root, entry.Name())
		dirs = append(dirs, path)
		if recursive {
			sub, err := CollectDirs(path, true, exclude)
			if err != nil {
				return nil, err
			}
			dirs = append(dirs, sub...)
		}
	}
	return dirs, nil
}

// RunInDirsOptions configures a batch command run.
type RunInDirsOptions struct {
	Command []string
	DryRun  bool
	Workers int
	Exec    execx.Executor
	Logger  *slog.Logger
}

// RunInDirs executes the command once per directory, in parallel. A failing
// command is logged, not fatal.
func RunInDirs(ctx context.Context, dirs []string, opts RunInDirsOptions) error {
	if len(opts.Command) == 0 {
		return fmt.Errorf("command required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	exec := opts.Exec
	if exec == nil {
		exec = execx.CommandExecutor{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	var group errgroup.Group
	group.SetLimit(workers)
	for _, dir := range dirs {
		group.Go(func() error {
			if opts.DryRun {
				logger.Info("would run", "dir", dir, "command", strings.Join(opts.Command, " "))
				return nil
			}
			logger.Info("entering directory", "dir", dir)
			spec := execx.Spec{Binary: opts.Command[0], Args: opts.Command[1:], Dir: dir}
			if err := exec.Run(ctx, spec, nil); err != nil {
				logger.Error("command failed", "dir", dir, "error", err)
			}
			return ctx.Err()
		})
	}
	return group.Wait()
}
