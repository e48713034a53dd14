// Package gitcli reads git working-tree state through the git executable.
package gitcli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sundry/internal/execx"
)

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec execx.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout bounds each git invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps git CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    execx.Executor
}

// New constructs a git client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("git binary required")
	}
	client := &Client{binary: binary, exec: execx.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ChangedPaths returns the repo-relative paths reported by
// `git status --porcelain` for dir, untracked files included.
func (c *Client) ChangedPaths(ctx context.Context, dir string) ([]string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	args := []string{"status", "--porcelain", "--untracked-files=all", "--", "."}
	out, err := execx.Output(ctx, c.exec, execx.Spec{Binary: c.binary, Args: args, Dir: dir})
	if err != nil {
		return nil, fmt.Errorf("git status in %s: %w", dir, err)
	}
	return parsePorcelain(out), nil
}

// parsePorcelain extracts pathnames from porcelain v1 status lines. Renames
// report "old -> new"; the new name is kept.
func parsePorcelain(out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}
		path = strings.Trim(path, `"`)
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

// HasChangesWithExtensions reports whether any changed path under dir has
// one of the given extensions (without leading dot).
func (c *Client) HasChangesWithExtensions(ctx context.Context, dir string, extensions []string) (bool, error) {
	paths, err := c.ChangedPaths(ctx, dir)
	if err != nil {
		return false, err
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			allowed[strings.ToLower(ext)] = struct{}{}
		}
	}
	for _, path := range paths {
		idx := strings.LastIndexByte(path, '.')
		if idx < 0 || idx == len(path)-1 {
			continue
		}
		if _, ok := allowed[strings.ToLower(path[idx+1:])]; ok {
			return true, nil
		}
	}
	return false, nil
}
