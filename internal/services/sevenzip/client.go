// Package sevenzip wraps the 7z command line archiver.
package sevenzip

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

// WithTimeout bounds each 7z invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps 7z CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    execx.Executor
}

// New constructs a 7z client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("7z binary required")
	}
	client := &Client{binary: binary, exec: execx.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) run(ctx context.Context, args []string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.exec.Run(ctx, execx.Spec{Binary: c.binary, Args: args}, func(string) {})
}

// Add creates or updates an archive with the given paths.
func (c *Client) Add(ctx context.Context, archive string, paths []string) error {
	if len(paths) == 0 {
		return errors.New("no paths to archive")
	}
	args := append([]string{"a", archive}, paths...)
	if err := c.run(ctx, args); err != nil {
		return fmt.Errorf("7z add %s: %w", archive, err)
	}
	return nil
}

// Extract unpacks archive into destDir.
func (c *Client) Extract(ctx context.Context, archive, destDir string) error {
	args := []string{"x", archive, "-o" + destDir, "-y"}
	if err := c.run(ctx, args); err != nil {
		return fmt.Errorf("7z extract %s: %w", archive, err)
	}
	return nil
}
