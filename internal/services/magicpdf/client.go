// Package magicpdf wraps the magic-pdf document conversion tool.
package magicpdf

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

// WithTimeout bounds each magic-pdf invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps magic-pdf CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    execx.Executor
}

// New constructs a magic-pdf client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("magic-pdf binary required")
	}
	client := &Client{binary: binary, exec: execx.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ConvertDir runs magic-pdf over every PDF in inputDir, writing results to
// outputDir. Output lines are forwarded to onLine when non-nil.
func (c *Client) ConvertDir(ctx context.Context, inputDir, outputDir string, onLine func(string)) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	args := []string{"-p", inputDir, "-o", outputDir}
	if err := c.exec.Run(ctx, execx.Spec{Binary: c.binary, Args: args}, onLine); err != nil {
		return fmt.Errorf("magic-pdf %s: %w", inputDir, err)
	}
	return nil
}
