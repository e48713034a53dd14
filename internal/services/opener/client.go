// Package opener shells out to the platform file browser.
package opener

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"

	"sundry/internal/execx"
)

// Option customizes the opener client.
type Option func(*Client)

// WithExecutor overrides the process executor, primarily for tests.
func WithExecutor(exec execx.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout bounds the launch invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client launches the system file browser on a path.
type Client struct {
	binary  string
	timeout time.Duration
	exec    execx.Executor
}

// DefaultBinary returns the platform's directory opener.
func DefaultBinary() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}

// New constructs an opener client. An empty binary selects the platform
// default.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary()
	}
	if binary == "" {
		return nil, errors.New("opener binary required")
	}
	client := &Client{binary: binary, exec: execx.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Open points the file browser at path.
func (c *Client) Open(ctx context.Context, path string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.exec.Run(ctx, execx.Spec{Binary: c.binary, Args: []string{path}}, nil)
}
