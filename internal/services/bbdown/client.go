// Package bbdown wraps the BBDown bilibili downloader.
package bbdown

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sundry/internal/execx"
)

// Selection narrows what BBDown fetches for each URL.
type Selection struct {
	VideoOnly bool
	AudioOnly bool
	SubOnly   bool
	CoverOnly bool
	SkipSub   bool
	SkipCover bool
}

func (s Selection) flags() []string {
	var flags []string
	if s.VideoOnly {
		flags = append(flags, "--video-only")
	}
	if s.AudioOnly {
		flags = append(flags, "--audio-only")
	}
	if s.SubOnly {
		flags = append(flags, "--sub-only")
	}
	if s.CoverOnly {
		flags = append(flags, "--cover-only")
	}
	if s.SkipSub {
		flags = append(flags, "--skip-subtitle")
	}
	if s.SkipCover {
		flags = append(flags, "--skip-cover")
	}
	return flags
}

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

// WithTimeout bounds each download.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps BBDown CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    execx.Executor
}

// New constructs a BBDown client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("bbdown binary required")
	}
	client := &Client{binary: binary, exec: execx.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Download fetches one URL into workDir.
func (c *Client) Download(ctx context.Context, url, workDir string, sel Selection) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	args := append([]string{"--work-dir", workDir}, sel.flags()...)
	args = append(args, url)
	if err := c.exec.Run(ctx, execx.Spec{Binary: c.binary, Args: args}, nil); err != nil {
		return fmt.Errorf("bbdown %s: %w", url, err)
	}
	return nil
}
