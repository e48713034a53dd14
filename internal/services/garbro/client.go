// Package garbro wraps the GARbro archive browser's console and image
// conversion executables. GARbro ships as a directory of .exe files, so the
// client is rooted at that directory.
package garbro

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"sundry/internal/execx"
)

const (
	consoleExe = "GARbro.Console.exe"
	guiExe     = "GARbro.GUI.exe"
	imageExe   = "Image.Convert.exe"
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

// WithTimeout bounds each invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps GARbro CLI interactions.
type Client struct {
	root    string
	timeout time.Duration
	exec    execx.Executor
}

// New constructs a GARbro client from the installation root directory.
func New(root string, opts ...Option) (*Client, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New("garbro root directory required")
	}
	client := &Client{root: root, exec: execx.CommandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) run(ctx context.Context, exe string, args []string, dir string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.exec.Run(ctx, execx.Spec{
		Binary: filepath.Join(c.root, exe),
		Args:   args,
		Dir:    dir,
	}, func(string) {})
}

// Extract unpacks an archive into destDir using the console executable,
// which extracts into its working directory.
func (c *Client) Extract(ctx context.Context, archive, destDir string) error {
	if err := c.run(ctx, consoleExe, []string{"-x", archive}, destDir); err != nil {
		return fmt.Errorf("garbro extract %s: %w", archive, err)
	}
	return nil
}

// ConvertToPNG converts one image file to PNG in destDir.
func (c *Client) ConvertToPNG(ctx context.Context, image, destDir string) error {
	if err := c.run(ctx, imageExe, []string{"-t", "PNG", image}, destDir); err != nil {
		return fmt.Errorf("garbro convert %s: %w", image, err)
	}
	return nil
}

// LaunchGUI opens a file in the GARbro GUI.
func (c *Client) LaunchGUI(ctx context.Context, file string) error {
	if err := c.run(ctx, guiExe, []string{file}, ""); err != nil {
		return fmt.Errorf("garbro gui: %w", err)
	}
	return nil
}

// LaunchImageConverter opens the standalone image converter.
func (c *Client) LaunchImageConverter(ctx context.Context) error {
	if err := c.run(ctx, imageExe, nil, ""); err != nil {
		return fmt.Errorf("garbro image converter: %w", err)
	}
	return nil
}
