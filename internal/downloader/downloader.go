// Package downloader fetches files listed in a CSV column over HTTP.
package downloader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"sundry/internal/csvkit"
)

const defaultTimeout = 5 * time.Minute

// Client downloads files into an output directory.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	workers    int
}

// Option adjusts Client behavior.
type Option func(*Client)

// WithHTTPClient substitutes the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithWorkers caps the number of concurrent downloads.
func WithWorkers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

// NewClient constructs a download client.
func NewClient(logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
		workers:    4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FileName derives the local file name from the last path segment of the
// URL.
func FileName(url string) string {
	trimmed := strings.TrimSuffix(url, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		if name := trimmed[idx+1:]; name != "" {
			return name
		}
	}
	return "downloaded_file"
}

// Download fetches a single URL into the output directory.
func (c *Client) Download(ctx context.Context, url, outputDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	path := filepath.Join(outputDir, FileName(url))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	c.logger.Info("downloaded", "url", url, "path", path)
	return path, nil
}

// DownloadFromCSV reads the named column of a CSV file and downloads every
// URL concurrently. Individual failures are logged; the returned count
// covers successful downloads only.
func (c *Client) DownloadFromCSV(ctx context.Context, csvPath, column, outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}

	table, err := csvkit.ReadFile(csvPath)
	if err != nil {
		return 0, err
	}
	urls, err := table.Column(column)
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	succeeded := make(chan struct{}, len(urls))
	for _, url := range urls {
		if url == "" {
			continue
		}
		g.Go(func() error {
			if _, err := c.Download(ctx, url, outputDir); err != nil {
				c.logger.Error("download failed", "url", url, "error", err)
				return nil
			}
			succeeded <- struct{}{}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	close(succeeded)
	return len(succeeded), nil
}
