package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
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

// WithTimeout bounds each ffmpeg/ffprobe invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// Client wraps ffmpeg and ffprobe CLI interactions.
type Client struct {
	ffmpeg  string
	ffprobe string
	timeout time.Duration
	exec    execx.Executor
}

// New constructs an ffmpeg client.
func New(ffmpegBinary, ffprobeBinary string, opts ...Option) (*Client, error) {
	ffmpegBinary = strings.TrimSpace(ffmpegBinary)
	ffprobeBinary = strings.TrimSpace(ffprobeBinary)
	if ffmpegBinary == "" || ffprobeBinary == "" {
		return nil, errors.New("ffmpeg and ffprobe binaries required")
	}
	client := &Client{
		ffmpeg:  ffmpegBinary,
		ffprobe: ffprobeBinary,
		exec:    execx.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) run(ctx context.Context, binary string, args []string) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.exec.Run(ctx, execx.Spec{Binary: binary, Args: args}, func(string) {})
}

// Resample transcodes input to output dropping any video stream, at the
// given audio bitrate (kbps) and sample rate (Hz).
func (c *Client) Resample(ctx context.Context, input, output string, bitrateKbps, sampleRate int) error {
	args := []string{
		"-i", input,
		"-vn",
		"-b:a", fmt.Sprintf("%dk", bitrateKbps),
		"-ar", strconv.Itoa(sampleRate),
		"-y", output,
	}
	if err := c.run(ctx, c.ffmpeg, args); err != nil {
		return fmt.Errorf("ffmpeg resample %s: %w", input, err)
	}
	return nil
}

// ConcatCopy joins the files named in listFile (concat demuxer syntax) into
// output. With nvenc the video stream is re-encoded on the GPU instead of
// stream-copied.
func (c *Client) ConcatCopy(ctx context.Context, listFile, output string, nvenc bool) error {
	args := []string{"-f", "concat", "-safe", "0", "-i", listFile}
	if nvenc {
		args = append(args, "-c:v", "h264_nvenc", "-c:a", "copy")
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args, "-y", output)
	if err := c.run(ctx, c.ffmpeg, args); err != nil {
		return fmt.Errorf("ffmpeg concat: %w", err)
	}
	return nil
}

// Duration probes the container duration of a media file.
func (c *Client) Duration(ctx context.Context, path string) (time.Duration, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	out, err := execx.Output(ctx, c.exec, execx.Spec{Binary: c.ffprobe, Args: args})
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(out), err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
