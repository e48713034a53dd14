package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration values for internal consistency.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		problems = append(problems, "tools.ffmpeg must not be empty")
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		problems = append(problems, "tools.ffprobe must not be empty")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format: unsupported value %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level: unsupported value %q", c.Logging.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
