package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir      string `toml:"log_dir"`
	DownloadDir string `toml:"download_dir"`
	ModsDir     string `toml:"mods_dir"`
	OldModsDir  string `toml:"old_mods_dir"`
}

// Tools contains the names or paths of external executables. Bare names are
// resolved through PATH at invocation time.
type Tools struct {
	FFmpeg   string `toml:"ffmpeg"`
	FFprobe  string `toml:"ffprobe"`
	XFoil    string `toml:"xfoil"`
	SevenZip string `toml:"sevenzip"`
	MagicPDF string `toml:"magic_pdf"`
	BBDown   string `toml:"bbdown"`
	GARbro   string `toml:"garbro"`
	Git      string `toml:"git"`
}

// Run contains shared execution settings for commands that fan work out
// across files.
type Run struct {
	Workers            int `toml:"workers"`
	ToolTimeoutSeconds int `toml:"tool_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for sundry.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Tools   Tools   `toml:"tools"`
	Run     Run     `toml:"run"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sundry/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sundry.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.DownloadDir, err = expandPath(c.Paths.DownloadDir); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	if c.Paths.ModsDir, err = expandPath(c.Paths.ModsDir); err != nil {
		return fmt.Errorf("paths.mods_dir: %w", err)
	}
	if c.Paths.OldModsDir, err = expandPath(c.Paths.OldModsDir); err != nil {
		return fmt.Errorf("paths.old_mods_dir: %w", err)
	}

	c.Tools.FFmpeg = normalizeTool(c.Tools.FFmpeg, defaultFFmpeg)
	c.Tools.FFprobe = normalizeTool(c.Tools.FFprobe, defaultFFprobe)
	c.Tools.XFoil = normalizeTool(c.Tools.XFoil, defaultXFoil)
	c.Tools.SevenZip = normalizeTool(c.Tools.SevenZip, defaultSevenZip)
	c.Tools.MagicPDF = normalizeTool(c.Tools.MagicPDF, defaultMagicPDF)
	c.Tools.BBDown = normalizeTool(c.Tools.BBDown, defaultBBDown)
	c.Tools.GARbro = normalizeTool(c.Tools.GARbro, defaultGARbro)
	c.Tools.Git = normalizeTool(c.Tools.Git, defaultGit)

	if c.Run.Workers < 0 {
		c.Run.Workers = 0
	}
	if c.Run.ToolTimeoutSeconds < 0 {
		c.Run.ToolTimeoutSeconds = 0
	}

	c.normalizeLogging()
	return nil
}

func normalizeTool(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if strings.ContainsRune(value, os.PathSeparator) || strings.HasPrefix(value, "~") {
		expanded, err := expandPath(value)
		if err == nil {
			return expanded
		}
	}
	return value
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
