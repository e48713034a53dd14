package main

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"sundry/internal/config"
	"sundry/internal/logging"
	"sundry/internal/services/bbdown"
	"sundry/internal/services/ffmpeg"
	"sundry/internal/services/garbro"
	"sundry/internal/services/gitcli"
	"sundry/internal/services/magicpdf"
	"sundry/internal/services/sevenzip"
	"sundry/internal/services/xfoil"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	log     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// configValue returns the loaded config, falling back to defaults when
// loading failed. Commands that can run without a config file use this.
func (c *commandContext) configValue() *config.Config {
	cfg, err := c.ensureConfig()
	if err != nil || cfg == nil {
		def := config.Default()
		return &def
	}
	return cfg
}

func (c *commandContext) logger() *slog.Logger {
	c.logOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger, _ = logging.New(logging.Options{})
		}
		c.log = logger
	})
	return c.log
}

func (c *commandContext) workers() int {
	return c.configValue().Run.Workers
}

func (c *commandContext) toolTimeout() time.Duration {
	return time.Duration(c.configValue().Run.ToolTimeoutSeconds) * time.Second
}

func (c *commandContext) ffmpegClient() (*ffmpeg.Client, error) {
	tools := c.configValue().Tools
	return ffmpeg.New(tools.FFmpeg, tools.FFprobe, ffmpeg.WithTimeout(c.toolTimeout()))
}

func (c *commandContext) xfoilClient(binary string, workers int) (*xfoil.Client, error) {
	if strings.TrimSpace(binary) == "" {
		binary = c.configValue().Tools.XFoil
	}
	return xfoil.New(binary, xfoil.WithTimeout(c.toolTimeout()), xfoil.WithWorkers(workers))
}

func (c *commandContext) sevenZipClient() (*sevenzip.Client, error) {
	return sevenzip.New(c.configValue().Tools.SevenZip, sevenzip.WithTimeout(c.toolTimeout()))
}

func (c *commandContext) magicPDFClient() (*magicpdf.Client, error) {
	return magicpdf.New(c.configValue().Tools.MagicPDF, magicpdf.WithTimeout(c.toolTimeout()))
}

func (c *commandContext) bbdownClient() (*bbdown.Client, error) {
	return bbdown.New(c.configValue().Tools.BBDown, bbdown.WithTimeout(c.toolTimeout()))
}

func (c *commandContext) garbroClient(root string) (*garbro.Client, error) {
	if strings.TrimSpace(root) == "" {
		root = c.configValue().Tools.GARbro
	}
	return garbro.New(root, garbro.WithTimeout(c.toolTimeout()))
}

func (c *commandContext) gitClient() (*gitcli.Client, error) {
	return gitcli.New(c.configValue().Tools.Git, gitcli.WithTimeout(c.toolTimeout()))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
