package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jd3600/sonar/internal/types"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Pipelines   PipelinesConfig   `yaml:"pipelines"`
	Paths       PathsConfig       `yaml:"paths"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Probe       ProbeConfig       `yaml:"probe"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Collector   CollectorConfig   `yaml:"collector"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type PipelinesConfig struct {
	Audio PipelineConfig `yaml:"audio"`
	Video PipelineConfig `yaml:"video"`
}

type PipelineConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Input      string   `yaml:"input"`
	Processed  string   `yaml:"processed"`
	Extensions []string `yaml:"extensions"`
	// Prompt overrides the built-in analysis prompt.
	Prompt string `yaml:"prompt"`
	// ScanExisting processes files already in Input when serving starts.
	ScanExisting bool `yaml:"scan_existing"`
}

type PathsConfig struct {
	Pending    string `yaml:"pending"`
	Collection string `yaml:"collection"`
	Journal    string `yaml:"journal"`
	Archive    string `yaml:"archive"`
	Reports    string `yaml:"reports"`
	Dashboard  string `yaml:"dashboard"`
}

type GeminiConfig struct {
	Model       string        `yaml:"model"`
	APIKeys     []string      `yaml:"api_keys"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
	MaxInlineMB int           `yaml:"max_inline_mb"`
}

type ProbeConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent"`
	SettleDelay   time.Duration `yaml:"settle_delay"`
}

type CollectorConfig struct {
	AutoCollect bool `yaml:"auto_collect"`
}

// Pipeline returns the settings of one media kind.
func (c *Config) Pipeline(kind types.MediaKind) PipelineConfig {
	if kind == types.Video {
		return c.Pipelines.Video
	}
	return c.Pipelines.Audio
}

func (c *Config) Validate() error {
	if !c.Pipelines.Audio.Enabled && !c.Pipelines.Video.Enabled {
		return fmt.Errorf("at least one of pipelines.audio or pipelines.video must be enabled")
	}
	if c.Pipelines.Audio.Enabled && c.Pipelines.Audio.Input == "" {
		return fmt.Errorf("pipelines.audio.input is required")
	}
	if c.Pipelines.Video.Enabled && c.Pipelines.Video.Input == "" {
		return fmt.Errorf("pipelines.video.input is required")
	}
	if c.Paths.Pending == "" {
		return fmt.Errorf("paths.pending is required")
	}
	if c.Paths.Collection == "" {
		return fmt.Errorf("paths.collection is required")
	}
	if c.Gemini.MaxRetries < 0 {
		return fmt.Errorf("gemini.max_retries must not be negative")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	defaultPipeline(&c.Pipelines.Audio, []string{".mp3"})
	defaultPipeline(&c.Pipelines.Video, []string{".mp4"})
	if c.Paths.Journal == "" {
		c.Paths.Journal = "data/dashboard_data.json"
	}
	if c.Paths.Archive == "" {
		c.Paths.Archive = "data/sonar.db"
	}
	if c.Paths.Reports == "" {
		c.Paths.Reports = "data/reports"
	}
	if c.Paths.Dashboard == "" {
		c.Paths.Dashboard = "public"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Timeout == 0 {
		c.Gemini.Timeout = 5 * time.Minute
	}
	if c.Gemini.MaxInlineMB == 0 {
		c.Gemini.MaxInlineMB = 20
	}
	if c.Probe.BinaryPath == "" {
		c.Probe.BinaryPath = "ffprobe"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.SettleDelay == 0 {
		c.Performance.SettleDelay = 2 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

func defaultPipeline(p *PipelineConfig, exts []string) {
	if !p.Enabled {
		return
	}
	if p.Processed == "" {
		p.Processed = p.Input + "/processed"
	}
	if len(p.Extensions) == 0 {
		p.Extensions = exts
	}
	for i, e := range p.Extensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		p.Extensions[i] = e
	}
}
