package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Pipelines: PipelinesConfig{
			Audio: PipelineConfig{Enabled: true, Input: "depot_audio"},
			Video: PipelineConfig{Enabled: true, Input: "uploads_video"},
		},
		Paths: PathsConfig{
			Pending:    "data/pending",
			Collection: "public/resultats_sonar.json",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "video only",
			mutate: func(c *Config) {
				c.Pipelines.Audio = PipelineConfig{}
			},
			wantErr: false,
		},
		{
			name: "no pipeline enabled",
			mutate: func(c *Config) {
				c.Pipelines = PipelinesConfig{}
			},
			wantErr: true,
		},
		{
			name: "enabled pipeline without input",
			mutate: func(c *Config) {
				c.Pipelines.Video.Input = ""
			},
			wantErr: true,
		},
		{
			name: "missing pending dir",
			mutate: func(c *Config) {
				c.Paths.Pending = ""
			},
			wantErr: true,
		},
		{
			name: "missing collection",
			mutate: func(c *Config) {
				c.Paths.Collection = ""
			},
			wantErr: true,
		},
		{
			name: "negative retries",
			mutate: func(c *Config) {
				c.Gemini.MaxRetries = -1
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Addr != ":3000" {
		t.Errorf("Addr = %v, want %v", cfg.Server.Addr, ":3000")
	}
	if cfg.Pipelines.Audio.Processed != "depot_audio/processed" {
		t.Errorf("Audio.Processed = %v, want %v", cfg.Pipelines.Audio.Processed, "depot_audio/processed")
	}
	if !reflect.DeepEqual(cfg.Pipelines.Video.Extensions, []string{".mp4"}) {
		t.Errorf("Video.Extensions = %v, want [.mp4]", cfg.Pipelines.Video.Extensions)
	}
	if cfg.Gemini.Timeout != 5*time.Minute {
		t.Errorf("Gemini.Timeout = %v, want %v", cfg.Gemini.Timeout, 5*time.Minute)
	}
	if cfg.Performance.MaxConcurrent != 2 {
		t.Errorf("MaxConcurrent = %v, want %v", cfg.Performance.MaxConcurrent, 2)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LOG_LEVEL", "")

	tmpfile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}

	content := `
server:
  addr: ":8080"

pipelines:
  audio:
    enabled: true
    input: "depot_audio"
    extensions: [".MP3", "wav"]
  video:
    enabled: false

paths:
  pending: "data/pending"
  collection: "public/resultats_sonar.json"

gemini:
  model: "gemini-2.5-pro"
  api_keys: ["k1", "k2"]
  timeout: 90s
  max_retries: 3

performance:
  settle_delay: 500ms

logging:
  level: "debug"
  format: "json"

collector:
  auto_collect: true
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %v, want %v", cfg.Server.Addr, ":8080")
	}
	if !reflect.DeepEqual(cfg.Pipelines.Audio.Extensions, []string{".mp3", ".wav"}) {
		t.Errorf("Extensions = %v", cfg.Pipelines.Audio.Extensions)
	}
	if cfg.Gemini.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Gemini.Timeout, 90*time.Second)
	}
	if cfg.Performance.SettleDelay != 500*time.Millisecond {
		t.Errorf("SettleDelay = %v, want %v", cfg.Performance.SettleDelay, 500*time.Millisecond)
	}
	if !reflect.DeepEqual(cfg.Gemini.APIKeys, []string{"k1", "k2"}) {
		t.Errorf("APIKeys = %v", cfg.Gemini.APIKeys)
	}
	if !cfg.Collector.AutoCollect {
		t.Error("AutoCollect = false, want true")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tmpfile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	content := `
pipelines:
  audio:
    enabled: true
    input: "in"
paths:
  pending: "p"
  collection: "c.json"
gemini:
  api_keys: ["from-file"]
`
	if err := os.WriteFile(tmpfile.Name(), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		keys     string
		key      string
		wantKeys []string
	}{
		{name: "file keys kept", wantKeys: []string{"from-file"}},
		{name: "single key", key: " solo ", wantKeys: []string{"solo"}},
		{name: "key list wins", keys: "a, b,,c", key: "solo", wantKeys: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEYS", tt.keys)
			t.Setenv("GEMINI_API_KEY", tt.key)

			cfg, err := Load(tmpfile.Name())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(cfg.Gemini.APIKeys, tt.wantKeys) {
				t.Errorf("APIKeys = %v, want %v", cfg.Gemini.APIKeys, tt.wantKeys)
			}
		})
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}
