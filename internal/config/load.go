package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML config file, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// applyEnv reads Gemini keys from GEMINI_API_KEYS (comma separated) or
// GEMINI_API_KEY, and the log level from LOG_LEVEL.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEYS"); v != "" {
		c.Gemini.APIKeys = splitKeys(v)
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKeys = []string{strings.TrimSpace(v)}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
