// Package config loads the process configuration: defaults, then an
// optional YAML file, then environment overrides. Load runs once at
// startup and the result is passed down explicitly; nothing here is
// consulted again mid-session.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is tried when no --config flag is given; a missing file
// there just means defaults.
const DefaultPath = "orpheus.yaml"

// Config holds all Orpheus configuration.
type Config struct {
	Gemini Gemini `yaml:"gemini"`
	Prompt Prompt `yaml:"prompt"`
}

// Gemini configures the generateContent client.
type Gemini struct {
	// APIKey is not required at load time. A missing key surfaces as a
	// configuration error on the first query, not as a startup crash.
	APIKey           string  `yaml:"api_key"`
	BaseURL          string  `yaml:"base_url"`
	Model            string  `yaml:"model"`
	TimeoutSeconds   int     `yaml:"timeout_seconds"`
	MaxAttempts      int     `yaml:"max_attempts"`
	BaseDelaySeconds int     `yaml:"base_delay_seconds"`
	MaxOutputTokens  int     `yaml:"max_output_tokens"`
	Temperature      float64 `yaml:"temperature"`
}

// Prompt bounds what handlers are allowed to put into a prompt.
type Prompt struct {
	DiffBudgetRunes int `yaml:"diff_budget_runes"`
}

// Default returns the configuration used when no file or environment
// override says otherwise.
func Default() Config {
	return Config{
		Gemini: Gemini{
			BaseURL:          "https://generativelanguage.googleapis.com/v1beta",
			Model:            "gemini-2.5-pro",
			TimeoutSeconds:   120,
			MaxAttempts:      3,
			BaseDelaySeconds: 1,
			MaxOutputTokens:  8192,
		},
		Prompt: Prompt{
			DiffBudgetRunes: 24_000,
		},
	}
}

// Load reads configuration from path. An empty path means DefaultPath,
// where a missing file is tolerated; an explicitly given path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
}

// Timeout returns the per-request timeout as a duration.
func (g Gemini) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// BaseDelay returns the first backoff delay as a duration.
func (g Gemini) BaseDelay() time.Duration {
	if g.BaseDelaySeconds <= 0 {
		return time.Second
	}
	return time.Duration(g.BaseDelaySeconds) * time.Second
}

// Attempts returns the total attempt budget for a query.
func (g Gemini) Attempts() int {
	if g.MaxAttempts <= 0 {
		return 3
	}
	return g.MaxAttempts
}
