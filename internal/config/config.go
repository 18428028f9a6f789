// Package config loads kithwatch configuration: YAML over defaults, with the
// LLM API key resolved from the environment. The fusion weights and level
// boundaries are fixed constants of the scoring model and are not
// configurable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// apiKeyEnv is the environment variable holding the LLM API key. Loaded over
// any value in the YAML file so keys stay out of config files.
const apiKeyEnv = "KITHWATCH_API_KEY"

// SourcesConfig configures the external analyzer boundary.
type SourcesConfig struct {
	CalendarURL  string        `yaml:"calendar_url"`
	ListeningURL string        `yaml:"listening_url"`
	DaysBack     int           `yaml:"days_back"`
	Timeout      time.Duration `yaml:"timeout"`
}

// LLMConfig configures the message generator.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// RecommenderConfig configures the activity recommendation boundary.
type RecommenderConfig struct {
	URL     string        `yaml:"url"`
	Limit   int           `yaml:"limit"`
	Timeout time.Duration `yaml:"timeout"`
}

// StoreConfig configures local persistence.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// DaemonConfig configures the inbox processing loop.
type DaemonConfig struct {
	Inbox        string        `yaml:"inbox"`
	Outbox       string        `yaml:"outbox"`
	State        string        `yaml:"state"`
	Poll         bool          `yaml:"poll"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Config is the full immutable runtime configuration. Built once at startup
// and injected into the orchestrators; nothing reads ambient global state.
type Config struct {
	Sources     SourcesConfig     `yaml:"sources"`
	LLM         LLMConfig         `yaml:"llm"`
	Recommender RecommenderConfig `yaml:"recommender"`
	Store       StoreConfig       `yaml:"store"`
	Daemon      DaemonConfig      `yaml:"daemon"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".kithwatch")
	return &Config{
		Sources: SourcesConfig{
			DaysBack: 30,
			Timeout:  15 * time.Second,
		},
		Recommender: RecommenderConfig{
			Limit:   5,
			Timeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Path: filepath.Join(base, "kithwatch.db"),
		},
		Daemon: DaemonConfig{
			Inbox:        filepath.Join(base, "inbox"),
			Outbox:       filepath.Join(base, "outbox"),
			State:        filepath.Join(base, "state"),
			PollInterval: 5 * time.Second,
		},
	}
}

// Load reads configuration from a YAML file. Empty path falls back to
// ~/.kithwatch/config.yaml. Missing file returns defaults. Invalid YAML
// returns an error. YAML overwrites only specified fields.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return applyEnv(cfg), nil
		}
		path = filepath.Join(home, ".kithwatch", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return applyEnv(cfg), nil
}

// applyEnv overlays environment-sourced secrets.
func applyEnv(cfg *Config) *Config {
	if key := os.Getenv(apiKeyEnv); key != "" {
		cfg.LLM.APIKey = key
	}
	return cfg
}
