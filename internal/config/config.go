// Package config loads server configuration from an optional JSON file with
// environment variable overrides. The upstream API key is environment-only
// and never written to disk.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port                 int    `json:"port"`
	ChatModel            string `json:"chat_model"`
	RecommendationModel  string `json:"recommendation_model"`
	ChatTimeoutSeconds   int    `json:"chat_timeout_seconds"`
	RecommendTimeoutSecs int    `json:"recommendation_timeout_seconds"`
	RateLimitPerMinute   int    `json:"rate_limit_per_minute"`
	GeminiAPIKey         string `json:"-"`
}

// DefaultConfig returns a new config with default values.
func DefaultConfig() *Config {
	return &Config{
		Port:                 8080,
		ChatModel:            "gemini-2.0-flash",
		RecommendationModel:  "gemini-2.0-flash",
		ChatTimeoutSeconds:   30,
		RecommendTimeoutSecs: 60,
		RateLimitPerMinute:   30,
	}
}

// Load builds the configuration: defaults, then the JSON file named by
// STARTUP_GPS_CONFIG if set, then environment overrides.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("STARTUP_GPS_CONFIG"); path != "" {
		loaded, err := LoadFrom(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFrom loads configuration from a specific path. A missing file yields
// the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.ChatModel == "" || c.RecommendationModel == "" {
		return fmt.Errorf("model names must not be empty")
	}
	return nil
}

// ChatTimeout bounds one chat stream.
func (c *Config) ChatTimeout() time.Duration {
	return time.Duration(c.ChatTimeoutSeconds) * time.Second
}

// RecommendTimeout bounds one recommendation generation.
func (c *Config) RecommendTimeout() time.Duration {
	return time.Duration(c.RecommendTimeoutSecs) * time.Second
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) applyEnv() {
	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			c.Port = n
		}
	}
}
