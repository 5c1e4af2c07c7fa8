// Package config loads runtime configuration for the functions.
//
// Values come from an optional YAML file overlaid with CASTMATE_-prefixed
// environment variables (double underscore separates sections, e.g.
// CASTMATE_UPSTREAM__API_KEY maps to upstream.api_key). Secrets are read once
// at process start and passed into handlers at construction time.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Upstream UpstreamConfig `koanf:"upstream"`
	OpenAI   OpenAIConfig   `koanf:"openai"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// UpstreamConfig describes the Castmate platform API the proxy forwards to.
type UpstreamConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
}

// OpenAIConfig describes the chat-completion API the turn generator calls.
type OpenAIConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	Model   string `koanf:"model"`
}

// Load reads configuration from the given YAML file (skipped when path is
// empty or the file does not exist) and the environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("CASTMATE_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "CASTMATE_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// Defaults
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("upstream.base_url") {
		k.Set("upstream.base_url", "https://api.castmate.app")
	}
	if !k.Exists("openai.base_url") {
		k.Set("openai.base_url", "https://api.openai.com/v1")
	}
	if !k.Exists("openai.model") {
		k.Set("openai.model", "gpt-4o-mini")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate performs the fail-fast check on required secrets. The long-running
// server refuses to start without them; the serverless entrypoints skip this
// and let the proxy answer its configuration-error envelope instead.
func (c *Config) Validate() error {
	if c.Upstream.APIKey == "" {
		return fmt.Errorf("upstream API key is not configured (CASTMATE_UPSTREAM__API_KEY)")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OpenAI API key is not configured (CASTMATE_OPENAI__API_KEY)")
	}
	return nil
}
