package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	envVars := []string{
		"CASTMATE_SERVER__PORT",
		"CASTMATE_UPSTREAM__API_KEY",
		"CASTMATE_UPSTREAM__BASE_URL",
		"CASTMATE_OPENAI__API_KEY",
		"CASTMATE_OPENAI__MODEL",
	}
	for _, v := range envVars {
		orig := os.Getenv(v)
		os.Unsetenv(v)
		defer func(name, val string) {
			if val != "" {
				os.Setenv(name, val)
			} else {
				os.Unsetenv(name)
			}
		}(v, orig)
	}

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Server.Port != 8080 {
			t.Errorf("Load() port = %v, want 8080", cfg.Server.Port)
		}
		if cfg.Upstream.BaseURL != "https://api.castmate.app" {
			t.Errorf("Load() upstream base URL = %v", cfg.Upstream.BaseURL)
		}
		if cfg.OpenAI.BaseURL != "https://api.openai.com/v1" {
			t.Errorf("Load() openai base URL = %v", cfg.OpenAI.BaseURL)
		}
		if cfg.OpenAI.Model != "gpt-4o-mini" {
			t.Errorf("Load() model = %v", cfg.OpenAI.Model)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		os.Setenv("CASTMATE_SERVER__PORT", "9000")
		os.Setenv("CASTMATE_UPSTREAM__API_KEY", "secret-upstream")
		os.Setenv("CASTMATE_OPENAI__MODEL", "gpt-4o")
		defer os.Unsetenv("CASTMATE_SERVER__PORT")
		defer os.Unsetenv("CASTMATE_UPSTREAM__API_KEY")
		defer os.Unsetenv("CASTMATE_OPENAI__MODEL")

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.Server.Port != 9000 {
			t.Errorf("Load() port = %v, want 9000", cfg.Server.Port)
		}
		if cfg.Upstream.APIKey != "secret-upstream" {
			t.Errorf("Load() upstream key = %v", cfg.Upstream.APIKey)
		}
		if cfg.OpenAI.Model != "gpt-4o" {
			t.Errorf("Load() model = %v, want gpt-4o", cfg.OpenAI.Model)
		}
	})

	t.Run("missing file path is not an error", func(t *testing.T) {
		if _, err := Load("does-not-exist.yaml"); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "both keys set",
			cfg: Config{
				Upstream: UpstreamConfig{APIKey: "a"},
				OpenAI:   OpenAIConfig{APIKey: "b"},
			},
		},
		{
			name:    "missing upstream key",
			cfg:     Config{OpenAI: OpenAIConfig{APIKey: "b"}},
			wantErr: true,
		},
		{
			name:    "missing openai key",
			cfg:     Config{Upstream: UpstreamConfig{APIKey: "a"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
