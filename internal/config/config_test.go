// Cinelog - Personal Movie Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinelog

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("TMDB.BaseURL = %q, want default", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.ImageBaseURL != "https://image.tmdb.org/t/p/w500" {
		t.Errorf("TMDB.ImageBaseURL = %q, want default", cfg.TMDB.ImageBaseURL)
	}
	if cfg.TMDB.Timeout != 30*time.Second {
		t.Errorf("TMDB.Timeout = %s, want 30s", cfg.TMDB.Timeout)
	}
	if cfg.Server.Port != 5002 {
		t.Errorf("Server.Port = %d, want 5002", cfg.Server.Port)
	}
	if cfg.Database.MaxMemory != "1GB" {
		t.Errorf("Database.MaxMemory = %q, want 1GB", cfg.Database.MaxMemory)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging defaults = %q/%q, want info/json", cfg.Logging.Level, cfg.Logging.Format)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_KEY", "secret-key")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("DUCKDB_PATH", "/tmp/test.duckdb")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.TMDB.APIKey != "secret-key" {
		t.Errorf("TMDB.APIKey = %q, want env override", cfg.TMDB.APIKey)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i, origin := range want {
		if cfg.Security.CORSOrigins[i] != origin {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], origin)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server:\n  port: 9000\ntmdb:\n  api_key: from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000 from file", cfg.Server.Port)
	}
	if cfg.TMDB.APIKey != "from-file" {
		t.Errorf("TMDB.APIKey = %q, want from-file", cfg.TMDB.APIKey)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("tmdb:\n  api_key: from-file\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("API_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.TMDB.APIKey != "from-env" {
		t.Errorf("TMDB.APIKey = %q, want env to win over file", cfg.TMDB.APIKey)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero server timeout", func(c *Config) { c.Server.Timeout = 0 }, true},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, true},
		{"negative threads", func(c *Config) { c.Database.Threads = -1 }, true},
		{"empty tmdb base url", func(c *Config) { c.TMDB.BaseURL = "" }, true},
		{"non-http tmdb base url", func(c *Config) { c.TMDB.BaseURL = "ftp://tmdb" }, true},
		{"zero tmdb timeout", func(c *Config) { c.TMDB.Timeout = 0 }, true},
		{"zero default page size", func(c *Config) { c.API.DefaultPageSize = 0 }, true},
		{"max below default page size", func(c *Config) { c.API.MaxPageSize = 5 }, true},
		{"zero rate limit reqs", func(c *Config) { c.Security.RateLimitReqs = 0 }, true},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitWindow = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 5002}
	if got := c.Addr(); got != "127.0.0.1:5002" {
		t.Errorf("Addr() = %q, want 127.0.0.1:5002", got)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"API_KEY", "tmdb.api_key"},
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"DUCKDB_PATH", "database.path"},
		{"HTTP_PORT", "server.port"},
		{"LOG_FORMAT", "logging.format"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
