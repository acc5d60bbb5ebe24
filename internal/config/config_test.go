package config

// Notes:
// - LoadConfig: files are written to t.TempDir(); durations are quoted in the
//   YAML fixtures because the struct stores them as strings.
// - Validate: each case mutates a DefaultConfig so only one field is invalid.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.MaxUploadBytes != 16*1024*1024 {
		t.Errorf("Server.MaxUploadBytes = %d, want 16 MiB", cfg.Server.MaxUploadBytes)
	}
	if cfg.Server.Locale != "en" {
		t.Errorf("Server.Locale = %q, want en", cfg.Server.Locale)
	}
	if cfg.Storage.UploadDir != "uploads" || cfg.Storage.OutputDir != "outputs" {
		t.Errorf("Storage = %+v, want uploads/outputs", cfg.Storage)
	}
	if cfg.RenderTimeout() != 30*time.Second {
		t.Errorf("RenderTimeout() = %v, want 30s", cfg.RenderTimeout())
	}
	if cfg.Page.Size != "a4" {
		t.Errorf("Page.Size = %q, want a4", cfg.Page.Size)
	}
	if cfg.SessionMaxAge() != 0 {
		t.Errorf("SessionMaxAge() = %v, want 0", cfg.SessionMaxAge())
	}
	if cfg.SweepInterval() != 10*time.Minute {
		t.Errorf("SweepInterval() = %v, want 10m", cfg.SweepInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Field validation
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "empty addr", mutate: func(c *Config) { c.Server.Addr = " " }, wantErr: true},
		{name: "zero upload limit", mutate: func(c *Config) { c.Server.MaxUploadBytes = 0 }, wantErr: true},
		{name: "russian locale", mutate: func(c *Config) { c.Server.Locale = "ru" }, wantErr: false},
		{name: "unknown locale", mutate: func(c *Config) { c.Server.Locale = "fr" }, wantErr: true},
		{name: "empty upload dir", mutate: func(c *Config) { c.Storage.UploadDir = "" }, wantErr: true},
		{name: "empty output dir", mutate: func(c *Config) { c.Storage.OutputDir = "" }, wantErr: true},
		{name: "bad timeout", mutate: func(c *Config) { c.Render.Timeout = "soon" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Render.Timeout = "0" }, wantErr: true},
		{name: "negative workers", mutate: func(c *Config) { c.Render.Workers = -1 }, wantErr: true},
		{name: "letter uppercase", mutate: func(c *Config) { c.Page.Size = "LETTER" }, wantErr: false},
		{name: "unknown page size", mutate: func(c *Config) { c.Page.Size = "a3" }, wantErr: true},
		{name: "bad orientation", mutate: func(c *Config) { c.Page.Orientation = "diagonal" }, wantErr: true},
		{name: "margin too small", mutate: func(c *Config) { c.Page.Margin = 0.1 }, wantErr: true},
		{name: "margin too large", mutate: func(c *Config) { c.Page.Margin = 3.5 }, wantErr: true},
		{name: "session max age", mutate: func(c *Config) { c.Session.MaxAge = "24h" }, wantErr: false},
		{name: "negative max age", mutate: func(c *Config) { c.Session.MaxAge = "-1h" }, wantErr: true},
		{
			name: "max age without interval",
			mutate: func(c *Config) {
				c.Session.MaxAge = "1h"
				c.Session.SweepInterval = "0"
			},
			wantErr: true,
		},
		{name: "interval ignored when disabled", mutate: func(c *Config) { c.Session.SweepInterval = "" }, wantErr: false},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: true},
		{name: "json log format", mutate: func(c *Config) { c.Log.Format = "json" }, wantErr: false},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
server:
  addr: "127.0.0.1:9000"
  locale: ru
render:
  timeout: "45s"
  workers: 2
  assetDir: /srv/theme
session:
  maxAge: "2h"
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Addr != "127.0.0.1:9000" {
			t.Errorf("Server.Addr = %q, want 127.0.0.1:9000", cfg.Server.Addr)
		}
		if cfg.Server.Locale != "ru" {
			t.Errorf("Server.Locale = %q, want ru", cfg.Server.Locale)
		}
		if cfg.Server.MaxUploadBytes != DefaultMaxUploadBytes {
			t.Errorf("Server.MaxUploadBytes = %d, want default", cfg.Server.MaxUploadBytes)
		}
		if cfg.RenderTimeout() != 45*time.Second {
			t.Errorf("RenderTimeout() = %v, want 45s", cfg.RenderTimeout())
		}
		if cfg.Render.Workers != 2 {
			t.Errorf("Render.Workers = %d, want 2", cfg.Render.Workers)
		}
		if cfg.Render.AssetDir != "/srv/theme" {
			t.Errorf("Render.AssetDir = %q, want /srv/theme", cfg.Render.AssetDir)
		}
		if cfg.SessionMaxAge() != 2*time.Hour {
			t.Errorf("SessionMaxAge() = %v, want 2h", cfg.SessionMaxAge())
		}
		if cfg.Storage.UploadDir != DefaultUploadDir {
			t.Errorf("Storage.UploadDir = %q, want default", cfg.Storage.UploadDir)
		}
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigPath) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigPath", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "server:\n  port: 8080\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "server: [unclosed\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "page:\n  size: tabloid\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidConfig", err)
		}
	})
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}
