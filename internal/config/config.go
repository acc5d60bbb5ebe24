package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigPath = errors.New("config path cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Defaults applied by DefaultConfig.
const (
	DefaultAddr           = ":8080"
	DefaultMaxUploadBytes = 16 << 20 // 16 MiB
	DefaultLocale         = "en"
	DefaultUploadDir      = "uploads"
	DefaultOutputDir      = "outputs"
	DefaultRenderTimeout  = "30s"
	DefaultPageSize       = "a4"
	DefaultOrientation    = "portrait"
	DefaultMargin         = 0.79 // inches, ~2cm
	DefaultSweepInterval  = "10m"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Margin bounds in inches, mirrored from the converter's page validation.
const (
	MinMargin = 0.25
	MaxMargin = 3.0
)

// Config holds all configuration for the conversion server.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Render  RenderConfig  `yaml:"render"`
	Page    PageConfig    `yaml:"page"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"maxUploadBytes"` // Total request body limit
	Locale         string `yaml:"locale"`         // "en" or "ru"
}

// StorageConfig defines the session storage roots.
type StorageConfig struct {
	UploadDir string `yaml:"uploadDir"`
	OutputDir string `yaml:"outputDir"`
}

// RenderConfig defines browser rendering options.
type RenderConfig struct {
	Timeout    string `yaml:"timeout"`    // Per-file, Go duration syntax
	Workers    int    `yaml:"workers"`    // Converter pool size (0 = auto)
	Stylesheet string `yaml:"stylesheet"` // CSS file replacing the base stylesheet (empty = embedded)
	AssetDir   string `yaml:"assetDir"`   // styles/ and pages/ overriding embedded assets (empty = embedded)
}

// PageConfig defines fallback PDF page settings. A document's own @page rule wins.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal"
	Orientation string  `yaml:"orientation"` // "portrait", "landscape"
	Margin      float64 `yaml:"margin"`      // inches
}

// SessionConfig defines automatic session expiry.
type SessionConfig struct {
	MaxAge        string `yaml:"maxAge"`        // "0" or empty = never expire
	SweepInterval string `yaml:"sweepInterval"` // How often expired sessions are removed
}

// LogConfig defines structured logging output.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text", "json"
}

var (
	validLocales      = []string{"en", "ru"}
	validPageSizes    = []string{"letter", "a4", "legal"}
	validOrientations = []string{"portrait", "landscape"}
	validLogLevels    = []string{"debug", "info", "warn", "error"}
	validLogFormats   = []string{"text", "json"}
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           DefaultAddr,
			MaxUploadBytes: DefaultMaxUploadBytes,
			Locale:         DefaultLocale,
		},
		Storage: StorageConfig{
			UploadDir: DefaultUploadDir,
			OutputDir: DefaultOutputDir,
		},
		Render: RenderConfig{
			Timeout: DefaultRenderTimeout,
		},
		Page: PageConfig{
			Size:        DefaultPageSize,
			Orientation: DefaultOrientation,
			Margin:      DefaultMargin,
		},
		Session: SessionConfig{
			MaxAge:        "0",
			SweepInterval: DefaultSweepInterval,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Validate checks every field. Called automatically by LoadConfig, but
// available for callers who build or override a Config after loading.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return invalid("server.addr", "cannot be empty")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return invalid("server.maxUploadBytes", fmt.Sprintf("must be positive, got %d", c.Server.MaxUploadBytes))
	}
	if err := validateChoice("server.locale", c.Server.Locale, validLocales); err != nil {
		return err
	}

	if strings.TrimSpace(c.Storage.UploadDir) == "" {
		return invalid("storage.uploadDir", "cannot be empty")
	}
	if strings.TrimSpace(c.Storage.OutputDir) == "" {
		return invalid("storage.outputDir", "cannot be empty")
	}

	if d, err := parseDuration("render.timeout", c.Render.Timeout); err != nil {
		return err
	} else if d <= 0 {
		return invalid("render.timeout", "must be positive")
	}
	if c.Render.Workers < 0 {
		return invalid("render.workers", fmt.Sprintf("cannot be negative, got %d", c.Render.Workers))
	}

	if err := validateChoice("page.size", c.Page.Size, validPageSizes); err != nil {
		return err
	}
	if err := validateChoice("page.orientation", c.Page.Orientation, validOrientations); err != nil {
		return err
	}
	if c.Page.Margin < MinMargin || c.Page.Margin > MaxMargin {
		return invalid("page.margin", fmt.Sprintf("%.2f out of range [%.1f, %.1f]", c.Page.Margin, MinMargin, MaxMargin))
	}

	maxAge, err := parseDuration("session.maxAge", c.Session.MaxAge)
	if err != nil {
		return err
	}
	if maxAge < 0 {
		return invalid("session.maxAge", "cannot be negative")
	}
	if maxAge > 0 {
		interval, err := parseDuration("session.sweepInterval", c.Session.SweepInterval)
		if err != nil {
			return err
		}
		if interval <= 0 {
			return invalid("session.sweepInterval", "must be positive when session.maxAge is set")
		}
	}

	if err := validateChoice("log.level", c.Log.Level, validLogLevels); err != nil {
		return err
	}
	return validateChoice("log.format", c.Log.Format, validLogFormats)
}

// RenderTimeout returns the parsed per-file render timeout.
// Call only on a validated Config.
func (c *Config) RenderTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Render.Timeout)
	return d
}

// SessionMaxAge returns the parsed session lifetime (0 = never expire).
func (c *Config) SessionMaxAge() time.Duration {
	d, _ := parseDuration("", c.Session.MaxAge)
	return d
}

// SweepInterval returns the parsed reaper interval.
func (c *Config) SweepInterval() time.Duration {
	d, _ := parseDuration("", c.Session.SweepInterval)
	return d
}

// LoadConfig loads configuration from a YAML file. Fields absent from the
// file keep their DefaultConfig values. Unknown fields are rejected.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyConfigPath
	}

	cfg := DefaultConfig()
	if err := yamlutil.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseDuration accepts Go duration syntax plus a bare "0" and the empty string.
func parseDuration(field, value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, invalid(field, fmt.Sprintf("invalid duration %q", value))
	}
	return d, nil
}

func validateChoice(field, value string, allowed []string) error {
	lower := strings.ToLower(value)
	for _, a := range allowed {
		if lower == a {
			return nil
		}
	}
	return invalid(field, fmt.Sprintf("invalid value %q (must be %s)", value, strings.Join(allowed, ", ")))
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, reason)
}
