package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-html2pdf/internal/config"
)

const envPrefix = "HTML2PDF_"

// envConfig holds configuration from environment variables.
// Provides container-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // HTML2PDF_CONFIG: config file path
	Addr       string // HTML2PDF_ADDR: listen address
	UploadDir  string // HTML2PDF_UPLOAD_DIR: upload root
	OutputDir  string // HTML2PDF_OUTPUT_DIR: output root
	Locale     string // HTML2PDF_LOCALE: en, ru

	// Tier 2 - Rendering
	RenderTimeout string  // HTML2PDF_RENDER_TIMEOUT: per-file timeout
	Workers       int     // HTML2PDF_WORKERS: converter pool size
	Stylesheet    string  // HTML2PDF_STYLESHEET: CSS file path
	AssetDir      string  // HTML2PDF_ASSET_DIR: custom styles/ and pages/
	PageSize      string  // HTML2PDF_PAGE_SIZE: a4, letter, legal
	Orientation   string  // HTML2PDF_ORIENTATION: portrait, landscape
	Margin        float64 // HTML2PDF_MARGIN: inches

	// Tier 3 - Limits, sessions and logs
	MaxUploadBytes int64  // HTML2PDF_MAX_UPLOAD_BYTES: request body limit
	SessionMaxAge  string // HTML2PDF_SESSION_MAX_AGE: session lifetime
	SweepInterval  string // HTML2PDF_SWEEP_INTERVAL: reaper period
	LogLevel       string // HTML2PDF_LOG_LEVEL: debug, info, warn, error
	LogFormat      string // HTML2PDF_LOG_FORMAT: text, json
}

// knownEnvVars lists valid HTML2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"HTML2PDF_CONFIG":     true,
	"HTML2PDF_ADDR":       true,
	"HTML2PDF_UPLOAD_DIR": true,
	"HTML2PDF_OUTPUT_DIR": true,
	"HTML2PDF_LOCALE":     true,
	// Tier 2 - Rendering
	"HTML2PDF_RENDER_TIMEOUT": true,
	"HTML2PDF_WORKERS":        true,
	"HTML2PDF_STYLESHEET":     true,
	"HTML2PDF_ASSET_DIR":      true,
	"HTML2PDF_PAGE_SIZE":      true,
	"HTML2PDF_ORIENTATION":    true,
	"HTML2PDF_MARGIN":         true,
	// Tier 3 - Limits, sessions and logs
	"HTML2PDF_MAX_UPLOAD_BYTES": true,
	"HTML2PDF_SESSION_MAX_AGE":  true,
	"HTML2PDF_SWEEP_INTERVAL":   true,
	"HTML2PDF_LOG_LEVEL":        true,
	"HTML2PDF_LOG_FORMAT":       true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored; durations are checked later by Config.Validate.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("HTML2PDF_CONFIG"),
		Addr:       os.Getenv("HTML2PDF_ADDR"),
		UploadDir:  os.Getenv("HTML2PDF_UPLOAD_DIR"),
		OutputDir:  os.Getenv("HTML2PDF_OUTPUT_DIR"),
		Locale:     os.Getenv("HTML2PDF_LOCALE"),
		// Tier 2
		RenderTimeout: os.Getenv("HTML2PDF_RENDER_TIMEOUT"),
		Stylesheet:    os.Getenv("HTML2PDF_STYLESHEET"),
		AssetDir:      os.Getenv("HTML2PDF_ASSET_DIR"),
		PageSize:      os.Getenv("HTML2PDF_PAGE_SIZE"),
		Orientation:   os.Getenv("HTML2PDF_ORIENTATION"),
		// Tier 3
		SessionMaxAge: os.Getenv("HTML2PDF_SESSION_MAX_AGE"),
		SweepInterval: os.Getenv("HTML2PDF_SWEEP_INTERVAL"),
		LogLevel:      os.Getenv("HTML2PDF_LOG_LEVEL"),
		LogFormat:     os.Getenv("HTML2PDF_LOG_FORMAT"),
	}

	if workers := os.Getenv("HTML2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if margin := os.Getenv("HTML2PDF_MARGIN"); margin != "" {
		if m, err := strconv.ParseFloat(margin, 64); err == nil && m > 0 {
			cfg.Margin = m
		}
	}

	if limit := os.Getenv("HTML2PDF_MAX_UPLOAD_BYTES"); limit != "" {
		if n, err := strconv.ParseInt(limit, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytes = n
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized HTML2PDF_* variable.
// Helps catch typos like HTML2PDF_WORKER instead of HTML2PDF_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config values with every env var that is set.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1 - Server and storage
	setString(&cfg.Server.Addr, env.Addr)
	setString(&cfg.Server.Locale, env.Locale)
	setString(&cfg.Storage.UploadDir, env.UploadDir)
	setString(&cfg.Storage.OutputDir, env.OutputDir)

	// Tier 2 - Rendering
	setString(&cfg.Render.Timeout, env.RenderTimeout)
	setString(&cfg.Render.Stylesheet, env.Stylesheet)
	setString(&cfg.Render.AssetDir, env.AssetDir)
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
	setString(&cfg.Page.Size, env.PageSize)
	setString(&cfg.Page.Orientation, env.Orientation)
	if env.Margin > 0 {
		cfg.Page.Margin = env.Margin
	}

	// Tier 3 - Limits, sessions and logs
	if env.MaxUploadBytes > 0 {
		cfg.Server.MaxUploadBytes = env.MaxUploadBytes
	}
	setString(&cfg.Session.MaxAge, env.SessionMaxAge)
	setString(&cfg.Session.SweepInterval, env.SweepInterval)
	setString(&cfg.Log.Level, env.LogLevel)
	setString(&cfg.Log.Format, env.LogFormat)
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
