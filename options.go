package html2pdf

import "time"

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	page           *PageSettings
	stylesheetPath string // CSS file replacing the base style
	assetPath      string // custom assets directory, falls back to embedded
	resolvedStyle  string
}

// defaultTimeout bounds a single file render when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-file render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithPage sets the fallback page size, orientation and margin.
// Settings are validated by NewConverter.
func WithPage(p *PageSettings) Option {
	return func(c *Converter) {
		c.cfg.page = p
	}
}

// WithStylesheet replaces the embedded base stylesheet with a CSS file.
// Empty path keeps the base stylesheet.
func WithStylesheet(path string) Option {
	return func(c *Converter) {
		c.cfg.stylesheetPath = path
	}
}

// WithAssetPath loads the base stylesheet from a custom assets directory,
// falling back to the embedded one when the directory lacks it.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// StyleLoader loads a stylesheet by name.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}

// WithAssetLoader sets a custom loader for the base stylesheet.
func WithAssetLoader(loader StyleLoader) Option {
	return func(c *Converter) {
		c.assetLoader = loader
	}
}

// withRenderer replaces the browser renderer (tests).
func withRenderer(r pdfRenderer) Option {
	return func(c *Converter) {
		c.renderer = r
	}
}
