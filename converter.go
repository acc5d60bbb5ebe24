package html2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/pipeline"
)

// Compile-time interface implementation checks.
var _ pipeline.CSSInjector = (*pipeline.CSSInjection)(nil)

// Converter renders HTML files to PDF with one headless browser.
// Create with NewConverter(), use ConvertFile() for conversion, and Close() when done.
// A Converter is not safe for concurrent use; see ConverterPool.
type Converter struct {
	cfg         converterConfig
	assetLoader StyleLoader
	cssInjector pipeline.CSSInjector
	renderer    pdfRenderer
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithPage, WithStylesheet).
// Returns error if page settings are invalid or the stylesheet cannot be loaded.
// The browser itself is launched on the first conversion.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			page:    DefaultPageSettings(),
		},
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.page == nil {
		c.cfg.page = DefaultPageSettings()
	}
	if err := c.cfg.page.Validate(); err != nil {
		return nil, err
	}

	// Handle WithAssetPath: custom directory with embedded fallback
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	// Create renderer if not injected (e.g., by tests)
	if c.renderer == nil {
		c.renderer = newRodRenderer(c.cfg.timeout)
	}

	return c, nil
}

// ConvertFile renders the HTML file at htmlPath and writes the PDF to pdfPath.
// The source file is never modified: the styled copy is written next to it
// and removed afterwards. Each call is bounded by the converter timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) ConvertFile(ctx context.Context, htmlPath, pdfPath string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	raw, err := os.ReadFile(htmlPath) // #nosec G304 -- path built by the caller inside its session dir
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadHTML, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	htmlContent := c.cssInjector.InjectCSS(ctx, string(raw), c.cfg.resolvedStyle)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	htmlContent = pipeline.EnsureCharset(htmlContent)

	tmpPath, cleanup, err := fileutil.WriteTempFile(filepath.Dir(htmlPath), htmlContent, "html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStageHTML, err)
	}
	defer cleanup()

	pdfBytes, err := c.renderer.RenderFromFile(ctx, tmpPath, c.cfg.page)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", filepath.Base(htmlPath), err)
	}
	if len(pdfBytes) == 0 {
		return ErrEmptyPDF
	}

	if err := os.WriteFile(pdfPath, pdfBytes, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}
	return nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

// resolveStyle loads the stylesheet injected into every document.
// Called during NewConverter after options are applied.
func (c *Converter) resolveStyle() error {
	if path := c.cfg.stylesheetPath; path != "" {
		content, err := os.ReadFile(path) // #nosec G304 -- operator-provided path
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrReadStylesheet, path, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(assets.BaseStyleName)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrStyleNotFound, assets.BaseStyleName, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}
