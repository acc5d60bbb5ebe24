package pipeline

import (
	"context"
	"strings"
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// The block goes first inside <head>, else after the doctype / <html> prolog.
// Either way it precedes every author stylesheet, so the document's own
// rules override it and it only fills in what the document leaves unset.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lm := scanLandmarks(htmlContent)

	if lm.headOpenEnd >= 0 {
		return insertAt(htmlContent, lm.headOpenEnd, styleBlock)
	}
	return insertAt(htmlContent, lm.prologEnd, styleBlock)
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// EnsureCharset declares UTF-8 when the document has no charset of its own.
// Chrome falls back to a locale-dependent encoding for file:// pages without
// one, which garbles non-Latin text.
func EnsureCharset(htmlContent string) string {
	lm := scanLandmarks(htmlContent)
	if lm.hasCharset {
		return htmlContent
	}

	meta := `<meta charset="utf-8">`
	if lm.headOpenEnd >= 0 {
		return insertAt(htmlContent, lm.headOpenEnd, meta)
	}
	return insertAt(htmlContent, lm.prologEnd, meta)
}

func insertAt(s string, pos int, block string) string {
	return s[:pos] + block + s[pos:]
}
