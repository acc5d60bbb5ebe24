package html2pdf

import (
	"fmt"
	"strings"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.79 // 2cm
)

// Paper dimensions in inches (portrait).
const (
	letterWidth  = 8.5
	letterHeight = 11
	a4Width      = 8.27
	a4Height     = 11.69
	legalWidth   = 8.5
	legalHeight  = 14
)

// PageSettings configures fallback PDF page dimensions.
// A document's @page rule overrides them (Chrome's PreferCSSPageSize).
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns A4 portrait with 2cm margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if !isValidPageSize(p.Size) {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	if !isValidOrientation(p.Orientation) {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// isValidPageSize checks if size is a known page size (case-insensitive).
func isValidPageSize(size string) bool {
	switch strings.ToLower(size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
		return true
	default:
		return false
	}
}

// isValidOrientation checks if orientation is valid (case-insensitive).
func isValidOrientation(orientation string) bool {
	switch strings.ToLower(orientation) {
	case OrientationPortrait, OrientationLandscape:
		return true
	default:
		return false
	}
}

// resolvePageDimensions returns paper width, height and margin in inches.
// nil settings resolve to DefaultPageSettings.
func resolvePageDimensions(p *PageSettings) (width, height, margin float64) {
	if p == nil {
		p = DefaultPageSettings()
	}

	switch strings.ToLower(p.Size) {
	case PageSizeLetter:
		width, height = letterWidth, letterHeight
	case PageSizeLegal:
		width, height = legalWidth, legalHeight
	default:
		width, height = a4Width, a4Height
	}

	if strings.ToLower(p.Orientation) == OrientationLandscape {
		width, height = height, width
	}

	return width, height, p.Margin
}
