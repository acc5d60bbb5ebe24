package html2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrReadHTML       = errors.New("failed to read HTML file")
	ErrStageHTML      = errors.New("failed to stage HTML for rendering")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrEmptyPDF       = errors.New("browser produced an empty PDF")
	ErrWritePDF       = errors.New("failed to write PDF file")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrReadStylesheet   = errors.New("failed to read stylesheet")

	// Pool errors.
	ErrPoolClosed = errors.New("converter pool is closed")
)
