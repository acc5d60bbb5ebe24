// Package assets provides the PDF base stylesheet and the upload UI.
// Assets can be loaded from embedded files or custom filesystem paths.
package assets

// Well-known asset names.
const (
	// BaseStyleName is the stylesheet applied to every rendered document.
	BaseStyleName = "base"

	// IndexPageName is the upload page served at "/".
	IndexPageName = "index"
)
