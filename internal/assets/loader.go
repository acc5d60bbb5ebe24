package assets

// AssetLoader defines the contract for loading the PDF base stylesheet and
// the pages of the upload UI.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadPage loads an HTML page by name (without .html extension).
	// Returns ErrPageNotFound if the page doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPage(name string) (string, error)
}
