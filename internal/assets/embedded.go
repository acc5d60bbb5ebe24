package assets

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed styles/*
var styles embed.FS

//go:embed pages/*
var pages embed.FS

//go:embed static/*
var static embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadPage loads an HTML page from embedded assets by name.
// The name should not include the .html extension.
func (e *EmbeddedLoader) LoadPage(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := pages.ReadFile("pages/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrPageNotFound, name)
	}

	return string(content), nil
}

// StaticFS returns the embedded static files (scripts, stylesheets) rooted
// so that "app.js" resolves to static/app.js.
func StaticFS() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// fs.Sub only fails for invalid path patterns; "static" is constant.
		panic(err)
	}
	return sub
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
