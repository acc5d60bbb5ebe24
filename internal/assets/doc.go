// Package assets provides the PDF base stylesheet and the upload UI pages.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the server. Operators can override
// the base stylesheet or the index page by dropping a file with the same name
// into the custom directory; anything missing falls back to the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── base.css     # stylesheet injected before rendering
//	└── pages/
//	    └── index.html   # upload page served at "/"
//
// Static scripts and styles for the UI are always embedded (see StaticFS).
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
