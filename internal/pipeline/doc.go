// Package pipeline prepares uploaded HTML for rendering.
//
// Uploaded documents are rendered as-is except for two additions made on a
// private copy: the configured stylesheets are injected as a <style> block,
// and a UTF-8 charset is declared when the document has none.
//
// PDF generation itself is handled by the root html2pdf package using
// headless Chrome (go-rod).
package pipeline
