package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-html2pdf/internal/archive"
	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/pdfinfo"
)

// AllowedExtensions lists the accepted upload extensions.
var AllowedExtensions = []string{"html", "htm"}

// FileConverter renders one HTML file to a PDF file.
type FileConverter interface {
	ConvertFile(ctx context.Context, htmlPath, pdfPath string) error
}

// ConverterPool hands out converters for the duration of one request.
type ConverterPool interface {
	Acquire(ctx context.Context) (FileConverter, error)
	Release(FileConverter)
}

// Manager runs conversion sessions over a Storage.
type Manager struct {
	storage   *Storage
	pool      ConverterPool
	inspector pdfinfo.Inspector
	catalog   Catalog
	logger    *slog.Logger
	hintFn    func(error) string
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithInspector validates every rendered PDF and records its page count.
func WithInspector(i pdfinfo.Inspector) ManagerOption {
	return func(m *Manager) {
		m.inspector = i
	}
}

// WithCatalog sets the locale of per-file messages.
func WithCatalog(c Catalog) ManagerOption {
	return func(m *Manager) {
		m.catalog = c
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithErrorHint attaches operator hints to logged render errors.
// fn returns "" when it has nothing to add.
func WithErrorHint(fn func(error) string) ManagerOption {
	return func(m *Manager) {
		m.hintFn = fn
	}
}

// NewManager creates a Manager. Defaults: English messages, no inspection,
// logs discarded.
func NewManager(storage *Storage, pool ConverterPool, opts ...ManagerOption) *Manager {
	m := &Manager{
		storage: storage,
		pool:    pool,
		catalog: CatalogFor(LocaleEnglish),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog returns the manager's message catalog.
func (m *Manager) Catalog() Catalog {
	return m.catalog
}

// Convert stores the uploads in a new session and converts each one, in order.
//
// Files with an empty name are skipped. Rejected or failed files are reported
// in the manifest and do not stop the batch. When nothing converts, the session
// is removed and a *ConversionFailedError is returned.
func (m *Manager) Convert(ctx context.Context, uploads []Upload) (*Manifest, error) {
	if !hasNamedUpload(uploads) {
		return nil, ErrNoFilesProvided
	}

	id := newSessionID()
	if err := m.storage.create(id); err != nil {
		return nil, err
	}

	run := &conversion{
		manager:   m,
		id:        id,
		uploadDir: m.storage.UploadDir(id),
		outputDir: m.storage.OutputDir(id),
	}
	defer run.release()

	manifest := &Manifest{SessionID: id, Results: []Result{}, Errors: []FileError{}}
	for _, up := range uploads {
		if err := ctx.Err(); err != nil {
			m.Cleanup(id)
			return nil, err
		}
		if up.Filename == "" {
			continue
		}

		outcome, err := run.convertOne(ctx, up)
		if err != nil {
			m.Cleanup(id)
			return nil, err
		}
		if outcome.Result != nil {
			manifest.Results = append(manifest.Results, *outcome.Result)
		} else {
			manifest.Errors = append(manifest.Errors, *outcome.Failure)
		}
	}

	if len(manifest.Results) == 0 {
		m.Cleanup(id)
		m.logger.Warn("conversion failed", "session", id, "failed", len(manifest.Errors))
		return nil, &ConversionFailedError{Errors: manifest.Errors}
	}

	m.logger.Info("conversion finished",
		"session", id,
		"converted", len(manifest.Results),
		"failed", len(manifest.Errors))
	return manifest, nil
}

// Cleanup removes both session directories. It never fails and may be
// called any number of times, including for unknown or malformed ids.
func (m *Manager) Cleanup(id string) {
	if !ValidID(id) {
		return
	}
	if err := m.storage.remove(id); err != nil {
		m.logger.Warn("session cleanup incomplete", "session", id, "error", err)
		return
	}
	m.logger.Debug("session removed", "session", id)
}

// OpenPDF opens a converted file for download. The requested name goes
// through the same sanitization as uploads, falling back to the raw name
// when nothing survives. Names that are not a single path element are rejected.
func (m *Manager) OpenPDF(id, filename string) (*os.File, error) {
	if !ValidID(id) || !fileutil.IsPlainName(filename) {
		return nil, ErrFileNotFound
	}

	name := fileutil.SanitizeFilename(filename)
	if name == "" {
		name = filename
	}

	path := filepath.Join(m.storage.OutputDir(id), name)
	if !fileutil.FileExists(path) {
		return nil, ErrFileNotFound
	}

	f, err := os.Open(path) // #nosec G304 -- name is a single element inside the session dir
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	return f, nil
}

// ArchiveAll writes a zip of every PDF in the session to w and returns the
// number of entries.
func (m *Manager) ArchiveAll(id string, w io.Writer) (int, error) {
	if !ValidID(id) {
		return 0, ErrSessionNotFound
	}

	dir := m.storage.OutputDir(id)
	if !fileutil.DirExists(dir) {
		return 0, ErrSessionNotFound
	}

	count, err := archive.ZipPDFs(dir, w)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return count, nil
}

func hasNamedUpload(uploads []Upload) bool {
	for _, up := range uploads {
		if up.Filename != "" {
			return true
		}
	}
	return false
}

// conversion is the state of one Convert call.
type conversion struct {
	manager   *Manager
	id        string
	uploadDir string
	outputDir string
	conv      FileConverter
}

// converter acquires a pooled converter on first use.
func (c *conversion) converter(ctx context.Context) (FileConverter, error) {
	if c.conv != nil {
		return c.conv, nil
	}
	conv, err := c.manager.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring converter: %w", err)
	}
	c.conv = conv
	return conv, nil
}

func (c *conversion) release() {
	if c.conv != nil {
		c.manager.pool.Release(c.conv)
		c.conv = nil
	}
}

// convertOne handles a single named upload. Per-file problems are returned as
// an Outcome; only request-level problems (no converter) are returned as errors.
func (c *conversion) convertOne(ctx context.Context, up Upload) (Outcome, error) {
	m := c.manager
	log := m.logger.With("session", c.id, "file", up.Filename)

	if !fileutil.HasAllowedExtension(up.Filename, AllowedExtensions...) {
		log.Info("file rejected", "reason", "extension")
		return failure(up.Filename, ErrUnsupportedExtension, m.catalog.UnsupportedFormat(up.Filename)), nil
	}

	htmlName := fileutil.SanitizeFilename(up.Filename)
	if htmlName == "" {
		htmlName = fileutil.FallbackName(fallbackToken())
	}
	htmlName = fileutil.UniqueName(c.uploadDir, htmlName)
	pdfName := fileutil.UniqueName(c.outputDir, fileutil.PDFName(htmlName))

	htmlPath := filepath.Join(c.uploadDir, htmlName)
	pdfPath := filepath.Join(c.outputDir, pdfName)

	if err := saveUpload(htmlPath, up.Content); err != nil {
		log.Error("saving upload failed", "error", err)
		return c.renderFailure(up.Filename, err), nil
	}

	conv, err := c.converter(ctx)
	if err != nil {
		return Outcome{}, err
	}

	if err := conv.ConvertFile(ctx, htmlPath, pdfPath); err != nil {
		attrs := []any{"error", err}
		if m.hintFn != nil {
			if hint := m.hintFn(err); hint != "" {
				attrs = append(attrs, "hint", hint)
			}
		}
		log.Warn("conversion failed", attrs...)
		_ = os.Remove(pdfPath)
		return c.renderFailure(up.Filename, err), nil
	}

	pages := 0
	if m.inspector != nil {
		info, err := m.inspector.Inspect(pdfPath)
		if err != nil {
			log.Warn("rendered PDF rejected", "error", err)
			_ = os.Remove(pdfPath)
			return c.renderFailure(up.Filename, err), nil
		}
		pages = info.Pages
	}

	log.Debug("file converted", "pdf", pdfName, "pages", pages)
	return Outcome{Result: &Result{
		Original:  up.Filename,
		PDF:       pdfName,
		SessionID: c.id,
		Pages:     pages,
	}}, nil
}

func (c *conversion) renderFailure(filename string, err error) Outcome {
	return failure(filename, ErrRenderingFailure, c.manager.catalog.RenderFailed(filename, err))
}

func failure(filename string, kind error, message string) Outcome {
	return Outcome{Failure: &FileError{Filename: filename, Kind: kind, Message: message}}
}

// saveUpload writes content to a new file at path.
func saveUpload(path string, content io.Reader) error {
	if content == nil {
		return errors.New("upload has no content")
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm) // #nosec G304 -- sanitized name inside the session dir
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
