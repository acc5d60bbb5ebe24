package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/alnah/go-html2pdf/internal/session"
)

// uploadField is the multipart field carrying the HTML files.
const uploadField = "files[]"

const (
	mimePDF = "application/pdf"
	mimeZip = "application/zip"

	archiveTimeLayout = "20060102_150405"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type convertedFile struct {
	Original  string `json:"original"`
	PDF       string `json:"pdf"`
	SessionID string `json:"session_id"`
	Pages     int    `json:"pages"`
}

type convertResponse struct {
	Success   bool            `json:"success"`
	Converted []convertedFile `json:"converted"`
	Errors    []string        `json:"errors"`
	SessionID string          `json:"session_id"`
}

// handleIndex serves the upload page.
// GET /
func (s *Server) handleIndex(c echo.Context) error {
	return c.HTML(http.StatusOK, s.index)
}

// handleHealth reports liveness.
// GET /health
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// handleConvert converts the uploaded files into a new session.
// POST /convert
func (s *Server) handleConvert(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		if isTooLarge(err) {
			return echo.ErrStatusRequestEntityTooLarge
		}
		return c.JSON(http.StatusBadRequest, errorResponse{Error: s.catalog.NoFilesSelected})
	}
	defer func() { _ = form.RemoveAll() }()

	headers := form.File[uploadField]
	if len(headers) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: s.catalog.NoFilesSelected})
	}

	uploads := make([]session.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeUploads(uploads)
			return fmt.Errorf("opening upload %q: %w", fh.Filename, err)
		}
		uploads = append(uploads, session.Upload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Content:  f,
		})
	}
	defer closeUploads(uploads)

	manifest, err := s.sessions.Convert(c.Request().Context(), uploads)
	var failed *session.ConversionFailedError
	switch {
	case errors.Is(err, session.ErrNoFilesProvided):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: s.catalog.NoFilesSelected})
	case errors.As(err, &failed):
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error:   s.catalog.ConversionFailed,
			Details: failed.Messages(),
		})
	case err != nil:
		return err
	}

	resp := convertResponse{
		Success:   true,
		Converted: make([]convertedFile, len(manifest.Results)),
		Errors:    manifest.Messages(),
		SessionID: manifest.SessionID,
	}
	for i, r := range manifest.Results {
		resp.Converted[i] = convertedFile{
			Original:  r.Original,
			PDF:       r.PDF,
			SessionID: r.SessionID,
			Pages:     r.Pages,
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// handleDownload streams one PDF of a session.
// GET /download/:session_id/:filename
func (s *Server) handleDownload(c echo.Context) error {
	id := pathParam(c, "session_id")
	name := pathParam(c, "filename")

	f, err := s.sessions.OpenPDF(id, name)
	if errors.Is(err, session.ErrFileNotFound) {
		return c.JSON(http.StatusNotFound, errorResponse{Error: s.catalog.FileNotFound})
	}
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}

	setAttachment(c, name)
	c.Response().Header().Set(echo.HeaderContentType, mimePDF)
	http.ServeContent(c.Response(), c.Request(), name, info.ModTime(), f)
	return nil
}

// handleDownloadAll sends every PDF of a session as one zip archive.
// GET /download-all/:session_id
func (s *Server) handleDownloadAll(c echo.Context) error {
	var buf bytes.Buffer
	if _, err := s.sessions.ArchiveAll(pathParam(c, "session_id"), &buf); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: s.catalog.SessionNotFound})
		}
		return err
	}

	setAttachment(c, s.archiveName())
	return c.Blob(http.StatusOK, mimeZip, buf.Bytes())
}

// handleCleanup deletes a session. It succeeds for unknown ids too.
// POST /cleanup/:session_id
func (s *Server) handleCleanup(c echo.Context) error {
	s.sessions.Cleanup(pathParam(c, "session_id"))
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (s *Server) archiveName() string {
	return s.catalog.ArchivePrefix + "_" + s.now().Format(archiveTimeLayout) + ".zip"
}

// setAttachment sets Content-Disposition, RFC 2231 encoding non-ASCII names.
func setAttachment(c echo.Context, filename string) {
	value := mime.FormatMediaType("attachment", map[string]string{"filename": filename})
	if value == "" {
		value = "attachment"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, value)
}

// pathParam returns a decoded path parameter. echo routes on the raw path
// when the request URL carries one, leaving parameters escaped.
func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

func isTooLarge(err error) bool {
	if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
		return true
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
		return true
	}
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func closeUploads(uploads []session.Upload) {
	for _, up := range uploads {
		if closer, ok := up.Content.(io.Closer); ok {
			_ = closer.Close()
		}
	}
}
