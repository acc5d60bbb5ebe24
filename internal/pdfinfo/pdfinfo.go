// Package pdfinfo inspects rendered PDFs before they are offered for download.
package pdfinfo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Sentinel errors for PDF inspection.
var (
	ErrEmptyFile  = errors.New("PDF file is empty")
	ErrInvalidPDF = errors.New("invalid PDF")
	ErrNoPages    = errors.New("PDF has no pages")
)

// Info describes a rendered PDF.
type Info struct {
	Pages int
}

// Inspector validates a PDF on disk and reports its page count.
type Inspector interface {
	Inspect(path string) (Info, error)
}

// Compile-time interface check.
var _ Inspector = (*PDFCPU)(nil)

var disableConfigOnce sync.Once

// PDFCPU inspects files with pdfcpu in relaxed validation mode.
// Chrome output is well-formed but relaxed mode keeps minor producer quirks
// from failing a conversion.
type PDFCPU struct {
	conf *model.Configuration
}

// New creates a pdfcpu-backed Inspector.
// pdfcpu's user config directory is disabled so the server never writes
// under the process owner's home.
func New() *PDFCPU {
	disableConfigOnce.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFCPU{conf: conf}
}

// Inspect validates the file at path and counts its pages.
func (p *PDFCPU) Inspect(path string) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if stat.Size() == 0 {
		return Info{}, ErrEmptyFile
	}

	f, err := os.Open(path) // #nosec G304 -- path is a session output file
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	defer func() { _ = f.Close() }()

	if err := api.Validate(f, p.conf); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	pages, err := api.PageCount(f, p.conf)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	if pages == 0 {
		return Info{}, ErrNoPages
	}

	return Info{Pages: pages}, nil
}
