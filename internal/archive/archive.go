// Package archive assembles session PDFs into a single zip download.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel errors for archive assembly.
var (
	ErrReadDir  = errors.New("failed to read directory")
	ErrAddEntry = errors.New("failed to add archive entry")
	ErrFinalize = errors.New("failed to finalize archive")
)

// PDFExtension is the only suffix collected into archives.
const PDFExtension = ".pdf"

// ZipPDFs writes a flat zip of every regular *.pdf file directly inside dir.
// The suffix match is case-sensitive.
// Subdirectories, symlinks and other files are ignored. Entries are compressed
// with Deflate and named by their base name only. Returns the entry count.
func ZipPDFs(dir string, w io.Writer) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrReadDir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), PDFExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	zw := zip.NewWriter(w)
	for _, name := range names {
		if err := addFile(zw, dir, name); err != nil {
			_ = zw.Close()
			return 0, err
		}
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFinalize, err)
	}
	return len(names), nil
}

func addFile(zw *zip.Writer, dir, name string) error {
	path := filepath.Join(dir, name)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrAddEntry, name, err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrAddEntry, name, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrAddEntry, name, err)
	}

	src, err := os.Open(path) // #nosec G304 -- name comes from ReadDir of dir
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrAddEntry, name, err)
	}
	defer func() { _ = src.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrAddEntry, name, err)
	}
	return nil
}
