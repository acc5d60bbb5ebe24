package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-html2pdf/internal/pdfinfo"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeConverter writes a stub PDF, or fails for sources whose content
// contains "FAIL".
type fakeConverter struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeConverter) ConvertFile(ctx context.Context, htmlPath, pdfPath string) error {
	f.mu.Lock()
	f.calls = append(f.calls, filepath.Base(htmlPath))
	f.mu.Unlock()

	content, err := os.ReadFile(htmlPath)
	if err != nil {
		return err
	}
	if strings.Contains(string(content), "FAIL") {
		return errors.New("page crashed")
	}
	return os.WriteFile(pdfPath, []byte("%PDF-1.7 "+string(content)), 0o600)
}

// fakePool hands out a single fakeConverter and counts usage.
type fakePool struct {
	mu         sync.Mutex
	conv       *fakeConverter
	acquireErr error
	acquired   int
	released   int
}

func newFakePool() *fakePool {
	return &fakePool{conv: &fakeConverter{}}
}

func (p *fakePool) Acquire(ctx context.Context) (FileConverter, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.acquired++
	return p.conv, nil
}

func (p *fakePool) Release(FileConverter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

// fakeInspector reports a fixed page count, or rejects PDFs whose content
// contains "BROKEN".
type fakeInspector struct {
	pages int
}

func (f *fakeInspector) Inspect(path string) (pdfinfo.Info, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return pdfinfo.Info{}, err
	}
	if strings.Contains(string(content), "BROKEN") {
		return pdfinfo.Info{}, pdfinfo.ErrInvalidPDF
	}
	return pdfinfo.Info{Pages: f.pages}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestStorage(t testing.TB) *Storage {
	t.Helper()

	root := t.TempDir()
	s, err := NewStorage(filepath.Join(root, "uploads"), filepath.Join(root, "outputs"))
	if err != nil {
		t.Fatalf("NewStorage() error = %v", err)
	}
	return s
}

func upload(name, content string) Upload {
	return Upload{Filename: name, Size: int64(len(content)), Content: strings.NewReader(content)}
}

func listDir(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
