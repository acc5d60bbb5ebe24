package html2pdf

import (
	"context"
	"os"
	"sync"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockRenderer records the staged HTML it was asked to render.
type mockRenderer struct {
	mu         sync.Mutex
	Result     []byte
	Err        error
	CalledWith string
	CalledPage *PageSettings
	StagedHTML string
	Calls      int
	Closed     bool
	CloseErr   error
	// block, when set, makes RenderFromFile wait for ctx to be done.
	block bool
}

func (m *mockRenderer) RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error) {
	m.mu.Lock()
	m.Calls++
	m.CalledWith = filePath
	m.CalledPage = page
	if content, err := os.ReadFile(filePath); err == nil {
		m.StagedHTML = string(content)
	}
	block := m.block
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.Result, m.Err
}

func (m *mockRenderer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.CloseErr
}

// mockStyleLoader serves a fixed stylesheet.
type mockStyleLoader struct {
	css string
	err error
}

func (m *mockStyleLoader) LoadStyle(name string) (string, error) {
	return m.css, m.err
}
