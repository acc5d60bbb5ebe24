package main

import (
	"context"
	"errors"
	"testing"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
)

// foreignConverter is not produced by the html2pdf pool.
type foreignConverter struct{}

func (foreignConverter) ConvertFile(context.Context, string, string) error { return nil }

// ---------------------------------------------------------------------------
// TestConverterPool - Adapter over html2pdf.ConverterPool
// ---------------------------------------------------------------------------

func TestConverterPool(t *testing.T) {
	t.Parallel()

	pool := html2pdf.NewConverterPool(1)
	adapter := converterPool{pool: pool}
	ctx := context.Background()

	first, err := adapter.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if _, ok := first.(*html2pdf.Converter); !ok {
		t.Fatalf("Acquire returned %T, want *html2pdf.Converter", first)
	}

	// Pool of one is exhausted until release.
	timeoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := adapter.Acquire(timeoutCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline while exhausted, got %v", err)
	}

	adapter.Release(foreignConverter{})
	adapter.Release(first)

	second, err := adapter.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	if second != first {
		t.Error("expected the released converter to be reused")
	}
	adapter.Release(second)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := adapter.Acquire(ctx); !errors.Is(err, html2pdf.ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}
