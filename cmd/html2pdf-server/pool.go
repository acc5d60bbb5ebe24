package main

import (
	"context"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/session"
)

// converterPool adapts *html2pdf.ConverterPool to session.ConverterPool.
type converterPool struct {
	pool *html2pdf.ConverterPool
}

// Compile-time check that converterPool implements session.ConverterPool.
var _ session.ConverterPool = converterPool{}

// Acquire gets a converter, blocking until one is free or ctx is done.
func (p converterPool) Acquire(ctx context.Context) (session.FileConverter, error) {
	conv, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release returns a converter obtained from Acquire. Foreign values are ignored.
func (p converterPool) Release(fc session.FileConverter) {
	if conv, ok := fc.(*html2pdf.Converter); ok {
		p.pool.Release(conv)
	}
}
