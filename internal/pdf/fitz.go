// Package pdf turns PDF files into loaded documents. Page text comes from
// MuPDF through go-fitz; font spans come from ledongthuc/pdf; pdfcpu checks
// the file structure first.
package pdf

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/go-fitz"

	"doc-intelligence/internal/domain"
)

// DefaultPageTimeout bounds the extraction of a single page.
const DefaultPageTimeout = 90 * time.Second

// FitzExtractor extracts page text with MuPDF.
type FitzExtractor struct {
	logger      domain.Logger
	pageTimeout time.Duration
}

// NewFitzExtractor creates a text extractor. A zero timeout uses
// DefaultPageTimeout.
func NewFitzExtractor(logger domain.Logger, pageTimeout time.Duration) *FitzExtractor {
	if pageTimeout <= 0 {
		pageTimeout = DefaultPageTimeout
	}
	return &FitzExtractor{logger: logger, pageTimeout: pageTimeout}
}

type pageResult struct {
	text string
	err  error
}

// ExtractPages returns the text of every page in order. A page that fails or
// exceeds the page timeout comes back empty so page numbering is preserved.
func (e *FitzExtractor) ExtractPages(ctx context.Context, path string) ([]domain.RawPage, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	// A timed out page keeps running in MuPDF; the document is closed once
	// every page goroutine has returned.
	var inflight sync.WaitGroup
	defer func() {
		go func() {
			inflight.Wait()
			doc.Close()
		}()
	}()

	numPages := doc.NumPage()
	pages := make([]domain.RawPage, 0, numPages)
	for idx := 0; idx < numPages; idx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resultCh := make(chan pageResult, 1)
		inflight.Add(1)
		go func(i int) {
			defer inflight.Done()
			t, err := doc.Text(i)
			resultCh <- pageResult{text: t, err: err}
		}(idx)

		var res pageResult
		timer := time.NewTimer(e.pageTimeout)
		select {
		case res = <-resultCh:
		case <-timer.C:
			e.logger.Warn("PDF page extraction timeout; using empty page",
				"document", path, "page", idx+1, "total", numPages, "timeout_sec", int(e.pageTimeout.Seconds()))
			res.err = fmt.Errorf("timeout after %v", e.pageTimeout)
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
		timer.Stop()

		if res.err != nil {
			e.logger.Warn("Failed to extract text from page", "document", path, "page", idx+1, "error", res.err)
			res.text = ""
		}
		pages = append(pages, domain.RawPage{Number: idx + 1, Text: res.text})
	}
	return pages, nil
}
