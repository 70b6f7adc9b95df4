package pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/textproc"
)

// MinDocumentChars is the least normalized text a document must carry.
const MinDocumentChars = 100

// LoaderOptions tunes a Loader. Zero values disable the timeout and load one
// document at a time.
type LoaderOptions struct {
	DocumentTimeout time.Duration
	Concurrency     int
}

// Loader builds documents from files: validate, extract, normalize, admit.
type Loader struct {
	text      domain.TextExtractor
	spans     domain.SpanExtractor
	validator domain.DocumentValidator
	logger    domain.Logger
	opts      LoaderOptions
}

// NewLoader creates a loader. spans and validator may be nil.
func NewLoader(text domain.TextExtractor, spans domain.SpanExtractor, validator domain.DocumentValidator, logger domain.Logger, opts LoaderOptions) *Loader {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Loader{text: text, spans: spans, validator: validator, logger: logger, opts: opts}
}

// LoadAll loads every path. Documents come back in input order regardless of
// concurrency; each path that cannot be loaded is reported as a failure.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]*domain.Document, []domain.LoadFailure) {
	docs := make([]*domain.Document, len(paths))
	errs := make([]error, len(paths))

	var g errgroup.Group
	g.SetLimit(l.opts.Concurrency)
	for i, p := range paths {
		g.Go(func() error {
			docs[i], errs[i] = l.Load(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	loaded := make([]*domain.Document, 0, len(paths))
	var failures []domain.LoadFailure
	for i, p := range paths {
		if errs[i] != nil {
			failures = append(failures, domain.LoadFailure{Path: p, Err: errs[i]})
			continue
		}
		loaded = append(loaded, docs[i])
	}
	return loaded, failures
}

// Load reads one document.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Document, error) {
	if l.opts.DocumentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.DocumentTimeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.validator != nil {
		if err := l.validator.Validate(path); err != nil {
			return nil, err
		}
	}

	raw, err := l.text.ExtractPages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}
	if len(raw) == 0 {
		return nil, domain.ErrDocumentEmpty
	}

	var spans map[int][]domain.Span
	if l.spans != nil {
		spans, err = l.spans.ExtractSpans(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			l.logger.Debug("Font spans unavailable", "document", path, "error", err)
		}
	}

	doc := buildDocument(filepath.Base(path), path, raw, spans)
	if doc.TotalChars < MinDocumentChars {
		return nil, fmt.Errorf("%w: %d characters", domain.ErrInsufficientText, doc.TotalChars)
	}
	l.logger.Debug("Document loaded", "document", doc.Filename, "pages", doc.TotalPages, "chars", doc.TotalChars)
	return doc, nil
}

// buildDocument normalizes raw pages. Pages are renumbered 1..n in the order
// the extractor returned them.
func buildDocument(name, path string, raw []domain.RawPage, spans map[int][]domain.Span) *domain.Document {
	doc := &domain.Document{
		Filename:   name,
		Path:       path,
		Pages:      make([]domain.Page, len(raw)),
		TotalPages: len(raw),
	}
	for i, rp := range raw {
		text := textproc.Normalize(rp.Text)
		page := domain.Page{
			PageNumber: i + 1,
			Text:       text,
			CharCount:  textproc.RuneLen(text),
			Layout:     textproc.NormalizeLayout(rp.Text),
			Spans:      rp.Spans,
		}
		if s, ok := spans[rp.Number]; ok && len(page.Spans) == 0 {
			page.Spans = s
		}
		doc.Pages[i] = page
		doc.TotalChars += page.CharCount
	}
	if doc.TotalPages > 0 {
		doc.AvgCharsPerPage = domain.Round(float64(doc.TotalChars)/float64(doc.TotalPages), 2)
	}
	return doc
}
