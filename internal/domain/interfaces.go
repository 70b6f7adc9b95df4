package domain

import (
	"context"
	"time"
)

// TextExtractor returns the raw text of every page of a PDF, in page order.
type TextExtractor interface {
	ExtractPages(ctx context.Context, path string) ([]RawPage, error)
}

// SpanExtractor returns font spans keyed by 1-based page number.
type SpanExtractor interface {
	ExtractSpans(ctx context.Context, path string) (map[int][]Span, error)
}

// DocumentValidator rejects structurally broken PDFs before extraction.
type DocumentValidator interface {
	Validate(path string) error
}

// DocumentSource fetches PDF bytes by name from remote storage.
type DocumentSource interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetAnalysisOptions() AnalysisOptions
	GetPageTimeout() time.Duration
	GetDocumentTimeout() time.Duration
	GetLoadConcurrency() int
	GetValidatePDF() bool
	GetProfilesFile() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseBucket() string
	GetCORSAllowedOrigins() []string
}
