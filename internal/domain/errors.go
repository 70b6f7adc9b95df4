package domain

import "errors"

// Domain errors
var (
	ErrNoValidDocuments    = errors.New("no valid PDF documents found")
	ErrNoSectionsExtracted = errors.New("no sections could be extracted from the documents")
	ErrDocumentEmpty       = errors.New("document has no pages")
	ErrInsufficientText    = errors.New("document has very little text content")
	ErrInvalidFile         = errors.New("invalid file")
	ErrUnknownSource       = errors.New("document source not configured")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
