package domain

import "fmt"

// Page is one page of a loaded document.
type Page struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
	CharCount  int    `json:"char_count"`

	// Layout holds the same cleaned text as Text but keeps line breaks and
	// single blank lines between paragraphs. Line based segmentation reads it.
	Layout string `json:"-"`

	// Spans is optional font metadata. Empty when the extractor could not
	// provide it.
	Spans []Span `json:"-"`
}

// Document is an immutable, loaded PDF.
type Document struct {
	Filename        string  `json:"filename"`
	Path            string  `json:"-"`
	Pages           []Page  `json:"pages"`
	TotalPages      int     `json:"total_pages"`
	TotalChars      int     `json:"total_chars"`
	AvgCharsPerPage float64 `json:"avg_chars_per_page"`
}

// Validate checks structural invariants of a loaded document.
func (d *Document) Validate() error {
	if d.Filename == "" {
		return &ValidationError{Field: "filename", Message: "filename is required"}
	}
	if len(d.Pages) != d.TotalPages {
		return &ValidationError{Field: "total_pages", Message: fmt.Sprintf("expected %d pages, got %d", d.TotalPages, len(d.Pages))}
	}
	for i, p := range d.Pages {
		if p.PageNumber != i+1 {
			return &ValidationError{Field: "pages", Message: fmt.Sprintf("page %d has number %d", i+1, p.PageNumber)}
		}
	}
	return nil
}

// Span is a run of text sharing one font, as reported by the span extractor.
// Coordinates grow downward: Y0 is the top edge and Y1 the bottom edge.
type Span struct {
	Text string  `json:"text"`
	Size float64 `json:"size"`
	Bold bool    `json:"bold"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
}

// RawPage is what a text extractor hands to the loader before normalization.
type RawPage struct {
	Number int
	Text   string
	Spans  []Span
}

// LoadFailure records a document dropped from a batch.
type LoadFailure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

func (f LoadFailure) Error() string {
	return f.Path + ": " + f.Err.Error()
}
