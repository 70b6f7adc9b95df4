package domain

import (
	"strings"
	"unicode/utf8"
)

// ExtractionMethod tags the segmentation strategy that produced a section.
type ExtractionMethod string

const (
	MethodFontAnalysis  ExtractionMethod = "font_analysis"
	MethodTextPattern   ExtractionMethod = "text_pattern"
	MethodStructural    ExtractionMethod = "structural"
	MethodFallbackChunk ExtractionMethod = "fallback_chunk"
)

// Confidence returns the fixed prior of the strategy.
func (m ExtractionMethod) Confidence() float64 {
	switch m {
	case MethodFontAnalysis:
		return 0.95
	case MethodTextPattern:
		return 0.85
	case MethodStructural:
		return 0.70
	default:
		return 0.50
	}
}

// Section validity bounds.
const (
	MinTitleLength  = 5
	MaxTitleLength  = 200
	MinContentWords = 5
	// Content whose leading words average fewer characters than this is
	// treated as OCR noise.
	MinAvgLeadingWordLength = 4.0
)

// CandidateSection is an unscored title and body pair found on one page.
type CandidateSection struct {
	Document         string           `json:"document"`
	PageNumber       int              `json:"page_number"`
	SectionTitle     string           `json:"section_title"`
	Content          string           `json:"content"`
	WordCount        int              `json:"word_count"`
	ExtractionMethod ExtractionMethod `json:"extraction_method"`
	Confidence       float64          `json:"confidence"`
}

// NewCandidateSection builds a section and derives its word count and prior.
func NewCandidateSection(document string, page int, title, content string, method ExtractionMethod) CandidateSection {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	return CandidateSection{
		Document:         document,
		PageNumber:       page,
		SectionTitle:     title,
		Content:          content,
		WordCount:        len(strings.Fields(content)),
		ExtractionMethod: method,
		Confidence:       method.Confidence(),
	}
}

// Validate applies the section validity filter.
func (s CandidateSection) Validate() error {
	titleLen := utf8.RuneCountInString(s.SectionTitle)
	if titleLen < MinTitleLength || titleLen > MaxTitleLength {
		return &ValidationError{Field: "section_title", Message: "title length out of range"}
	}

	words := strings.Fields(s.Content)
	if len(words) < MinContentWords {
		return &ValidationError{Field: "content", Message: "too few words"}
	}

	// Leading-token garbage check, skipped for very short bodies and when any
	// leading token is long enough to be words run together by the extractor.
	if len(words) <= MinContentWords {
		return nil
	}
	lead := words
	if len(lead) > 10 {
		lead = lead[:10]
	}
	total := 0
	for _, w := range lead {
		n := utf8.RuneCountInString(w)
		if n >= 15 {
			return nil
		}
		total += n
	}
	if float64(total)/float64(len(lead)) < MinAvgLeadingWordLength {
		return &ValidationError{Field: "content", Message: "content looks like extraction noise"}
	}
	return nil
}

// ScoredSection is a candidate after relevance scoring.
type ScoredSection struct {
	CandidateSection
	RelevanceScore float64 `json:"relevance_score"`
	ImportanceRank int     `json:"importance_rank"`
}

// Subsection is a refined excerpt of a top ranked section.
type Subsection struct {
	Document      string `json:"document"`
	PageNumber    int    `json:"page_number"`
	SourceSection string `json:"source_section"`
	RefinedText   string `json:"refined_text"`
	TextLength    int    `json:"text_length"`
}
