package domain

import "math"

// AnalysisOptions bounds the size of a Result.
type AnalysisOptions struct {
	MaxSections             int     `json:"max_sections" yaml:"max_sections"`
	MaxSubsections          int     `json:"max_subsections" yaml:"max_subsections"`
	MaxTextLength           int     `json:"max_text_length" yaml:"max_text_length"`
	HeaderFontSizeThreshold float64 `json:"header_font_size_threshold" yaml:"header_font_size_threshold"`
}

// DefaultAnalysisOptions returns the stock limits.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		MaxSections:             15,
		MaxSubsections:          10,
		MaxTextLength:           500,
		HeaderFontSizeThreshold: 14,
	}
}

// Validate rejects non-positive limits.
func (o AnalysisOptions) Validate() error {
	switch {
	case o.MaxSections <= 0:
		return &ValidationError{Field: "max_sections", Message: "must be positive"}
	case o.MaxSubsections <= 0:
		return &ValidationError{Field: "max_subsections", Message: "must be positive"}
	case o.MaxTextLength <= 0:
		return &ValidationError{Field: "max_text_length", Message: "must be positive"}
	case o.HeaderFontSizeThreshold <= 0, math.IsNaN(o.HeaderFontSizeThreshold), math.IsInf(o.HeaderFontSizeThreshold, 0):
		return &ValidationError{Field: "header_font_size_threshold", Message: "must be positive"}
	}
	return nil
}

// Merge overlays the non-zero fields of override onto o.
func (o AnalysisOptions) Merge(override AnalysisOptions) AnalysisOptions {
	if override.MaxSections != 0 {
		o.MaxSections = override.MaxSections
	}
	if override.MaxSubsections != 0 {
		o.MaxSubsections = override.MaxSubsections
	}
	if override.MaxTextLength != 0 {
		o.MaxTextLength = override.MaxTextLength
	}
	if override.HeaderFontSizeThreshold != 0 {
		o.HeaderFontSizeThreshold = override.HeaderFontSizeThreshold
	}
	return o
}

// Result is the only artifact handed to the UI, export and evaluation layers.
// Field names are the wire contract.
type Result struct {
	Metadata           ResultMetadata       `json:"metadata"`
	Statistics         ResultStatistics     `json:"statistics"`
	ExtractedSections  []ExtractedSection   `json:"extracted_sections"`
	SubsectionAnalysis []SubsectionAnalysis `json:"subsection_analysis"`
}

type ResultMetadata struct {
	InputDocuments        []string `json:"input_documents"`
	DocumentCount         int      `json:"document_count"`
	Persona               string   `json:"persona"`
	JobToBeDone           string   `json:"job_to_be_done"`
	ProcessingTimestamp   string   `json:"processing_timestamp"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	SystemVersion         string   `json:"system_version"`
}

type ResultStatistics struct {
	TotalSectionsFound    int            `json:"total_sections_found"`
	SectionsIncluded      int            `json:"sections_included"`
	SubsectionsIncluded   int            `json:"subsections_included"`
	TotalWordsAnalyzed    int            `json:"total_words_analyzed"`
	AverageRelevanceScore float64        `json:"average_relevance_score"`
	MaxRelevanceScore     float64        `json:"max_relevance_score"`
	MinRelevanceScore     float64        `json:"min_relevance_score"`
	SectionsPerDocument   map[string]int `json:"sections_per_document"`
}

type ExtractedSection struct {
	Document         string           `json:"document"`
	SectionTitle     string           `json:"section_title"`
	ImportanceRank   int              `json:"importance_rank"`
	PageNumber       int              `json:"page_number"`
	WordCount        int              `json:"word_count"`
	RelevanceScore   float64          `json:"relevance_score"`
	ExtractionMethod ExtractionMethod `json:"extraction_method,omitempty"`
}

type SubsectionAnalysis struct {
	Document      string `json:"document"`
	RefinedText   string `json:"refined_text"`
	PageNumber    int    `json:"page_number"`
	SourceSection string `json:"source_section"`
	TextLength    int    `json:"text_length"`
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
