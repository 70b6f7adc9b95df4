package service

import (
	"strings"
	"time"

	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/textproc"
)

// SystemVersion is reported in every result's metadata.
const SystemVersion = "2.0.0-generic"

const (
	defaultPersonaLabel = "General User"
	defaultJobLabel     = "Document Analysis"
)

// resultInput carries everything the result builder reads.
type resultInput struct {
	documents   []*domain.Document
	persona     string
	job         string
	candidates  int
	ranked      []domain.ScoredSection
	subsections []domain.Subsection
	options     domain.AnalysisOptions
	started     time.Time
	finished    time.Time
}

// buildResult assembles the wire result. Sections and subsections are capped
// at the configured limits; statistics describe the full ranking.
func buildResult(in resultInput) *domain.Result {
	names := make([]string, len(in.documents))
	for i, d := range in.documents {
		names[i] = d.Filename
	}

	persona := strings.TrimSpace(in.persona)
	if persona == "" {
		persona = defaultPersonaLabel
	}
	job := strings.TrimSpace(in.job)
	if job == "" {
		job = defaultJobLabel
	}

	return &domain.Result{
		Metadata: domain.ResultMetadata{
			InputDocuments:        names,
			DocumentCount:         len(names),
			Persona:               persona,
			JobToBeDone:           job,
			ProcessingTimestamp:   in.finished.UTC().Format(time.RFC3339),
			ProcessingTimeSeconds: domain.Round(in.finished.Sub(in.started).Seconds(), 2),
			SystemVersion:         SystemVersion,
		},
		Statistics:         buildStatistics(in),
		ExtractedSections:  formatSections(in.ranked, in.options.MaxSections),
		SubsectionAnalysis: formatSubsections(in.subsections, in.options.MaxSubsections, in.options.MaxTextLength),
	}
}

func buildStatistics(in resultInput) domain.ResultStatistics {
	stats := domain.ResultStatistics{
		TotalSectionsFound:  in.candidates,
		SectionsIncluded:    min(len(in.ranked), in.options.MaxSections),
		SubsectionsIncluded: min(len(in.subsections), in.options.MaxSubsections),
		SectionsPerDocument: make(map[string]int),
	}
	if len(in.ranked) == 0 {
		return stats
	}

	sum := 0.0
	hi, lo := in.ranked[0].RelevanceScore, in.ranked[0].RelevanceScore
	for _, s := range in.ranked {
		stats.SectionsPerDocument[s.Document]++
		stats.TotalWordsAnalyzed += s.WordCount
		sum += s.RelevanceScore
		hi = max(hi, s.RelevanceScore)
		lo = min(lo, s.RelevanceScore)
	}
	stats.AverageRelevanceScore = domain.Round(sum/float64(len(in.ranked)), 3)
	stats.MaxRelevanceScore = domain.Round(hi, 3)
	stats.MinRelevanceScore = domain.Round(lo, 3)
	return stats
}

func formatSections(ranked []domain.ScoredSection, limit int) []domain.ExtractedSection {
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]domain.ExtractedSection, len(ranked))
	for i, s := range ranked {
		out[i] = domain.ExtractedSection{
			Document:         s.Document,
			SectionTitle:     s.SectionTitle,
			ImportanceRank:   s.ImportanceRank,
			PageNumber:       s.PageNumber,
			WordCount:        s.WordCount,
			RelevanceScore:   domain.Round(s.RelevanceScore, 3),
			ExtractionMethod: s.ExtractionMethod,
		}
	}
	return out
}

func formatSubsections(subs []domain.Subsection, limit, maxText int) []domain.SubsectionAnalysis {
	if len(subs) > limit {
		subs = subs[:limit]
	}
	out := make([]domain.SubsectionAnalysis, len(subs))
	for i, s := range subs {
		text := capText(s.RefinedText, maxText)
		out[i] = domain.SubsectionAnalysis{
			Document:      s.Document,
			RefinedText:   text,
			PageNumber:    s.PageNumber,
			SourceSection: s.SourceSection,
			TextLength:    textproc.RuneLen(text),
		}
	}
	return out
}

// capText cuts text to max characters at the last word boundary and marks
// the cut with an ellipsis.
func capText(text string, maxLen int) string {
	if textproc.RuneLen(text) <= maxLen {
		return text
	}
	cut := textproc.Truncate(text, maxLen)
	if i := strings.LastIndex(cut, " "); i >= 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
