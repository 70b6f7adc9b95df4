package service

import (
	"strings"

	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/textproc"
)

const (
	refineThreshold = 300
	// refineMinCut keeps a hard cut from backing up into the first part of
	// the excerpt when looking for a word boundary.
	refineMinCut = 250
)

// Refiner turns ranked sections into short excerpts.
type Refiner struct{}

// NewRefiner creates a refiner.
func NewRefiner() *Refiner {
	return &Refiner{}
}

// Refine emits one subsection per section with content. Content longer than
// 300 characters is reduced to its first three sentences (two when it has
// only two); content that does not split is cut at 300 characters.
func (r *Refiner) Refine(sections []domain.ScoredSection) []domain.Subsection {
	out := make([]domain.Subsection, 0, len(sections))
	for _, s := range sections {
		content := strings.TrimSpace(s.Content)
		if content == "" {
			continue
		}
		text := RefineText(content)
		out = append(out, domain.Subsection{
			Document:      s.Document,
			PageNumber:    s.PageNumber,
			SourceSection: s.SectionTitle,
			RefinedText:   text,
			TextLength:    textproc.RuneLen(text),
		})
	}
	return out
}

// RefineText shortens a single section body.
func RefineText(content string) string {
	if textproc.RuneLen(content) <= refineThreshold {
		return content
	}
	sentences := textproc.SplitSentences(content)
	switch {
	case len(sentences) >= 3:
		return strings.Join(sentences[:3], " ")
	case len(sentences) == 2:
		return strings.Join(sentences, " ")
	}

	runes := []rune(content)[:refineThreshold]
	for i := len(runes) - 1; i > refineMinCut; i-- {
		if runes[i] == ' ' {
			return string(runes[:i])
		}
	}
	return string(runes)
}
