package segment

import (
	"math"
	"sort"
	"strings"

	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/textproc"
)

// DuplicateTitleThreshold is the title word-set Jaccard similarity at or
// above which two sections are treated as the same section.
const DuplicateTitleThreshold = 0.80

// stage is one cascade step. It runs only while the page has fewer than
// runBelow candidates.
type stage struct {
	strategy Strategy
	runBelow int
}

// Engine runs the strategy cascade over every page of a document.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	base   *PatternSet
	stages []stage
	logger domain.Logger
}

// NewEngine creates the default cascade: font analysis, then text patterns
// when fonts found fewer than three sections, then paragraph structure when
// fewer than two, then chunking when nothing was found.
func NewEngine(logger domain.Logger) *Engine {
	return &Engine{
		base: BasePatterns(),
		stages: []stage{
			{strategy: FontStrategy{MaxVerticalGap: DefaultMaxVerticalGap}, runBelow: math.MaxInt},
			{strategy: TextPatternStrategy{}, runBelow: 3},
			{strategy: StructuralStrategy{}, runBelow: 2},
			{strategy: FallbackStrategy{}, runBelow: 1},
		},
		logger: logger,
	}
}

// Patterns returns the pattern set a request with the given persona context
// segments with. The engine's own base set is never modified.
func (e *Engine) Patterns(pc *domain.PersonaContext) *PatternSet {
	return e.base.Extend(pc)
}

// Segment extracts the candidate sections of doc. Candidates failing the
// validity filter are dropped, each page is ordered by confidence, and
// sections whose titles duplicate an earlier one are removed.
func (e *Engine) Segment(doc *domain.Document, pc *domain.PersonaContext, fontSizeThreshold float64) []domain.CandidateSection {
	patterns := e.Patterns(pc)

	var all []domain.CandidateSection
	for _, page := range doc.Pages {
		if strings.TrimSpace(page.Text) == "" && strings.TrimSpace(page.Layout) == "" {
			continue
		}
		in := PageInput{
			Document:          doc.Filename,
			Page:              page,
			Patterns:          patterns,
			FontSizeThreshold: fontSizeThreshold,
		}
		all = append(all, e.segmentPage(in)...)
	}

	unique := Deduplicate(all, DuplicateTitleThreshold)
	if e.logger != nil {
		e.logger.Debug("Document segmented",
			"document", doc.Filename,
			"pages", len(doc.Pages),
			"candidates", len(all),
			"sections", len(unique),
		)
	}
	return unique
}

func (e *Engine) segmentPage(in PageInput) []domain.CandidateSection {
	var found []domain.CandidateSection
	for _, st := range e.stages {
		if len(found) >= st.runBelow {
			continue
		}
		found = append(found, st.strategy.TryExtract(in)...)
	}

	valid := found[:0]
	for _, s := range found {
		if s.Validate() == nil {
			valid = append(valid, s)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Confidence > valid[j].Confidence
	})
	return valid
}

// Deduplicate keeps the first section of every group of similar titles.
func Deduplicate(sections []domain.CandidateSection, threshold float64) []domain.CandidateSection {
	if len(sections) == 0 {
		return nil
	}
	out := make([]domain.CandidateSection, 0, len(sections))
	seen := make([]textproc.WordSet, 0, len(sections))
	for _, s := range sections {
		title := textproc.FieldSet(s.SectionTitle)
		if len(title) == 0 {
			continue
		}
		dup := false
		for _, prev := range seen {
			if textproc.Jaccard(title, prev) >= threshold {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, title)
		out = append(out, s)
	}
	return out
}
