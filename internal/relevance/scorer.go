// Package relevance scores candidate sections against a persona context and
// ranks them with a per-document diversity quota.
package relevance

import (
	"sort"
	"strings"

	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/textproc"
)

// Score component weights.
const (
	keywordWeight  = 0.40
	queryWeight    = 0.30
	qualityWeight  = 0.20
	richnessWeight = 0.10
)

// Scorer ranks sections. It has no state and is safe for concurrent use.
type Scorer struct {
	rankLimit int
}

// NewScorer returns a scorer that keeps at most DefaultRankLimit sections.
func NewScorer() *Scorer {
	return &Scorer{rankLimit: DefaultRankLimit}
}

// Score rates every section, sorts by score descending (ties keep input
// order), applies the diversity pass and assigns 1-based ranks.
// An empty input returns an empty, non-nil slice.
func (s *Scorer) Score(sections []domain.CandidateSection, pc *domain.PersonaContext) []domain.ScoredSection {
	if len(sections) == 0 {
		return []domain.ScoredSection{}
	}
	var keywords []string
	var query string
	if pc != nil {
		keywords = pc.Keywords
		query = pc.CombinedQuery
	}

	scored := make([]domain.ScoredSection, len(sections))
	for i, sec := range sections {
		scored[i] = domain.ScoredSection{
			CandidateSection: sec,
			RelevanceScore:   SectionScore(sec, keywords, query),
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	ranked := Diversify(scored, s.rankLimit)
	for i := range ranked {
		ranked[i].ImportanceRank = i + 1
	}
	return ranked
}

// SectionScore is the fixed blend of keyword overlap, query overlap, text
// quality and lexical richness. The result lies in [0, 1].
func SectionScore(sec domain.CandidateSection, keywords []string, query string) float64 {
	text := strings.ToLower(sec.SectionTitle + " " + sec.Content)
	score := keywordWeight*KeywordOverlap(text, keywords) +
		queryWeight*QueryOverlap(text, query) +
		qualityWeight*Quality(sec) +
		richnessWeight*Richness(text)
	return clamp(score)
}

// KeywordOverlap rewards keywords found as whole words twice as much as
// keywords found inside a longer word.
func KeywordOverlap(text string, keywords []string) float64 {
	if len(keywords) == 0 || strings.TrimSpace(text) == "" {
		return 0
	}
	words := textproc.NewWordSet(text)
	kwSet := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		kwSet[strings.ToLower(k)] = struct{}{}
	}

	direct, partial := 0, 0
	for k := range kwSet {
		if words.Has(k) {
			direct++
		}
		for w := range words {
			if strings.Contains(w, k) {
				partial++
				break
			}
		}
	}
	return clamp(float64(2*direct+partial) / float64(2*len(kwSet)))
}

// QueryOverlap is the Jaccard similarity of the word sets of text and query.
func QueryOverlap(text, query string) float64 {
	return textproc.Jaccard(textproc.NewWordSet(text), textproc.NewWordSet(query))
}

// Quality is an additive bonus for well-formed titles and bodies of useful size.
func Quality(sec domain.CandidateSection) float64 {
	score := 0.0
	titleLen := textproc.RuneLen(sec.SectionTitle)
	switch {
	case titleLen >= 10 && titleLen <= 100:
		score += 0.3
	case titleLen >= 5 && titleLen <= 150:
		score += 0.1
	}

	if sec.Content != "" {
		words := len(strings.Fields(sec.Content))
		switch {
		case words >= 20 && words <= 200:
			score += 0.4
		case words > 10:
			score += 0.2
		}
	}

	if strings.Contains(sec.SectionTitle, " ") && !strings.HasPrefix(sec.SectionTitle, " ") {
		score += 0.3
	}
	return clamp(score)
}

// Richness is the type/token ratio of the text's words, with a bonus for long
// varied texts.
func Richness(text string) float64 {
	words := textproc.Words(text)
	if len(words) == 0 {
		return 0
	}
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[w] = struct{}{}
	}
	ratio := float64(len(unique)) / float64(len(words))
	if len(words) > 50 && ratio > 0.7 {
		ratio += 0.2
	}
	return clamp(ratio)
}

func clamp(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
