package relevance

import "doc-intelligence/internal/domain"

// DefaultRankLimit is the most sections a ranking keeps.
const DefaultRankLimit = 15

// Diversify re-ranks score-sorted sections so every source document is
// represented. The first pass takes up to an equal quota per document in
// score order; the second fills the remaining slots with the best sections
// not yet taken. The result holds min(limit, len(sorted)) sections.
func Diversify(sorted []domain.ScoredSection, limit int) []domain.ScoredSection {
	if len(sorted) == 0 {
		return []domain.ScoredSection{}
	}
	needed := min(limit, len(sorted))

	docs := make(map[string]struct{})
	for _, s := range sorted {
		docs[s.Document] = struct{}{}
	}
	perDoc := max(1, needed/len(docs))

	taken := make([]bool, len(sorted))
	counts := make(map[string]int, len(docs))
	out := make([]domain.ScoredSection, 0, needed)
	for i, s := range sorted {
		if counts[s.Document] < perDoc {
			out = append(out, s)
			taken[i] = true
			counts[s.Document]++
		}
	}
	for i, s := range sorted {
		if len(out) >= needed {
			break
		}
		if !taken[i] {
			out = append(out, s)
			taken[i] = true
		}
	}
	if len(out) > needed {
		out = out[:needed]
	}
	return out
}
