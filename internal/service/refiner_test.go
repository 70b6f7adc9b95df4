package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intelligence/internal/domain"
)

func TestRefineText_FourSentencesOf310Chars(t *testing.T) {
	s1 := "The onboarding workflow starts with a signed offer letter and a short welcome call."
	s2 := "New employees then receive fillable forms for payroll, benefits and emergency contacts."
	s3 := "Managers confirm equipment requests and schedule the first week of training sessions."
	prefix := s1 + " " + s2 + " " + s3 + " "
	pad := 310 - len(prefix) - len("Finally .")
	require.Greater(t, pad, 0)
	content := prefix + "Finally " + strings.Repeat("x", pad) + "."
	require.Len(t, content, 310)

	assert.Equal(t, s1+" "+s2+" "+s3, RefineText(content))
}

func TestRefineText(t *testing.T) {
	twoSentences := strings.Repeat("alpha ", 40) + "end. " + strings.Repeat("beta ", 30) + "done."
	words := strings.Repeat("word ", 64)
	oneSentence := strings.TrimSpace(words) + "."

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "short content unchanged", in: "Short body text.", want: "Short body text."},
		{name: "exactly 300 unchanged", in: strings.Repeat("a", 300), want: strings.Repeat("a", 300)},
		{name: "two sentences kept", in: twoSentences, want: strings.TrimSpace(twoSentences)},
		{name: "no boundary cuts at last space", in: words, want: strings.TrimSpace(strings.Repeat("word ", 60))},
		{name: "single sentence cuts at last space", in: oneSentence, want: strings.TrimSpace(strings.Repeat("word ", 60))},
		{name: "no late space hard cut", in: strings.Repeat("a", 320), want: strings.Repeat("a", 300)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefineText(tt.in))
		})
	}
}

func TestRefiner_SkipsEmptyContent(t *testing.T) {
	sections := []domain.ScoredSection{
		{CandidateSection: domain.CandidateSection{Document: "a.pdf", PageNumber: 2, SectionTitle: "Travel Tips", Content: "Pack light."}},
		{CandidateSection: domain.CandidateSection{Document: "a.pdf", PageNumber: 3, SectionTitle: "Empty", Content: "   "}},
	}

	out := NewRefiner().Refine(sections)

	require.Len(t, out, 1)
	assert.Equal(t, domain.Subsection{
		Document:      "a.pdf",
		PageNumber:    2,
		SourceSection: "Travel Tips",
		RefinedText:   "Pack light.",
		TextLength:    11,
	}, out[0])
}

func TestCapText(t *testing.T) {
	assert.Equal(t, "one two...", capText("one two three four", 10))
	assert.Equal(t, "short", capText("short", 10))
	assert.Equal(t, "abcdefghij...", capText("abcdefghijklmnop", 10))
}
