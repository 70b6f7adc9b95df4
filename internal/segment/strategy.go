// Package segment turns loaded pages into candidate sections using an ordered
// cascade of strategies, from font metadata down to blind sentence chunking.
package segment

import (
	"math"
	"regexp"
	"strings"

	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/textproc"
)

// PageInput is everything a strategy sees of one page.
type PageInput struct {
	Document          string
	Page              domain.Page
	Patterns          *PatternSet
	FontSizeThreshold float64
}

// layout returns the line-preserving page text, falling back to the flat text
// for pages built without one.
func (in PageInput) layout() string {
	if in.Page.Layout != "" {
		return in.Page.Layout
	}
	return in.Page.Text
}

func (in PageInput) section(title, content string, method domain.ExtractionMethod) domain.CandidateSection {
	return domain.NewCandidateSection(in.Document, in.Page.PageNumber, title, content, method)
}

// Strategy is one stage of the segmentation cascade.
type Strategy interface {
	Method() domain.ExtractionMethod
	TryExtract(in PageInput) []domain.CandidateSection
}

// DefaultMaxVerticalGap is how far below a header span body spans may start
// and still belong to it, in layout units. A body span never belongs to a
// header once another header span sits between them.
const DefaultMaxVerticalGap = 50.0

// FontStrategy detects headers from span size and weight.
type FontStrategy struct {
	MaxVerticalGap float64
}

func (FontStrategy) Method() domain.ExtractionMethod { return domain.MethodFontAnalysis }

func (s FontStrategy) TryExtract(in PageInput) []domain.CandidateSection {
	spans := in.Page.Spans
	if len(spans) == 0 {
		return nil
	}
	gap := s.MaxVerticalGap
	if gap <= 0 {
		gap = DefaultMaxVerticalGap
	}

	header := make([]bool, len(spans))
	for i, sp := range spans {
		text := strings.TrimSpace(sp.Text)
		if text == "" {
			continue
		}
		header[i] = (sp.Size >= in.FontSizeThreshold && IsHeaderLike(text, in.Patterns)) ||
			(sp.Bold && textproc.RuneLen(text) <= 80)
	}

	var out []domain.CandidateSection
	for i, h := range spans {
		if !header[i] {
			continue
		}
		next := math.Inf(1)
		for j, sp := range spans {
			if header[j] && j != i && sp.Y0 > h.Y1 && sp.Y0 < next {
				next = sp.Y0
			}
		}
		var body []string
		for j, sp := range spans {
			if header[j] {
				continue
			}
			if sp.Y0 > h.Y1 && sp.Y0-h.Y1 <= gap && sp.Y0 < next {
				if t := strings.TrimSpace(sp.Text); t != "" {
					body = append(body, t)
				}
			}
		}
		if len(body) == 0 {
			continue
		}
		out = append(out, in.section(h.Text, strings.Join(body, " "), s.Method()))
	}
	return out
}

// maxPatternContentLength stops content accumulation for a text-pattern header.
const maxPatternContentLength = 500

var bulletRe = regexp.MustCompile(`^[•\-\*]\s*`)

// TextPatternStrategy matches header lines against the request's pattern set.
type TextPatternStrategy struct{}

func (TextPatternStrategy) Method() domain.ExtractionMethod { return domain.MethodTextPattern }

func (s TextPatternStrategy) TryExtract(in PageInput) []domain.CandidateSection {
	lines := strings.Split(in.layout(), "\n")
	var out []domain.CandidateSection
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || !isProperHeader(line, lines, i, in.Patterns) {
			continue
		}
		content := accumulateContent(lines, i, in.Patterns)
		if content == "" {
			continue
		}
		out = append(out, in.section(line, content, s.Method()))
	}
	return out
}

// accumulateContent gathers the body below the header at index. It stops at
// the next header or a long heading-like line, passes over short heading-like
// lines, and stops once the body is longer than maxPatternContentLength.
func accumulateContent(lines []string, index int, patterns *PatternSet) string {
	var parts []string
	length := 0
	for j := index + 1; j < len(lines); j++ {
		line := strings.TrimSpace(lines[j])
		if line == "" {
			continue
		}
		if isProperHeader(line, lines, j, patterns) {
			break
		}
		if isTitleLikeLine(line) {
			if len(strings.Fields(line)) <= 6 && !endsSentence(line) {
				continue
			}
			if textproc.RuneLen(line) > 15 {
				break
			}
		}
		line = bulletRe.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		parts = append(parts, line)
		length += textproc.RuneLen(line) + 1
		if length > maxPatternContentLength {
			break
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func endsSentence(line string) bool {
	return strings.HasSuffix(line, ".") || strings.HasSuffix(line, "!") || strings.HasSuffix(line, "?")
}

// StructuralStrategy treats the first line of a paragraph as its title.
type StructuralStrategy struct{}

func (StructuralStrategy) Method() domain.ExtractionMethod { return domain.MethodStructural }

func (s StructuralStrategy) TryExtract(in PageInput) []domain.CandidateSection {
	var out []domain.CandidateSection
	for _, para := range splitParagraphs(in.layout()) {
		lines := strings.Split(para, "\n")
		if len(lines) < 2 {
			continue
		}
		first := strings.TrimSpace(lines[0])
		n := textproc.RuneLen(first)
		if n < 5 || n > 100 || !textproc.StartsUpper(first) || !IsHeaderLike(first, in.Patterns) {
			continue
		}
		content := strings.Join(strings.Fields(strings.Join(lines[1:], " ")), " ")
		if textproc.RuneLen(content) <= 30 {
			continue
		}
		out = append(out, in.section(first, content, s.Method()))
	}
	return out
}

// splitParagraphs splits on blank lines, or before capitalised sentences when
// the page has fewer than three blank-line paragraphs.
func splitParagraphs(text string) []string {
	var paras []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	if len(paras) >= 3 {
		return paras
	}
	return textproc.SplitSentencesBeforeCapital(text)
}

// Fallback chunking limits.
const (
	chunkMinSentences  = 5
	chunkMinChars      = 200
	chunkMaxPerPage    = 5
	trailingChunkChars = 100
	chunkTitleMaxChars = 100
	chunkTitleMaxWords = 8
)

// FallbackStrategy groups sentences into fixed-size chunks with synthetic titles.
type FallbackStrategy struct{}

func (FallbackStrategy) Method() domain.ExtractionMethod { return domain.MethodFallbackChunk }

func (s FallbackStrategy) TryExtract(in PageInput) []domain.CandidateSection {
	var out []domain.CandidateSection
	var chunk []string
	size := 0
	for _, sentence := range textproc.SplitSentences(in.Page.Text) {
		chunk = append(chunk, sentence)
		size += textproc.RuneLen(sentence)
		if size >= chunkMinChars || len(chunk) >= chunkMinSentences {
			out = append(out, in.section(chunkTitle(chunk[0]), strings.Join(chunk, " "), s.Method()))
			chunk, size = nil, 0
			if len(out) >= chunkMaxPerPage {
				return out
			}
		}
	}
	if len(chunk) > 0 && size >= trailingChunkChars {
		out = append(out, in.section(chunkTitle(chunk[0]), strings.Join(chunk, " "), s.Method()))
	}
	return out
}

func chunkTitle(sentence string) string {
	if textproc.RuneLen(sentence) > chunkTitleMaxChars {
		words := strings.Fields(sentence)
		if len(words) > chunkTitleMaxWords {
			words = words[:chunkTitleMaxWords]
		}
		return strings.Join(words, " ") + "..."
	}
	return strings.TrimSuffix(sentence, ".")
}
