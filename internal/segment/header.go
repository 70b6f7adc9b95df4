package segment

import (
	"strings"

	"doc-intelligence/internal/textproc"
)

const maxTitleCaseHeaderWords = 8

var (
	connectivePrefixes = []string{
		"to ", "for ", "with ", "during ", "whether ", "and ", "or ", "but ",
		"the ", "this ", "it ", "a ", "an ",
	}
	danglingSuffixes = []string{" and", " or", " with", " to", " for", " of", " in", " on"}
	sentenceOpeners  = []string{"the ", "this ", "it ", "you ", "a ", "an ", "in ", "on ", "at ", "to "}
)

// IsHeaderLike is the header-likeness test shared by the font and structural
// strategies: title case with at most eight words, a known exact title, or a
// line containing header vocabulary.
func IsHeaderLike(line string, patterns *PatternSet) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if textproc.IsTitle(line) && len(strings.Fields(line)) <= maxTitleCaseHeaderWords {
		return true
	}
	if patterns.MatchExactTitle(line) {
		return true
	}
	return patterns.ContainsKeyword(line)
}

// isProperHeader decides whether lines[index] opens a section in the line
// based strategy. Connective openers, dangling prepositions and lowercase
// starts are rejected before any pattern is tried.
func isProperHeader(line string, lines []string, index int, patterns *PatternSet) bool {
	n := textproc.RuneLen(line)
	if n < 5 || n > 200 {
		return false
	}
	lower := strings.ToLower(line)
	if hasAnyPrefix(lower, connectivePrefixes) || hasAnySuffix(lower, danglingSuffixes) {
		return false
	}
	if !textproc.StartsUpperOrDigit(line) {
		return false
	}

	if patterns.Match(line) {
		return hasBody(lines, index)
	}

	words := strings.Fields(line)
	switch {
	case len(words) == 1 && textproc.IsTitle(line):
	case textproc.IsTitle(line) && !strings.HasSuffix(line, ".") && !strings.HasPrefix(line, "•") && n >= 10:
	case len(words) <= 12 && textproc.StartsUpper(line) && patterns.ContainsKeyword(line):
	case textproc.IsUpper(line) && len(words) <= 10 && n <= 100:
	case len(words) >= 2 && len(words) <= 8 && textproc.StartsUpper(line) &&
		!strings.HasSuffix(line, ".") && hasInnerUpper(line):
	default:
		return false
	}
	return hasBody(lines, index)
}

// hasBody requires at least 15 characters of text in the seven lines after
// index, and rejects a header immediately followed by a short title-like line
// since that makes it a super-title rather than a section.
func hasBody(lines []string, index int) bool {
	var following strings.Builder
	end := index + 8
	if end > len(lines) {
		end = len(lines)
	}
	for i := index + 1; i < end; i++ {
		if l := strings.TrimSpace(lines[i]); l != "" {
			following.WriteByte(' ')
			following.WriteString(l)
		}
	}
	if textproc.RuneLen(strings.TrimSpace(following.String())) < 15 {
		return false
	}

	if index+1 >= len(lines) {
		return true
	}
	next := strings.TrimSpace(lines[index+1])
	if next == "" {
		return true
	}
	n := textproc.RuneLen(next)
	if n > 10 && n < 100 && (textproc.IsTitle(next) || textproc.IsUpper(next)) &&
		!hasAnyPrefix(strings.ToLower(next), sentenceOpeners) {
		if len(strings.Fields(next)) <= 6 && !strings.HasSuffix(next, ".") {
			return false
		}
	}
	return true
}

// isTitleLikeLine reports whether line reads as a heading rather than body
// text: title or upper case and not opened by a sentence word.
func isTitleLikeLine(line string) bool {
	return (textproc.IsTitle(line) || textproc.IsUpper(line)) &&
		!hasAnyPrefix(strings.ToLower(line), sentenceOpeners)
}

func hasInnerUpper(s string) bool {
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, p := range suffixes {
		if strings.HasSuffix(s, p) {
			return true
		}
	}
	return false
}
