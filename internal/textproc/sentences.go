package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitSentences splits text after '.', '!' or '?' when followed by
// whitespace. Pieces are trimmed and empty pieces dropped.
func SplitSentences(text string) []string {
	return splitAfterTerminal(text, false)
}

// SplitSentencesBeforeCapital is SplitSentences restricted to boundaries whose
// next sentence starts with an uppercase ASCII letter.
func SplitSentencesBeforeCapital(text string) []string {
	return splitAfterTerminal(text, true)
}

func splitAfterTerminal(text string, needCapital bool) []string {
	var out []string
	start := 0
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		j := i
		for j < len(text) {
			ws, wsize := utf8.DecodeRuneInString(text[j:])
			if !unicode.IsSpace(ws) {
				break
			}
			j += wsize
		}
		if j == i {
			continue
		}
		if needCapital {
			if j >= len(text) || text[j] < 'A' || text[j] > 'Z' {
				continue
			}
		}
		out = appendTrimmed(out, text[start:i])
		start = j
		i = j
	}
	return appendTrimmed(out, text[start:])
}

func appendTrimmed(out []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return out
	}
	return append(out, s)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// RuneLen is utf8.RuneCountInString, named for readability at call sites.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
