// Package textproc holds the text primitives shared by segmentation, persona
// building and scoring: page normalization, sentence splitting and word sets.
package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// minLineLength is the shortest line kept by the normalizer.
const minLineLength = 3

// maxCleanPasses bounds the strip/compose loop in cleanLine.
const maxCleanPasses = 4

// Normalize cleans raw page text into a single line: whitespace runs become
// one space, control and non-printable characters are removed, and lines that
// are page-number artifacts or shorter than three characters are dropped.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	lines := cleanLines(raw)
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, " ")
}

// NormalizeLayout applies the same per-line cleaning as Normalize but keeps
// line breaks, with a single empty line wherever the input had one or more
// blank lines between text.
func NormalizeLayout(raw string) string {
	lines := cleanLines(raw)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			if len(out) > 0 && out[len(out)-1] != "" {
				out = append(out, "")
			}
			continue
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// cleanLines returns the cleaned lines of raw. Blank input lines come back as
// "" while dropped artifact lines are omitted entirely.
func cleanLines(raw string) []string {
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = cleanLine(line)
		if line == "" {
			lines = append(lines, "")
			continue
		}
		if isPageNumber(line) || utf8.RuneCountInString(line) < minLineLength {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// cleanLine strips non-printable runes, applies NFKC and collapses
// whitespace, repeating until the line stops changing. Removing a rune can
// bring a base letter next to a combining mark that NFKC then composes, and
// NFKC can emit spaces, so one pass of each is not a fixpoint.
func cleanLine(line string) string {
	line = stripLine(line)
	for i := 0; i < maxCleanPasses; i++ {
		next := stripLine(norm.NFKC.String(line))
		if next == line {
			break
		}
		line = next
	}
	return line
}

// stripLine drops control and non-printable runes and collapses whitespace.
// Any printable Unicode rune is kept, so non-Latin scripts survive.
func stripLine(line string) string {
	var sb strings.Builder
	sb.Grow(len(line))
	space := false
	for _, r := range line {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case r == utf8.RuneError, unicode.IsControl(r), !unicode.IsPrint(r):
			continue
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func isPageNumber(line string) bool {
	if len(line) > 3 {
		return false
	}
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
