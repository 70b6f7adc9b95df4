package pdf

import (
	"context"
	"fmt"
	"math"
	"strings"

	ledong "github.com/ledongthuc/pdf"

	"doc-intelligence/internal/domain"
)

const (
	// lineTolerance is the baseline drift, in points, still read as one line.
	lineTolerance = 2.0
	// wordGapRatio of the font size between glyphs becomes a space.
	wordGapRatio = 0.25
)

// SpanExtractor groups the glyphs of each page into runs of one font and
// size on one line.
type SpanExtractor struct {
	logger domain.Logger
}

// NewSpanExtractor creates a font span extractor.
func NewSpanExtractor(logger domain.Logger) *SpanExtractor {
	return &SpanExtractor{logger: logger}
}

// ExtractSpans returns spans keyed by 1-based page number. Pages the parser
// cannot decode are left out of the map.
func (e *SpanExtractor) ExtractSpans(ctx context.Context, path string) (spans map[int][]domain.Span, err error) {
	f, r, err := ledong.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	// The parser panics on some malformed content streams.
	defer func() {
		if rec := recover(); rec != nil {
			spans, err = nil, fmt.Errorf("span extraction panicked: %v", rec)
		}
	}()

	spans = make(map[int][]domain.Span)
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		glyphs := p.Content().Text
		if len(glyphs) == 0 {
			continue
		}
		spans[i] = groupSpans(glyphs, pageHeight(p, glyphs))
	}
	e.logger.Debug("Font spans extracted", "document", path, "pages", len(spans))
	return spans, nil
}

// pageHeight reads the MediaBox, falling back to the highest glyph.
func pageHeight(p ledong.Page, glyphs []ledong.Text) float64 {
	box := p.V.Key("MediaBox")
	if box.Len() == 4 {
		if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
			return h
		}
	}
	h := 0.0
	for _, g := range glyphs {
		h = math.Max(h, g.Y+g.FontSize)
	}
	return h
}

// groupSpans merges consecutive glyphs sharing font, size and baseline.
// PDF coordinates grow upward; spans are flipped so Y grows downward.
func groupSpans(glyphs []ledong.Text, height float64) []domain.Span {
	var out []domain.Span
	var sb strings.Builder
	var cur ledong.Text
	var x0, x1 float64
	open := false

	flush := func() {
		if !open {
			return
		}
		text := strings.TrimSpace(sb.String())
		if text != "" {
			out = append(out, domain.Span{
				Text: text,
				Size: cur.FontSize,
				Bold: isBoldFont(cur.Font),
				X0:   x0,
				Y0:   height - (cur.Y + cur.FontSize),
				X1:   x1,
				Y1:   height - cur.Y,
			})
		}
		sb.Reset()
		open = false
	}

	for _, g := range glyphs {
		if g.S == "\n" {
			flush()
			continue
		}
		sameRun := open &&
			g.Font == cur.Font &&
			g.FontSize == cur.FontSize &&
			math.Abs(g.Y-cur.Y) <= lineTolerance &&
			g.X >= x1-lineTolerance
		if !sameRun {
			flush()
			cur, x0, x1, open = g, g.X, g.X, true
		} else if g.X-x1 > wordGapRatio*g.FontSize {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.S)
		x1 = math.Max(x1, g.X+g.W)
	}
	flush()
	return out
}

func isBoldFont(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "bold") || strings.Contains(n, "black") || strings.Contains(n, "heavy")
}
