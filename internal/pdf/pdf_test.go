package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	ledong "github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doc-intelligence/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Error(string, error, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})         {}

type fakeText struct {
	mu    sync.Mutex
	pages map[string][]domain.RawPage
	errs  map[string]error
	delay map[string]time.Duration
	block bool
}

func (f *fakeText) ExtractPages(ctx context.Context, path string) ([]domain.RawPage, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f.mu.Lock()
	d := f.delay[path]
	f.mu.Unlock()
	if d > 0 {
		time.Sleep(d)
	}
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	return f.pages[path], nil
}

type fakeSpans struct {
	spans map[int][]domain.Span
	err   error
}

func (f fakeSpans) ExtractSpans(context.Context, string) (map[int][]domain.Span, error) {
	return f.spans, f.err
}

type fakeValidator struct{ reject map[string]error }

func (f fakeValidator) Validate(path string) error { return f.reject[path] }

var body = strings.Repeat("Meaningful sentence about travel planning. ", 3)

func TestLoader_LoadBuildsDocument(t *testing.T) {
	text := &fakeText{pages: map[string][]domain.RawPage{
		"/docs/guide.pdf": {
			{Number: 1, Text: "Overview\n\n" + body + "\n12"},
			{Number: 2, Text: "  "},
		},
	}}
	spans := fakeSpans{spans: map[int][]domain.Span{1: {{Text: "Overview", Size: 18, Bold: true}}}}
	l := NewLoader(text, spans, nil, nopLogger{}, LoaderOptions{})

	doc, err := l.Load(context.Background(), "/docs/guide.pdf")
	require.NoError(t, err)

	assert.Equal(t, "guide.pdf", doc.Filename)
	assert.Equal(t, 2, doc.TotalPages)
	require.NoError(t, doc.Validate())
	assert.Equal(t, "Overview "+strings.TrimSpace(body), doc.Pages[0].Text)
	assert.Equal(t, "Overview\n\n"+strings.TrimSpace(body), doc.Pages[0].Layout)
	assert.Len(t, doc.Pages[0].Spans, 1)
	assert.Empty(t, doc.Pages[1].Text)
	assert.Equal(t, doc.Pages[0].CharCount, doc.TotalChars)
	assert.InDelta(t, float64(doc.TotalChars)/2, doc.AvgCharsPerPage, 0.01)
}

func TestLoader_Rejections(t *testing.T) {
	errBroken := errors.New("broken xref")
	text := &fakeText{
		pages: map[string][]domain.RawPage{
			"empty.pdf": {},
			"short.pdf": {{Number: 1, Text: "Too short to analyze."}},
			"ok.pdf":    {{Number: 1, Text: body}},
		},
		errs: map[string]error{"broken.pdf": errBroken},
	}
	v := fakeValidator{reject: map[string]error{"invalid.pdf": domain.ErrInvalidFile}}
	l := NewLoader(text, nil, v, nopLogger{}, LoaderOptions{})

	tests := []struct {
		path string
		want error
	}{
		{"empty.pdf", domain.ErrDocumentEmpty},
		{"short.pdf", domain.ErrInsufficientText},
		{"broken.pdf", errBroken},
		{"invalid.pdf", domain.ErrInvalidFile},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := l.Load(context.Background(), tt.path)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := l.Load(context.Background(), "ok.pdf")
	assert.NoError(t, err)
}

func TestLoader_SpanFailureIsNotFatal(t *testing.T) {
	text := &fakeText{pages: map[string][]domain.RawPage{"a.pdf": {{Number: 1, Text: body}}}}
	l := NewLoader(text, fakeSpans{err: errors.New("bad stream")}, nil, nopLogger{}, LoaderOptions{})

	doc, err := l.Load(context.Background(), "a.pdf")
	require.NoError(t, err)
	assert.Empty(t, doc.Pages[0].Spans)
}

func TestLoader_LoadAllKeepsInputOrder(t *testing.T) {
	text := &fakeText{
		pages: map[string][]domain.RawPage{
			"a.pdf": {{Number: 1, Text: body}},
			"b.pdf": {{Number: 1, Text: body}},
			"c.pdf": {{Number: 1, Text: body}},
			"d.pdf": {{Number: 1, Text: "tiny"}},
		},
		delay: map[string]time.Duration{"a.pdf": 30 * time.Millisecond, "b.pdf": 10 * time.Millisecond},
	}
	l := NewLoader(text, nil, nil, nopLogger{}, LoaderOptions{Concurrency: 4})

	docs, failures := l.LoadAll(context.Background(), []string{"a.pdf", "b.pdf", "missing.pdf", "c.pdf", "d.pdf"})

	require.Len(t, docs, 3)
	assert.Equal(t, "a.pdf", docs[0].Filename)
	assert.Equal(t, "b.pdf", docs[1].Filename)
	assert.Equal(t, "c.pdf", docs[2].Filename)
	require.Len(t, failures, 2)
	assert.Equal(t, "missing.pdf", failures[0].Path)
	assert.ErrorIs(t, failures[0].Err, domain.ErrDocumentEmpty)
	assert.Equal(t, "d.pdf", failures[1].Path)
	assert.ErrorIs(t, failures[1].Err, domain.ErrInsufficientText)
}

func TestLoader_DocumentTimeout(t *testing.T) {
	l := NewLoader(&fakeText{block: true}, nil, nil, nopLogger{}, LoaderOptions{DocumentTimeout: 20 * time.Millisecond})

	docs, failures := l.LoadAll(context.Background(), []string{"slow.pdf"})

	assert.Empty(t, docs)
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0].Err, context.DeadlineExceeded)
}

func TestGroupSpans(t *testing.T) {
	glyphs := []ledong.Text{
		{Font: "Helvetica-Bold", FontSize: 18, X: 72, Y: 700, W: 10, S: "K"},
		{Font: "Helvetica-Bold", FontSize: 18, X: 82, Y: 700, W: 10, S: "e"},
		{Font: "Helvetica-Bold", FontSize: 18, X: 92, Y: 700, W: 10, S: "y"},
		{Font: "Helvetica-Bold", FontSize: 18, X: 112, Y: 700, W: 10, S: "F"},
		{Font: "Helvetica", FontSize: 11, X: 72, Y: 670, W: 6, S: "B"},
		{Font: "Helvetica", FontSize: 11, X: 78, Y: 670, W: 6, S: "o"},
		{S: "\n"},
		{Font: "Helvetica", FontSize: 11, X: 72, Y: 650, W: 6, S: "C"},
	}

	spans := groupSpans(glyphs, 792)

	require.Len(t, spans, 3)
	assert.Equal(t, domain.Span{Text: "Key F", Size: 18, Bold: true, X0: 72, Y0: 74, X1: 122, Y1: 92}, spans[0])
	assert.Equal(t, "Bo", spans[1].Text)
	assert.False(t, spans[1].Bold)
	assert.Equal(t, "C", spans[2].Text)
	assert.Less(t, spans[0].Y1, spans[1].Y0)
}

func TestIsBoldFont(t *testing.T) {
	assert.True(t, isBoldFont("ABCDEF+Arial-BoldMT"))
	assert.True(t, isBoldFont("Lato-Black"))
	assert.False(t, isBoldFont("TimesNewRoman"))
}

func TestSpanExtractor_MissingFile(t *testing.T) {
	_, err := NewSpanExtractor(nopLogger{}).ExtractSpans(context.Background(), filepath.Join(t.TempDir(), "none.pdf"))
	assert.Error(t, err)
}

func TestValidator_RejectsNonPDF(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(p, []byte("plain text, not a PDF"), 0o600))

	err := NewValidator().Validate(p)
	assert.ErrorIs(t, err, domain.ErrInvalidFile)
}

func TestResolvePaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "A.PDF", "notes.txt", "sub/c.pdf"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}
	single := filepath.Join(dir, "notes.txt")

	flat, err := ResolvePaths([]string{dir}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "A.PDF"), filepath.Join(dir, "b.pdf")}, flat)

	deep, err := ResolvePaths([]string{single, dir}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		single,
		filepath.Join(dir, "A.PDF"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "sub", "c.pdf"),
	}, deep)

	_, err = ResolvePaths([]string{filepath.Join(dir, "nope")}, false)
	assert.Error(t, err)
}
