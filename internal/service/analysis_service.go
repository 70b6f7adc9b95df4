package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"doc-intelligence/internal/domain"
	apperrors "doc-intelligence/pkg/errors"
)

// DocumentLoader loads a batch of PDFs, keeping the documents that parse and
// reporting the ones that do not.
type DocumentLoader interface {
	LoadAll(ctx context.Context, paths []string) ([]*domain.Document, []domain.LoadFailure)
}

// ContextBuilder builds the persona context of a request.
type ContextBuilder interface {
	Build(role, job string) *domain.PersonaContext
}

// Segmenter extracts candidate sections from one document.
type Segmenter interface {
	Segment(doc *domain.Document, pc *domain.PersonaContext, fontSizeThreshold float64) []domain.CandidateSection
}

// Ranker scores and ranks candidate sections.
type Ranker interface {
	Score(sections []domain.CandidateSection, pc *domain.PersonaContext) []domain.ScoredSection
}

// AnalysisRequest is one batch of documents to analyze for a persona and job.
type AnalysisRequest struct {
	Paths   []string
	Persona string
	Job     string
	// Options overrides the configured defaults field by field.
	Options domain.AnalysisOptions
}

// UploadedFile is a PDF received as bytes rather than a path.
type UploadedFile struct {
	Name string
	Data io.Reader
}

// AnalysisService runs the pipeline: load, segment, score, refine, report.
// Requests share no mutable state and may run concurrently.
type AnalysisService struct {
	loader    DocumentLoader
	personas  ContextBuilder
	segmenter Segmenter
	ranker    Ranker
	refiner   *Refiner
	source    domain.DocumentSource
	logger    domain.Logger
	defaults  domain.AnalysisOptions
	workDir   string
	now       func() time.Time
}

// NewAnalysisService creates the analysis pipeline. Uploaded files are staged
// under workDir, or the system temp directory when workDir is empty.
func NewAnalysisService(
	loader DocumentLoader,
	personas ContextBuilder,
	segmenter Segmenter,
	ranker Ranker,
	logger domain.Logger,
	defaults domain.AnalysisOptions,
	workDir string,
) *AnalysisService {
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &AnalysisService{
		loader:    loader,
		personas:  personas,
		segmenter: segmenter,
		ranker:    ranker,
		refiner:   NewRefiner(),
		logger:    logger,
		defaults:  defaults,
		workDir:   workDir,
		now:       time.Now,
	}
}

// SetDocumentSource enables AnalyzeStored.
func (s *AnalysisService) SetDocumentSource(src domain.DocumentSource) {
	s.source = src
}

// HasDocumentSource reports whether remote documents can be analyzed.
func (s *AnalysisService) HasDocumentSource() bool {
	return s.source != nil
}

// Defaults returns the configured analysis options.
func (s *AnalysisService) Defaults() domain.AnalysisOptions {
	return s.defaults
}

// Analyze processes a batch of PDF paths. Documents that fail to load are
// logged and skipped. The call fails only when no document loads or no
// section is found in any of them.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*domain.Result, error) {
	started := s.now()
	requestID := uuid.New().String()

	opts := s.defaults.Merge(req.Options)
	if err := opts.Validate(); err != nil {
		return nil, apperrors.NewValidationError("invalid analysis options", err.Error()).WithCause(err)
	}
	if len(req.Paths) == 0 {
		return nil, apperrors.NewValidationError("no documents provided").WithCause(domain.ErrNoValidDocuments)
	}

	s.logger.Info("Analysis started",
		"request_id", requestID,
		"documents", len(req.Paths),
		"persona", req.Persona,
	)

	docs, failures := s.loader.LoadAll(ctx, req.Paths)
	for _, f := range failures {
		s.logger.Warn("Skipping document", "request_id", requestID, "document", f.Path, "error", f.Err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, apperrors.NewProcessingError(domain.ErrNoValidDocuments.Error(), domain.ErrNoValidDocuments)
	}

	pc := s.personas.Build(req.Persona, req.Job)
	s.logger.Debug("Persona context built",
		"request_id", requestID,
		"profile", pc.ProfileName,
		"domain", pc.Domain,
		"keywords", len(pc.Keywords),
	)

	var candidates []domain.CandidateSection
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		candidates = append(candidates, s.segmenter.Segment(doc, pc, opts.HeaderFontSizeThreshold)...)
	}
	if len(candidates) == 0 {
		return nil, apperrors.NewProcessingError(domain.ErrNoSectionsExtracted.Error(), domain.ErrNoSectionsExtracted)
	}

	ranked := s.ranker.Score(candidates, pc)
	top := ranked[:min(len(ranked), opts.MaxSubsections)]
	subsections := s.refiner.Refine(top)

	result := buildResult(resultInput{
		documents:   docs,
		persona:     req.Persona,
		job:         req.Job,
		candidates:  len(candidates),
		ranked:      ranked,
		subsections: subsections,
		options:     opts,
		started:     started,
		finished:    s.now(),
	})

	s.logger.Info("Analysis completed",
		"request_id", requestID,
		"documents", len(docs),
		"skipped", len(failures),
		"sections", len(result.ExtractedSections),
		"subsections", len(result.SubsectionAnalysis),
		"duration", result.Metadata.ProcessingTimeSeconds,
	)
	return result, nil
}

// AnalyzeFiles stages uploaded files in a private directory, analyzes them
// and removes the directory afterwards. Each file keeps its own base name.
func (s *AnalysisService) AnalyzeFiles(ctx context.Context, files []UploadedFile, persona, job string, opts domain.AnalysisOptions) (*domain.Result, error) {
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("no documents provided").WithCause(domain.ErrNoValidDocuments)
	}

	dir := filepath.Join(s.workDir, "analysis-"+uuid.New().String())
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, apperrors.NewInternalError("failed to create upload directory", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			s.logger.Warn("Failed to remove upload directory", "path", dir, "error", err)
		}
	}()

	paths := make([]string, 0, len(files))
	for i, f := range files {
		p, err := stageFile(dir, i, f)
		if err != nil {
			s.logger.Warn("Skipping upload", "document", f.Name, "error", err)
			continue
		}
		paths = append(paths, p)
	}
	if len(paths) == 0 {
		return nil, apperrors.NewProcessingError(domain.ErrNoValidDocuments.Error(), domain.ErrNoValidDocuments)
	}

	return s.Analyze(ctx, AnalysisRequest{Paths: paths, Persona: persona, Job: job, Options: opts})
}

// AnalyzeStored fetches the named objects from the document source and
// analyzes them. Objects that cannot be fetched are skipped like unreadable
// files.
func (s *AnalysisService) AnalyzeStored(ctx context.Context, names []string, persona, job string, opts domain.AnalysisOptions) (*domain.Result, error) {
	if s.source == nil {
		return nil, apperrors.NewUnavailableError("document storage is not configured").WithCause(domain.ErrUnknownSource)
	}
	if len(names) == 0 {
		return nil, apperrors.NewValidationError("no documents provided").WithCause(domain.ErrNoValidDocuments)
	}

	files := make([]UploadedFile, 0, len(names))
	for _, name := range names {
		data, err := s.source.Fetch(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("Skipping stored document", "document", name, "error", err)
			continue
		}
		files = append(files, UploadedFile{Name: path.Base(name), Data: bytes.NewReader(data)})
	}
	if len(files) == 0 {
		return nil, apperrors.NewProcessingError(domain.ErrNoValidDocuments.Error(), domain.ErrNoValidDocuments)
	}
	return s.AnalyzeFiles(ctx, files, persona, job, opts)
}

// stageFile writes one upload to dir/<index>/<base name>.
func stageFile(dir string, index int, f UploadedFile) (string, error) {
	name := filepath.Base(strings.TrimSpace(f.Name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("%w: missing file name", domain.ErrInvalidFile)
	}
	if f.Data == nil {
		return "", fmt.Errorf("%w: %s has no content", domain.ErrInvalidFile, name)
	}

	sub := filepath.Join(dir, strconv.Itoa(index))
	if err := os.MkdirAll(sub, 0o750); err != nil {
		return "", err
	}
	p := filepath.Join(sub, name)
	out, err := os.Create(p) //nolint:gosec // path is built from a private directory and a base name
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, f.Data); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return p, nil
}

// IsNoDocuments reports whether err means the batch had nothing to analyze.
func IsNoDocuments(err error) bool {
	return errors.Is(err, domain.ErrNoValidDocuments) || errors.Is(err, domain.ErrNoSectionsExtracted)
}
