// Package handler provides HTTP handlers for the API.
package handler

import (
	"context"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/pdf"
	"doc-intelligence/internal/service"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory = 32 << 20

// Analyzer runs the analysis pipeline.
type Analyzer interface {
	AnalyzeFiles(ctx context.Context, files []service.UploadedFile, persona, job string, opts domain.AnalysisOptions) (*domain.Result, error)
	AnalyzeStored(ctx context.Context, names []string, persona, job string, opts domain.AnalysisOptions) (*domain.Result, error)
}

// AnalysisHandler handles analysis requests
type AnalysisHandler struct {
	analyzer    Analyzer
	maxFileSize int64
	logger      domain.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analyzer Analyzer, maxFileSize int64, logger domain.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// StoredAnalysisRequest is the body of POST /api/v1/analyze/storage.
type StoredAnalysisRequest struct {
	Paths   []string               `json:"paths"`
	Persona string                 `json:"persona"`
	Job     string                 `json:"job"`
	Options domain.AnalysisOptions `json:"options"`
}

// Analyze handles a multipart upload of one or more PDFs under "files".
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize*int64(maxFilesPerRequest)+multipartMemory)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		writeError(w, http.StatusBadRequest, "At least one PDF is required in field \"files\"")
		return
	}
	if len(headers) > maxFilesPerRequest {
		writeError(w, http.StatusBadRequest, "Too many files. Maximum is "+strconv.Itoa(maxFilesPerRequest)+".")
		return
	}

	opts, err := parseOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	files := make([]service.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		name := strings.TrimSpace(filepath.Base(fh.Filename))
		if !pdf.IsPDFName(name) {
			writeError(w, http.StatusBadRequest, "Unsupported file type: "+name+". Only PDF (.pdf) is accepted.")
			return
		}
		if h.maxFileSize > 0 && fh.Size > h.maxFileSize {
			writeError(w, http.StatusBadRequest, "File too large: "+name)
			return
		}
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Cannot read upload: "+name)
			return
		}
		defer func(f multipart.File) { _ = f.Close() }(f)
		files = append(files, service.UploadedFile{Name: name, Data: f})
	}

	result, err := h.analyzer.AnalyzeFiles(r.Context(), files, r.FormValue("persona"), r.FormValue("job"), opts)
	if err != nil {
		h.logger.Warn("Analysis failed", "files", len(files), "error", err)
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AnalyzeStored analyzes PDFs already held in object storage.
func (h *AnalysisHandler) AnalyzeStored(w http.ResponseWriter, r *http.Request) {
	var req StoredAnalysisRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(req.Paths) == 0 {
		writeError(w, http.StatusBadRequest, "paths is required")
		return
	}
	if len(req.Paths) > maxFilesPerRequest {
		writeError(w, http.StatusBadRequest, "Too many files. Maximum is "+strconv.Itoa(maxFilesPerRequest)+".")
		return
	}

	result, err := h.analyzer.AnalyzeStored(r.Context(), req.Paths, req.Persona, req.Job, req.Options)
	if err != nil {
		h.logger.Warn("Stored analysis failed", "paths", len(req.Paths), "error", err)
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// maxFilesPerRequest caps the batch size of one request.
const maxFilesPerRequest = 50

// parseOptions reads the optional limit fields of a multipart form. Absent
// fields stay zero and fall back to the configured defaults.
func parseOptions(r *http.Request) (domain.AnalysisOptions, error) {
	var opts domain.AnalysisOptions
	ints := []struct {
		field string
		dst   *int
	}{
		{"max_sections", &opts.MaxSections},
		{"max_subsections", &opts.MaxSubsections},
		{"max_text_length", &opts.MaxTextLength},
	}
	for _, f := range ints {
		v := strings.TrimSpace(r.FormValue(f.field))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return opts, &domain.ValidationError{Field: f.field, Message: "must be a positive integer"}
		}
		*f.dst = n
	}
	if v := strings.TrimSpace(r.FormValue("header_font_size_threshold")); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil || x <= 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return opts, &domain.ValidationError{Field: "header_font_size_threshold", Message: "must be a positive number"}
		}
		opts.HeaderFontSizeThreshold = x
	}
	return opts, nil
}
