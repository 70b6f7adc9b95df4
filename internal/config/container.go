package config

import (
	"errors"

	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/pdf"
	"doc-intelligence/internal/persona"
	"doc-intelligence/internal/relevance"
	"doc-intelligence/internal/repository"
	"doc-intelligence/internal/segment"
	"doc-intelligence/internal/service"
	"doc-intelligence/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config          domain.Config
	Logger          domain.Logger
	SupabaseClient  *repository.SupabaseClient
	Personas        *persona.Builder
	Loader          *pdf.Loader
	AnalysisService *service.AnalysisService
}

// NewContainer creates a new dependency injection container from the
// environment.
func NewContainer() *Container {
	config := NewConfig()
	return NewContainerWithConfig(config, logger.NewLogger(config.GetLogLevel()))
}

// NewContainerWithConfig wires the pipeline around an explicit config and
// logger. Optional pieces that fail to initialize are logged and left out.
func NewContainerWithConfig(config domain.Config, appLogger domain.Logger) *Container {
	var validator domain.DocumentValidator
	if config.GetValidatePDF() {
		validator = pdf.NewValidator()
	}
	loader := pdf.NewLoader(
		pdf.NewFitzExtractor(appLogger, config.GetPageTimeout()),
		pdf.NewSpanExtractor(appLogger),
		validator,
		appLogger,
		pdf.LoaderOptions{
			DocumentTimeout: config.GetDocumentTimeout(),
			Concurrency:     config.GetLoadConcurrency(),
		},
	)

	personas := persona.NewBuilder(loadProfiles(config.GetProfilesFile(), appLogger)...)

	analysisService := service.NewAnalysisService(
		loader,
		personas,
		segment.NewEngine(appLogger),
		relevance.NewScorer(),
		appLogger,
		config.GetAnalysisOptions(),
		config.GetUploadPath(),
	)

	supabaseClient := repository.NewSupabaseClient(config, appLogger)
	if supabaseClient.Configured() {
		if err := supabaseClient.Initialize(); err != nil {
			appLogger.Warn("Supabase storage disabled", "error", err)
		} else if src, err := supabaseClient.DocumentSource(); err == nil {
			analysisService.SetDocumentSource(src)
		}
	}

	return &Container{
		Config:          config,
		Logger:          appLogger,
		SupabaseClient:  supabaseClient,
		Personas:        personas,
		Loader:          loader,
		AnalysisService: analysisService,
	}
}

// loadProfiles reads operator profiles; a missing file is not an error.
func loadProfiles(path string, log domain.Logger) []persona.Profile {
	if path == "" {
		return nil
	}
	profiles, err := persona.LoadProfiles(path)
	if err != nil {
		if !errors.Is(err, persona.ErrProfilesNotFound) {
			log.Warn("Ignoring persona profiles file", "path", path, "error", err)
		}
		return nil
	}
	log.Info("Loaded persona profiles", "path", path, "count", len(profiles))
	return profiles
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetAnalysisService returns the analysis pipeline
func (c *Container) GetAnalysisService() *service.AnalysisService {
	return c.AnalysisService
}

// GetPersonas returns the persona context builder
func (c *Container) GetPersonas() *persona.Builder {
	return c.Personas
}
