package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"doc-intelligence/internal/config"
	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/pdf"
	"doc-intelligence/internal/service"
	"doc-intelligence/pkg/logger"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file-or-directory>...",
		Short: "Rank the sections of PDF documents for a persona and job",
		Long: `Analyze loads every PDF given on the command line (directories are scanned
for *.pdf files), extracts candidate sections and ranks them for the persona.

Documents that cannot be read are skipped with a warning. The command fails
only when no document could be read or no section was found.

Examples:
  # Analyze a folder of travel guides
  docintel analyze --persona "Travel Planner" --job "Plan a 4-day trip for 10 friends" ./guides

  # Write the result to a file and keep only the top 5 sections
  docintel analyze -p "HR Professional" -j "Create fillable onboarding forms" \
    --max-sections 5 -o out/result.json forms/*.pdf`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().StringP("persona", "p", "", "Persona role, e.g. \"Travel Planner\"")
	cmd.Flags().StringP("job", "j", "", "Job to be done by the persona")
	cmd.Flags().BoolP("recursive", "r", false, "Scan directories recursively")
	cmd.Flags().StringP("output", "o", "", "Write the JSON result to this file instead of stdout")

	cmd.Flags().Int("max-sections", 0, "Maximum ranked sections in the result (default from MAX_SECTIONS)")
	cmd.Flags().Int("max-subsections", 0, "Maximum refined excerpts in the result (default from MAX_SUBSECTIONS)")
	cmd.Flags().Int("max-text-length", 0, "Maximum characters per refined excerpt (default from MAX_TEXT_LENGTH)")
	cmd.Flags().Float64("font-threshold", 0, "Minimum font size read as a header (default from HEADER_FONT_SIZE_THRESHOLD)")

	cmd.Flags().String("profiles", "", "Persona profiles YAML file (default from PROFILES_FILE)")
	cmd.Flags().Int("concurrency", 0, "Documents loaded in parallel (default from LOAD_CONCURRENCY)")
	cmd.Flags().Bool("no-validate", false, "Skip structural PDF validation")

	return cmd
}

// analyzeFlags holds the parsed analyze flags.
type analyzeFlags struct {
	persona     string
	job         string
	recursive   bool
	output      string
	options     domain.AnalysisOptions
	profiles    string
	concurrency int
	noValidate  bool
}

func parseAnalyzeFlags(cmd *cobra.Command) (analyzeFlags, error) {
	var f analyzeFlags
	var err error
	flags := cmd.Flags()
	if f.persona, err = flags.GetString("persona"); err != nil {
		return f, err
	}
	if f.job, err = flags.GetString("job"); err != nil {
		return f, err
	}
	if f.recursive, err = flags.GetBool("recursive"); err != nil {
		return f, err
	}
	if f.output, err = flags.GetString("output"); err != nil {
		return f, err
	}
	if f.options.MaxSections, err = flags.GetInt("max-sections"); err != nil {
		return f, err
	}
	if f.options.MaxSubsections, err = flags.GetInt("max-subsections"); err != nil {
		return f, err
	}
	if f.options.MaxTextLength, err = flags.GetInt("max-text-length"); err != nil {
		return f, err
	}
	if f.options.HeaderFontSizeThreshold, err = flags.GetFloat64("font-threshold"); err != nil {
		return f, err
	}
	if f.profiles, err = flags.GetString("profiles"); err != nil {
		return f, err
	}
	if f.concurrency, err = flags.GetInt("concurrency"); err != nil {
		return f, err
	}
	if f.noValidate, err = flags.GetBool("no-validate"); err != nil {
		return f, err
	}
	return f, nil
}

// apply overlays the flags onto the environment configuration.
func (f analyzeFlags) apply(cfg *config.AppConfig) {
	cfg.Analysis = cfg.Analysis.Merge(f.options)
	if f.profiles != "" {
		cfg.ProfilesFile = f.profiles
	}
	if f.concurrency > 0 {
		cfg.LoadConcurrency = f.concurrency
	}
	if f.noValidate {
		cfg.ValidatePDF = false
	}
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	flags, err := parseAnalyzeFlags(cmd)
	if err != nil {
		return err
	}
	_ = godotenv.Load()
	cfg := config.NewConfig()
	flags.apply(cfg)
	if err := cfg.GetAnalysisOptions().Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	level := cfg.GetLogLevel()
	if getVerboseFlag(cmd) {
		level = "debug"
	}
	container := config.NewContainerWithConfig(cfg, logger.NewLoggerWithWriter(level, cmd.ErrOrStderr()))

	paths, err := pdf.ResolvePaths(args, flags.recursive)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found in %v", args)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := container.GetAnalysisService().Analyze(ctx, service.AnalysisRequest{
		Paths:   paths,
		Persona: flags.persona,
		Job:     flags.job,
	})
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), flags.output, result)
}

// writeResult prints the result as indented JSON to stdout or to path,
// creating parent directories as needed.
func writeResult(stdout io.Writer, path string, result *domain.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
