package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"doc-intelligence/internal/domain"
	"doc-intelligence/pkg/logger"
)

const defaultMaxFileSize int64 = 50 * 1024 * 1024

var configEnv = []string{
	"PORT", "SERVER_PORT", "UPLOAD_PATH", "MAX_FILE_SIZE", "LOG_LEVEL",
	"MAX_SECTIONS", "MAX_SUBSECTIONS", "MAX_TEXT_LENGTH", "HEADER_FONT_SIZE_THRESHOLD",
	"PAGE_TIMEOUT", "DOCUMENT_TIMEOUT", "LOAD_CONCURRENCY", "VALIDATE_PDF", "PROFILES_FILE",
	"SUPABASE_URL", "SUPABASE_ANON_KEY", "SUPABASE_BUCKET", "CORS_ALLOWED_ORIGINS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetUploadPath() != os.TempDir() {
		t.Fatalf("expected default upload path %s, got %s", os.TempDir(), cfg.GetUploadPath())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetAnalysisOptions() != domain.DefaultAnalysisOptions() {
		t.Fatalf("expected default analysis options, got %+v", cfg.GetAnalysisOptions())
	}
	if got := cfg.GetAnalysisOptions().HeaderFontSizeThreshold; got != domain.DefaultAnalysisOptions().HeaderFontSizeThreshold {
		t.Fatalf("expected default font size threshold, got %v", got)
	}
	if cfg.GetPageTimeout() != 90*time.Second {
		t.Fatalf("expected default page timeout 90s, got %v", cfg.GetPageTimeout())
	}
	if cfg.GetDocumentTimeout() != 2*time.Minute {
		t.Fatalf("expected default document timeout 2m, got %v", cfg.GetDocumentTimeout())
	}
	if cfg.GetLoadConcurrency() != 4 {
		t.Fatalf("expected default load concurrency 4, got %d", cfg.GetLoadConcurrency())
	}
	if !cfg.GetValidatePDF() {
		t.Fatal("expected PDF validation on by default")
	}
	if cfg.GetProfilesFile() != DefaultProfilesFile() {
		t.Fatalf("expected default profiles file %s, got %s", DefaultProfilesFile(), cfg.GetProfilesFile())
	}
	if filepath.Base(cfg.GetProfilesFile()) != "profiles.yaml" {
		t.Fatalf("expected profiles.yaml, got %s", cfg.GetProfilesFile())
	}
	if cfg.GetSupabaseURL() != "" || cfg.GetSupabaseKey() != "" || cfg.GetSupabaseBucket() != "" {
		t.Fatalf("expected supabase settings empty, got %q %q %q", cfg.GetSupabaseURL(), cfg.GetSupabaseKey(), cfg.GetSupabaseBucket())
	}
	if !reflect.DeepEqual(cfg.GetCORSAllowedOrigins(), []string{"*"}) {
		t.Fatalf("expected CORS origins [*], got %v", cfg.GetCORSAllowedOrigins())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MAX_SECTIONS", "5")
	t.Setenv("MAX_SUBSECTIONS", "3")
	t.Setenv("MAX_TEXT_LENGTH", "200")
	t.Setenv("HEADER_FONT_SIZE_THRESHOLD", "12.5")
	t.Setenv("PAGE_TIMEOUT", "5s")
	t.Setenv("DOCUMENT_TIMEOUT", "30s")
	t.Setenv("LOAD_CONCURRENCY", "8")
	t.Setenv("VALIDATE_PDF", "false")
	t.Setenv("PROFILES_FILE", "/etc/doc-intelligence/profiles.yaml")
	t.Setenv("SUPABASE_URL", "http://localhost:54321")
	t.Setenv("SUPABASE_ANON_KEY", "test-key")
	t.Setenv("SUPABASE_BUCKET", "pdfs")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "debug" {
		t.Fatalf("expected log level debug, got %s", cfg.GetLogLevel())
	}
	want := domain.AnalysisOptions{MaxSections: 5, MaxSubsections: 3, MaxTextLength: 200, HeaderFontSizeThreshold: 12.5}
	if cfg.GetAnalysisOptions() != want {
		t.Fatalf("expected analysis options %+v, got %+v", want, cfg.GetAnalysisOptions())
	}
	if cfg.GetPageTimeout() != 5*time.Second || cfg.GetDocumentTimeout() != 30*time.Second {
		t.Fatalf("unexpected timeouts %v %v", cfg.GetPageTimeout(), cfg.GetDocumentTimeout())
	}
	if cfg.GetLoadConcurrency() != 8 {
		t.Fatalf("expected load concurrency 8, got %d", cfg.GetLoadConcurrency())
	}
	if cfg.GetValidatePDF() {
		t.Fatal("expected PDF validation off")
	}
	if cfg.GetProfilesFile() != "/etc/doc-intelligence/profiles.yaml" {
		t.Fatalf("unexpected profiles file %s", cfg.GetProfilesFile())
	}
	if cfg.GetSupabaseURL() != "http://localhost:54321" {
		t.Fatalf("expected supabase url http://localhost:54321, got %s", cfg.GetSupabaseURL())
	}
	if cfg.GetSupabaseKey() != "test-key" {
		t.Fatalf("expected supabase key test-key, got %s", cfg.GetSupabaseKey())
	}
	if cfg.GetSupabaseBucket() != "pdfs" {
		t.Fatalf("expected supabase bucket pdfs, got %s", cfg.GetSupabaseBucket())
	}
	if !reflect.DeepEqual(cfg.GetCORSAllowedOrigins(), []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected CORS origins %v", cfg.GetCORSAllowedOrigins())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("MAX_SECTIONS", "many")
	t.Setenv("HEADER_FONT_SIZE_THRESHOLD", "NaN")
	t.Setenv("PAGE_TIMEOUT", "soon")
	t.Setenv("VALIDATE_PDF", "maybe")
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetAnalysisOptions().MaxSections != 15 {
		t.Fatalf("expected default max sections 15, got %d", cfg.GetAnalysisOptions().MaxSections)
	}
	if cfg.GetPageTimeout() != 90*time.Second {
		t.Fatalf("expected default page timeout, got %v", cfg.GetPageTimeout())
	}
	if !cfg.GetValidatePDF() {
		t.Fatal("expected default PDF validation on")
	}
	if !reflect.DeepEqual(cfg.GetCORSAllowedOrigins(), []string{"*"}) {
		t.Fatalf("expected CORS origins [*], got %v", cfg.GetCORSAllowedOrigins())
	}
}

func TestNewContainerWithConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	profiles := filepath.Join(dir, "profiles.yaml")
	data := "profiles:\n  - name: Sommelier\n    keywords: [wine, pairing]\n    domain: food\n"
	if err := os.WriteFile(profiles, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROFILES_FILE", profiles)
	t.Setenv("UPLOAD_PATH", dir)

	c := NewContainerWithConfig(NewConfig(), logger.NewLoggerWithWriter("error", os.Stderr))

	if c.GetAnalysisService() == nil || c.GetPersonas() == nil || c.Loader == nil {
		t.Fatal("expected pipeline to be wired")
	}
	if c.GetAnalysisService().HasDocumentSource() {
		t.Fatal("expected no document source without supabase settings")
	}
	if got := c.GetPersonas().Match("sommelier").Name; got != "sommelier" {
		t.Fatalf("expected profile loaded from file, got %s", got)
	}
	if c.GetAnalysisService().Defaults() != domain.DefaultAnalysisOptions() {
		t.Fatalf("unexpected defaults %+v", c.GetAnalysisService().Defaults())
	}
}

func TestLoadProfiles_MissingFileIsIgnored(t *testing.T) {
	got := loadProfiles(filepath.Join(t.TempDir(), "none.yaml"), logger.NewLoggerWithWriter("error", os.Stderr))
	if got != nil {
		t.Fatalf("expected no profiles, got %v", got)
	}
}
