package config

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"doc-intelligence/internal/domain"
)

// AppName names the per-user configuration directory.
const AppName = "doc-intelligence"

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort         string
	UploadPath         string
	MaxFileSize        int64
	LogLevel           string
	Analysis           domain.AnalysisOptions
	PageTimeout        time.Duration
	DocumentTimeout    time.Duration
	LoadConcurrency    int
	ValidatePDF        bool
	ProfilesFile       string
	SupabaseURL        string
	SupabaseKey        string
	SupabaseBucket     string
	CORSAllowedOrigins []string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() *AppConfig {
	defaults := domain.DefaultAnalysisOptions()
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:  getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:  getEnvOrDefault("UPLOAD_PATH", os.TempDir()),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		Analysis: domain.AnalysisOptions{
			MaxSections:             getEnvIntOrDefault("MAX_SECTIONS", defaults.MaxSections),
			MaxSubsections:          getEnvIntOrDefault("MAX_SUBSECTIONS", defaults.MaxSubsections),
			MaxTextLength:           getEnvIntOrDefault("MAX_TEXT_LENGTH", defaults.MaxTextLength),
			HeaderFontSizeThreshold: getEnvFloatOrDefault("HEADER_FONT_SIZE_THRESHOLD", defaults.HeaderFontSizeThreshold),
		},
		PageTimeout:        getEnvDurationOrDefault("PAGE_TIMEOUT", 90*time.Second),
		DocumentTimeout:    getEnvDurationOrDefault("DOCUMENT_TIMEOUT", 2*time.Minute),
		LoadConcurrency:    getEnvIntOrDefault("LOAD_CONCURRENCY", 4),
		ValidatePDF:        getEnvBoolOrDefault("VALIDATE_PDF", true),
		ProfilesFile:       getEnvOrDefault("PROFILES_FILE", DefaultProfilesFile()),
		SupabaseURL:        getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:        getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		SupabaseBucket:     getEnvOrDefault("SUPABASE_BUCKET", ""),
		CORSAllowedOrigins: getEnvListOrDefault("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// XDGConfigDir returns the per-user configuration directory.
// On Linux: ~/.config/doc-intelligence
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultProfilesFile is where additional persona profiles are looked up.
func DefaultProfilesFile() string {
	return filepath.Join(XDGConfigDir(), "profiles.yaml")
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetAnalysisOptions returns the default result limits
func (c *AppConfig) GetAnalysisOptions() domain.AnalysisOptions {
	return c.Analysis
}

func (c *AppConfig) GetPageTimeout() time.Duration {
	return c.PageTimeout
}

func (c *AppConfig) GetDocumentTimeout() time.Duration {
	return c.DocumentTimeout
}

func (c *AppConfig) GetLoadConcurrency() int {
	return c.LoadConcurrency
}

func (c *AppConfig) GetValidatePDF() bool {
	return c.ValidatePDF
}

func (c *AppConfig) GetProfilesFile() string {
	return c.ProfilesFile
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetSupabaseBucket returns the Storage bucket holding PDFs
func (c *AppConfig) GetSupabaseBucket() string {
	return c.SupabaseBucket
}

func (c *AppConfig) GetCORSAllowedOrigins() []string {
	return c.CORSAllowedOrigins
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
