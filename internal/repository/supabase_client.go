package repository

import (
	"fmt"

	"github.com/supabase-community/supabase-go"

	"doc-intelligence/internal/domain"
)

// SupabaseClient owns the connection to a Supabase project.
type SupabaseClient struct {
	client *supabase.Client
	config domain.Config
	logger domain.Logger
}

// NewSupabaseClient creates a new Supabase client instance
func NewSupabaseClient(config domain.Config, logger domain.Logger) *SupabaseClient {
	return &SupabaseClient{
		config: config,
		logger: logger,
	}
}

// Configured reports whether URL, key and bucket are all set.
func (s *SupabaseClient) Configured() bool {
	return s.config.GetSupabaseURL() != "" &&
		s.config.GetSupabaseKey() != "" &&
		s.config.GetSupabaseBucket() != ""
}

// Initialize establishes a connection to Supabase
func (s *SupabaseClient) Initialize() error {
	supabaseURL := s.config.GetSupabaseURL()
	supabaseKey := s.config.GetSupabaseKey()

	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("supabase URL and key must be provided")
	}

	client, err := supabase.NewClient(supabaseURL, supabaseKey, &supabase.ClientOptions{})
	if err != nil {
		return fmt.Errorf("failed to create Supabase client: %w", err)
	}

	s.client = client
	s.logger.Info("Supabase client initialized successfully", "url", supabaseURL, "bucket", s.config.GetSupabaseBucket())
	return nil
}

// DocumentSource returns a source reading PDFs from the configured bucket.
func (s *SupabaseClient) DocumentSource() (*StorageSource, error) {
	if s.client == nil {
		return nil, fmt.Errorf("supabase client not initialized")
	}
	client := s.client
	download := func(bucket, path string) ([]byte, error) {
		return client.Storage.DownloadFile(bucket, path)
	}
	return NewStorageSource(download, s.config.GetSupabaseBucket(), s.logger), nil
}
