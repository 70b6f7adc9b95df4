package repository

import (
	"testing"

	"doc-intelligence/internal/domain"
)

type fakeConfig struct {
	domain.Config
	url, key, bucket string
}

func (c fakeConfig) GetSupabaseURL() string    { return c.url }
func (c fakeConfig) GetSupabaseKey() string    { return c.key }
func (c fakeConfig) GetSupabaseBucket() string { return c.bucket }

func TestSupabaseClient_Configured(t *testing.T) {
	tests := []struct {
		name string
		cfg  fakeConfig
		want bool
	}{
		{"all set", fakeConfig{url: "https://x.supabase.co", key: "anon", bucket: "pdfs"}, true},
		{"no bucket", fakeConfig{url: "https://x.supabase.co", key: "anon"}, false},
		{"no key", fakeConfig{url: "https://x.supabase.co", bucket: "pdfs"}, false},
		{"empty", fakeConfig{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewSupabaseClient(tt.cfg, nopLogger{}).Configured(); got != tt.want {
				t.Fatalf("Configured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSupabaseClient_InitializeRequiresCredentials(t *testing.T) {
	c := NewSupabaseClient(fakeConfig{bucket: "pdfs"}, nopLogger{})
	if err := c.Initialize(); err == nil {
		t.Fatal("expected error without URL and key")
	}
	if _, err := c.DocumentSource(); err == nil {
		t.Fatal("expected error before Initialize")
	}
}
