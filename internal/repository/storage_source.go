package repository

import (
	"context"
	"fmt"
	"path"
	"strings"

	"doc-intelligence/internal/domain"
)

// DownloadFunc fetches one object from a storage bucket.
type DownloadFunc func(bucket, objectPath string) ([]byte, error)

// StorageSource reads PDFs from a Supabase Storage bucket.
type StorageSource struct {
	download DownloadFunc
	bucket   string
	logger   domain.Logger
}

// NewStorageSource creates a document source over download.
func NewStorageSource(download DownloadFunc, bucket string, logger domain.Logger) *StorageSource {
	return &StorageSource{download: download, bucket: bucket, logger: logger}
}

type downloadResult struct {
	data []byte
	err  error
}

// Fetch downloads the object at name. Names are bucket-relative paths to a
// .pdf object; absolute paths and parent references are rejected.
func (s *StorageSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	objectPath, err := cleanObjectPath(name)
	if err != nil {
		return nil, err
	}

	// The storage client takes no context, so the call is raced against ctx.
	resultCh := make(chan downloadResult, 1)
	go func() {
		data, err := s.download(s.bucket, objectPath)
		resultCh <- downloadResult{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-resultCh:
		if res.err != nil {
			return nil, fmt.Errorf("failed to download %s from bucket %s: %w", objectPath, s.bucket, res.err)
		}
		if len(res.data) == 0 {
			return nil, fmt.Errorf("%w: %s is empty", domain.ErrInvalidFile, objectPath)
		}
		s.logger.Debug("Downloaded stored document", "bucket", s.bucket, "path", objectPath, "bytes", len(res.data))
		return res.data, nil
	}
}

func cleanObjectPath(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: invalid object path %q", domain.ErrInvalidFile, name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return "", fmt.Errorf("%w: invalid object path %q", domain.ErrInvalidFile, name)
		}
	}
	cleaned := path.Clean(name)
	if !strings.EqualFold(path.Ext(cleaned), ".pdf") {
		return "", fmt.Errorf("%w: %s is not a PDF", domain.ErrInvalidFile, cleaned)
	}
	return cleaned, nil
}
