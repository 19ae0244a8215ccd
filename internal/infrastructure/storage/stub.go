// Package storage provides object storage implementations for gallery files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	catalogapp "github.com/apothekehub/backend/internal/application/catalog"
)

var errMissingKey = errors.New("storage key is required")

// StubObjectStorage stands in for S3 when no bucket is configured.
// URLs it hands out point nowhere; uploads confirm unconditionally.
// Good enough to exercise the gallery flow on a developer machine.
type StubObjectStorage struct {
	BaseURL string
}

var _ catalogapp.ObjectStorageService = (*StubObjectStorage)(nil)

// NewStubObjectStorage creates a stub with a placeholder base URL
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{BaseURL: "https://storage.example.com"}
}

// GenerateUploadURL fabricates an upload URL under the stub base
func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return s.fabricate("upload", storageKey, expiresIn)
}

// GenerateDownloadURL fabricates a download URL under the stub base
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return s.fabricate("download", storageKey, expiresIn)
}

// DeleteObject succeeds without touching anything
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errMissingKey
	}
	return nil
}

// ObjectExists reports every key as present so upload confirmation
// goes through without a real blob store.
func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errMissingKey
	}
	return true, nil
}

func (s *StubObjectStorage) fabricate(op, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errMissingKey
	}
	expiresAt := time.Now().Add(expiresIn)
	url := fmt.Sprintf("%s/%s/%s?expires=%s", s.BaseURL, op, storageKey, expiresAt.Format(time.RFC3339))
	return url, expiresAt, nil
}
