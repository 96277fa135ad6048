// Package upload issues time- and size-boxed grants for direct
// client-to-storage uploads. The service never proxies file bytes.
package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quickshare/service/internal/storage"
)

// ErrMissingFields is returned when the grant request lacks required fields.
var ErrMissingFields = errors.New("fileName and fileSize are required")

// ErrFileTooLarge is returned when the declared size exceeds the ceiling.
var ErrFileTooLarge = errors.New("file size exceeds the upload limit")

// Service contains the business logic for issuing upload grants.
type Service struct {
	store    storage.ObjectStore
	maxBytes int64
	now      func() time.Time
}

// NewService creates a new upload Service with the given byte ceiling.
func NewService(store storage.ObjectStore, maxBytes int64) *Service {
	return &Service{store: store, maxBytes: maxBytes, now: time.Now}
}

// IssueGrant validates the declared file metadata and returns a grant for a
// single direct upload. The storage key is prefixed with a millisecond
// timestamp to avoid collisions; two same-named uploads in the same
// millisecond could still collide, an accepted risk.
func (s *Service) IssueGrant(ctx context.Context, fileName, fileType string, fileSize int64) (*storage.UploadGrant, error) {
	if fileName == "" || fileSize <= 0 {
		return nil, ErrMissingFields
	}
	if fileSize > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	key := s.BuildKey(fileName)
	grant, err := s.store.PresignUpload(ctx, key, fileType, s.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return grant, nil
}

// BuildKey constructs the storage key for an upload of the named file.
func (s *Service) BuildKey(fileName string) string {
	return fmt.Sprintf("uploads/%d-%s", s.now().UnixMilli(), fileName)
}
