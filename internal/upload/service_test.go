package upload

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickshare/service/internal/config"
	"github.com/quickshare/service/internal/storage"
)

// fakePresigner records the last presign call.
type fakePresigner struct {
	key         string
	contentType string
	maxBytes    int64
	err         error
}

func (f *fakePresigner) PresignUpload(ctx context.Context, key, contentType string, maxBytes int64) (*storage.UploadGrant, error) {
	f.key, f.contentType, f.maxBytes = key, contentType, maxBytes
	if f.err != nil {
		return nil, f.err
	}
	return &storage.UploadGrant{
		URL:    "http://storage.local/quickshare",
		Fields: map[string]string{"key": key},
		Key:    key,
	}, nil
}

func (f *fakePresigner) Delete(ctx context.Context, key string) error { return nil }

func TestIssueGrantValidatesRequiredFields(t *testing.T) {
	svc := NewService(&fakePresigner{}, config.DefaultMaxUploadBytes)

	_, err := svc.IssueGrant(context.Background(), "", "text/plain", 10)
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.IssueGrant(context.Background(), "a.txt", "text/plain", 0)
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestIssueGrantEnforcesByteCeiling(t *testing.T) {
	store := &fakePresigner{}
	svc := NewService(store, config.DefaultMaxUploadBytes)

	// Exactly at the ceiling is allowed.
	grant, err := svc.IssueGrant(context.Background(), "a.bin", "application/octet-stream", 50*1024*1024)
	require.NoError(t, err)
	assert.Equal(t, int64(config.DefaultMaxUploadBytes), store.maxBytes,
		"the grant itself is capped at the ceiling")
	assert.NotEmpty(t, grant.URL)

	// One byte over is rejected.
	_, err = svc.IssueGrant(context.Background(), "a.bin", "application/octet-stream", 50*1024*1024+1)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestBuildKeyUsesTimestampPrefix(t *testing.T) {
	svc := NewService(&fakePresigner{}, config.DefaultMaxUploadBytes)
	at := time.UnixMilli(1756710000000)
	svc.now = func() time.Time { return at }

	key := svc.BuildKey("report.pdf")
	assert.Equal(t, fmt.Sprintf("uploads/%d-report.pdf", at.UnixMilli()), key)
}

func TestIssueGrantReturnsStorageKey(t *testing.T) {
	store := &fakePresigner{}
	svc := NewService(store, config.DefaultMaxUploadBytes)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	grant, err := svc.IssueGrant(context.Background(), "a.txt", "text/plain", 12)
	require.NoError(t, err)

	assert.Equal(t, "uploads/1700000000000-a.txt", grant.Key)
	assert.Equal(t, grant.Key, store.key)
	assert.Equal(t, "text/plain", store.contentType)
}
