// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO, AWS S3).
package storage

import (
	"context"
	"time"
)

// GrantTTL is how long an upload grant stays valid once issued.
const GrantTTL = 15 * time.Minute

// UploadGrant is a time- and size-boxed permission to write one object
// directly to the store. It is never persisted.
type UploadGrant struct {
	URL    string            `json:"url"`
	Fields map[string]string `json:"fields"`
	Key    string            `json:"key"`
}

// ObjectStore is the interface for issuing upload grants and deleting objects.
type ObjectStore interface {
	// PresignUpload issues a grant for a single direct client upload under key,
	// capped at maxBytes. The service never proxies file bytes itself.
	PresignUpload(ctx context.Context, key, contentType string, maxBytes int64) (*UploadGrant, error)
	// Delete removes the object at key. Idempotent: an already-absent object
	// is not an error. Callers treat failures as log-and-continue.
	Delete(ctx context.Context, key string) error
}
