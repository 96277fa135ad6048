package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore implements ObjectStore using a MinIO (or any S3-compatible) backend.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore creates a MinIO client, ensures the bucket exists, and
// returns a ready-to-use MinioStore.
func NewMinioStore(endpoint, accessKey, secretKey, bucket, region string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, err)
		}
	}

	return &MinioStore{client: client, bucket: bucket}, nil
}

// PresignUpload builds a presigned POST policy for a single object upload.
// The grant enforces the byte ceiling at the storage level via a
// content-length-range condition, and expires after GrantTTL.
func (s *MinioStore) PresignUpload(ctx context.Context, key, contentType string, maxBytes int64) (*UploadGrant, error) {
	policy := minio.NewPostPolicy()
	if err := policy.SetBucket(s.bucket); err != nil {
		return nil, fmt.Errorf("set bucket: %w", err)
	}
	if err := policy.SetKey(key); err != nil {
		return nil, fmt.Errorf("set key: %w", err)
	}
	if err := policy.SetExpires(time.Now().UTC().Add(GrantTTL)); err != nil {
		return nil, fmt.Errorf("set expiry: %w", err)
	}
	if err := policy.SetContentLengthRange(0, maxBytes); err != nil {
		return nil, fmt.Errorf("set content length range: %w", err)
	}
	if contentType != "" {
		if err := policy.SetContentType(contentType); err != nil {
			return nil, fmt.Errorf("set content type: %w", err)
		}
	}

	u, fields, err := s.client.PresignedPostPolicy(ctx, policy)
	if err != nil {
		return nil, fmt.Errorf("presign post policy: %w", err)
	}

	return &UploadGrant{URL: u.String(), Fields: fields, Key: key}, nil
}

// Delete removes the object at key. MinIO treats removal of an absent
// object as a no-op, which gives us idempotence for free.
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}
