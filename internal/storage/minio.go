package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sethvargo/go-retry"

	"github.com/docfolio/backend/internal/config"
)

// MinIOStorage is a thin wrapper around the minio client used by services.
// Every blob call gets a bounded exponential-backoff retry; validation
// failures never reach this layer.
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

var _ Store = (*MinIOStorage)(nil)

// NewMinIOStorage creates a new MinIO storage client and ensures the bucket exists.
func NewMinIOStorage(cfg *config.MinIOConfig) (*MinIOStorage, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &MinIOStorage{client: mc, bucket: cfg.Bucket}
	// ensure bucket exists (idempotent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

func blobBackoff() retry.Backoff {
	return retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
}

// putFunc performs one upload attempt from a fresh reader.
type putFunc func(ctx context.Context, reader io.Reader, size int64) error

// uploadWithRetry buffers the payload once so every attempt rereads it
// from the start.
func uploadWithRetry(ctx context.Context, reader io.Reader, put putFunc) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	return retry.Do(ctx, blobBackoff(), func(ctx context.Context) error {
		if err := put(ctx, bytes.NewReader(data), int64(len(data))); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// Upload writes data from reader to the configured bucket under key.
func (s *MinIOStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return uploadWithRetry(ctx, reader, func(ctx context.Context, r io.Reader, n int64) error {
		_, err := s.client.PutObject(ctx, s.bucket, key, r, n, minio.PutObjectOptions{ContentType: contentType})
		return err
	})
}

// Download returns a ReadCloser for the stored object.
func (s *MinIOStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	var out io.ReadCloser
	err := retry.Do(ctx, blobBackoff(), func(ctx context.Context) error {
		obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return retry.RetryableError(err)
		}
		// a stat confirms the object exists before handing out the reader
		if _, err := obj.Stat(); err != nil {
			obj.Close()
			if minio.ToErrorResponse(err).Code == "NoSuchKey" {
				return err
			}
			return retry.RetryableError(err)
		}
		out = obj
		return nil
	})
	return out, err
}

// Remove deletes the stored object. Used as the compensating action when
// persisting an attachment record fails after its bytes were uploaded.
func (s *MinIOStorage) Remove(ctx context.Context, key string) error {
	return retry.Do(ctx, blobBackoff(), func(ctx context.Context) error {
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// List returns a page of stored objects plus the total object count.
func (s *MinIOStorage) List(ctx context.Context, offset, limit int) ([]ObjectInfo, int, error) {
	items := []ObjectInfo{}
	total := 0
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, 0, obj.Err
		}
		if total >= offset && (limit <= 0 || len(items) < limit) {
			items = append(items, ObjectInfo{Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
		}
		total++
	}
	return items, total, nil
}
