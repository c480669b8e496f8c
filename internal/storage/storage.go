package storage

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes one stored object in a listing.
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// Store is the blob-store boundary the attachment service depends on.
// Objects are keyed by attachment filename; replace overwrites in place.
type Store interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
	List(ctx context.Context, offset, limit int) ([]ObjectInfo, int, error)
}
