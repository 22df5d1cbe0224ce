package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested key has no stored blob.
var ErrNotFound = errors.New("blob not found")

type Blob struct {
	Key      string
	Data     []byte
	MimeType string
}

// BlobStore is a key -> bytes mapping. Put is idempotent by key: writing the
// same key twice overwrites silently. Callers choose keys and are responsible
// for avoiding unintended collisions.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) error
	Get(ctx context.Context, key string) (Blob, error)
}
