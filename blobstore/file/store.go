package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/w-h-a/persona/blobstore"
)

const metaSuffix = ".meta.json"

type blobMeta struct {
	MimeType string `json:"mime_type"`
}

// fileStore persists blobs under a directory: the raw bytes at <key> and a
// small sidecar at <key>.meta.json carrying the mime type.
type fileStore struct {
	options blobstore.Options
	dir     string
	mtx     sync.Mutex
}

func (s *fileStore) Put(ctx context.Context, key string, data []byte, mimeType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}

	meta, err := json.Marshal(blobMeta{MimeType: mimeType})
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(s.dir, key+metaSuffix), meta, 0o644); err != nil {
		return fmt.Errorf("failed to write blob meta %s: %w", key, err)
	}

	return nil
}

func (s *fileStore) Get(ctx context.Context, key string) (blobstore.Blob, error) {
	if err := validateKey(key); err != nil {
		return blobstore.Blob{}, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return blobstore.Blob{}, blobstore.ErrNotFound
	} else if err != nil {
		return blobstore.Blob{}, fmt.Errorf("failed to read blob %s: %w", key, err)
	}

	blob := blobstore.Blob{
		Key:      key,
		Data:     data,
		MimeType: "application/octet-stream",
	}

	if raw, err := os.ReadFile(filepath.Join(s.dir, key+metaSuffix)); err == nil {
		var meta blobMeta
		if err := json.Unmarshal(raw, &meta); err == nil && len(meta.MimeType) > 0 {
			blob.MimeType = meta.MimeType
		}
	}

	return blob, nil
}

func validateKey(key string) error {
	if len(strings.TrimSpace(key)) == 0 {
		return errors.New("blob key is required")
	}
	if strings.ContainsAny(key, `/\`) || key != filepath.Base(key) {
		return fmt.Errorf("invalid blob key: %s", key)
	}
	return nil
}

func NewStore(opts ...blobstore.Option) (blobstore.BlobStore, error) {
	options := blobstore.NewOptions(opts...)

	if len(options.Location) == 0 {
		return nil, errors.New("location is required")
	}

	if err := os.MkdirAll(options.Location, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}

	s := &fileStore{
		options: options,
		dir:     options.Location,
	}

	return s, nil
}
