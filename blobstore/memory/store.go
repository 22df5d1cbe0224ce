package memory

import (
	"context"
	"sync"

	"github.com/w-h-a/persona/blobstore"
)

type memoryStore struct {
	options blobstore.Options
	blobs   map[string]blobstore.Blob
	mtx     sync.RWMutex
}

func (s *memoryStore) Put(ctx context.Context, key string, data []byte, mimeType string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	cpy := make([]byte, len(data))
	copy(cpy, data)

	s.blobs[key] = blobstore.Blob{
		Key:      key,
		Data:     cpy,
		MimeType: mimeType,
	}

	return nil
}

func (s *memoryStore) Get(ctx context.Context, key string) (blobstore.Blob, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	blob, ok := s.blobs[key]
	if !ok {
		return blobstore.Blob{}, blobstore.ErrNotFound
	}

	cpy := make([]byte, len(blob.Data))
	copy(cpy, blob.Data)
	blob.Data = cpy

	return blob, nil
}

func NewStore(opts ...blobstore.Option) blobstore.BlobStore {
	options := blobstore.NewOptions(opts...)

	s := &memoryStore{
		options: options,
		blobs:   map[string]blobstore.Blob{},
		mtx:     sync.RWMutex{},
	}

	return s
}
