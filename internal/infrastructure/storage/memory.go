package storage

import (
	"context"
	"sync"

	"github.com/pixelvault/pixelvault/internal/domain"
)

// MemoryStorage is an in-process blob store for local development and
// tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

type blob struct {
	data        []byte
	contentType string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]blob)}
}

func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	if !ok {
		return nil, domain.ErrBlobNotFound
	}
	return append([]byte(nil), b.data...), nil
}

func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = blob{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

func (s *MemoryStorage) DeleteMany(_ context.Context, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.blobs, key)
	}
	return nil
}

// Len reports the number of stored blobs. Test helper.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
