package services

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// BlobStore persists a named JSON blob. The matching engine keeps its viewed
// set and its result cache in single slots behind this interface; every
// caller swallows persistence failures and stays memory-authoritative.
type BlobStore interface {
	Load(ctx context.Context, slot string) ([]byte, error)
	Save(ctx context.Context, slot string, blob []byte) error
}

// ErrBlobNotFound is returned when a slot has never been written
var ErrBlobNotFound = errors.New("blob not found")

// RedisBlobStore persists blobs as plain Redis string keys
type RedisBlobStore struct {
	Client *redis.Client
}

func (s *RedisBlobStore) Load(ctx context.Context, slot string) ([]byte, error) {
	blob, err := s.Client.Get(ctx, slot).Bytes()
	if err == redis.Nil {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return blob, nil
}

func (s *RedisBlobStore) Save(ctx context.Context, slot string, blob []byte) error {
	return s.Client.Set(ctx, slot, blob, 0).Err()
}

// MemoryBlobStore is the degraded mode used when Redis is unreachable, and
// the fixture store in tests
type MemoryBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (s *MemoryBlobStore) Load(_ context.Context, slot string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[slot]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return blob, nil
}

func (s *MemoryBlobStore) Save(_ context.Context, slot string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[slot] = blob
	return nil
}
