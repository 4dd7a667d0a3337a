package iocache

import (
	"database/sql"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/schema"
)

// memoryBackend is reported when the LRU has no durable store behind it.
const memoryBackend = "memory"

// lruEntry is one payload with the metadata callers use for staleness checks.
type lruEntry struct {
	data    []byte
	version int
	ts      int64
}

// LRUStore is a bounded in-memory layer in front of an optional durable store.
// Reads fall through to the inner store on a miss and populate the LRU.
// Writes go to both.
type LRUStore struct {
	inner contract.CacheStore
	cache *lru.Cache[string, lruEntry]
}

var _ contract.CacheStore = &LRUStore{} // Compile-time check

// NewLRUStore creates a layer holding at most size entries. inner may be nil.
func NewLRUStore(inner contract.CacheStore, size int) (*LRUStore, error) {
	cache, err := lru.New[string, lruEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}
	return &LRUStore{inner: inner, cache: cache}, nil
}

// Get implements the CacheStore interface.
func (s *LRUStore) Get(key string) ([]byte, int, int64, error) {
	if entry, ok := s.cache.Get(key); ok {
		return entry.data, entry.version, entry.ts, nil
	}
	if s.inner == nil {
		return nil, 0, 0, sql.ErrNoRows
	}

	data, version, ts, err := s.inner.Get(key)
	if err != nil {
		return nil, 0, 0, err
	}
	s.cache.Add(key, lruEntry{data: data, version: version, ts: ts})
	return data, version, ts, nil
}

// Set implements the CacheStore interface.
func (s *LRUStore) Set(key string, value []byte, version int, timestamp int64) error {
	s.cache.Add(key, lruEntry{data: value, version: version, ts: timestamp})
	if s.inner == nil {
		return nil
	}
	return s.inner.Set(key, value, version, timestamp)
}

// GetStatus reports the durable store when there is one, else the memory layer.
func (s *LRUStore) GetStatus() (schema.CacheStatus, error) {
	if s.inner != nil {
		return s.inner.GetStatus()
	}
	return schema.CacheStatus{
		Backend:      memoryBackend,
		Connected:    true,
		TotalEntries: s.cache.Len(),
	}, nil
}

// Close purges the memory layer and closes the inner store.
func (s *LRUStore) Close() error {
	s.cache.Purge()
	if s.inner == nil {
		return nil
	}
	return s.inner.Close()
}
