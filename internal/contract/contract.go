// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/repograde/schema"
)

// RepoFetcher retrieves raw repository facts from a hosting service.
// This allows the analysis flow to be tested without network access.
type RepoFetcher interface {
	// FetchRepository returns metadata, languages, the newest commitLimit commits,
	// the recursive file tree and README text for one repository.
	FetchRepository(ctx context.Context, ref schema.RepoRef, commitLimit int) (*schema.RawRepositoryData, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetRawStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
