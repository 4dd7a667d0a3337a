package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/repograde/internal/contract"
	"github.com/huangsam/repograde/schema"
)

// currentCacheVersion defines the version of the cached raw data layout.
const currentCacheVersion = 1

// cachedFetchRepository returns raw repository facts, using the raw store when available.
// Only fetched facts are cached; analysis results are always recomputed.
func cachedFetchRepository(ctx context.Context, cfg *contract.Config, fetcher contract.RepoFetcher, mgr contract.CacheManager) (*schema.RawRepositoryData, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetRawStore()
	}
	if store == nil {
		return fetcher.FetchRepository(ctx, cfg.Repo, cfg.CommitLimit)
	}

	key := generateCacheKey(cfg.Repo, cfg.CommitLimit)
	if raw := checkCacheHit(store, key, cfg.CacheTTL); raw != nil {
		return raw, nil
	}
	return fetchAndStore(ctx, cfg, fetcher, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached entry.
func checkCacheHit(store contract.CacheStore, key string, ttl time.Duration) *schema.RawRepositoryData {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}
	if ttl <= 0 {
		ttl = contract.DefaultCacheTTL
	}

	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > ttl {
		return nil // Stale or written by another layout
	}

	var raw schema.RawRepositoryData
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	return &raw
}

// fetchAndStore fetches from the hosting service and stores the result.
// A failed write is reported but never fails the analysis.
func fetchAndStore(ctx context.Context, cfg *contract.Config, fetcher contract.RepoFetcher, store contract.CacheStore, key string) (*schema.RawRepositoryData, error) {
	raw, err := fetcher.FetchRepository(ctx, cfg.Repo, cfg.CommitLimit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(raw); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to cache repository data", err)
		}
	}
	return raw, nil
}

// generateCacheKey creates a unique key from the repository and fetch window.
func generateCacheKey(ref schema.RepoRef, commitLimit int) string {
	key := fmt.Sprintf("%s:%d", ref.String(), commitLimit)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
