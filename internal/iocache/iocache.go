// Package iocache is for caching I/O calls to the hosting service.
package iocache

import (
	"sync"

	"github.com/huangsam/repograde/internal/contract"
)

// CacheStoreManager hands out the store for raw repository facts.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	raw          contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// NewManager wraps an existing store. The long-running server uses this to put
// an in-memory layer in front of the durable store.
func NewManager(store contract.CacheStore) *CacheStoreManager {
	return &CacheStoreManager{raw: store}
}

// GetRawStore returns the raw repository CacheStore.
func (mgr *CacheStoreManager) GetRawStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.raw
}
