// Package iocache caches parsed input tables so repeated runs skip CSV parsing.
package iocache

import (
	"sync"

	"github.com/huangsam/paleoreel/internal/contract"
)

// CacheStoreManager manages the CacheStore instances of the process.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	table        contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetTableStore returns the table CacheStore.
func (mgr *CacheStoreManager) GetTableStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.table
}
