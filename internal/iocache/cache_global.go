package iocache

import (
	"sync"

	"github.com/faultline/faultline/internal/contract"
)

// CacheStoreManager manages the CacheStore instances used by the app.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	tickets      contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetTicketStore returns the ticket snapshot CacheStore.
func (mgr *CacheStoreManager) GetTicketStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.tickets
}
