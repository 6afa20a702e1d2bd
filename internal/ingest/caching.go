package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/faultline/faultline/internal/contract"
	"github.com/faultline/faultline/schema"
)

// currentCacheVersion defines the version of the cache payload shape
const currentCacheVersion = 1

// CachedSource wraps a TicketSource with a durable cache. A hit within the
// TTL skips re-reading and re-normalizing the snapshot file.
type CachedSource struct {
	inner contract.TicketSource
	store contract.CacheStore
	ttl   time.Duration
}

var _ contract.TicketSource = &CachedSource{} // Compile-time check

// NewCachedSource wraps inner with store. A nil store disables caching.
func NewCachedSource(inner contract.TicketSource, store contract.CacheStore, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = contract.DefaultCacheTTL
	}
	return &CachedSource{inner: inner, store: store, ttl: ttl}
}

// Identity delegates to the wrapped source.
func (s *CachedSource) Identity(ctx context.Context) (string, error) {
	return s.inner.Identity(ctx)
}

// Load returns the cached table when fresh, otherwise loads from the
// wrapped source and stores the result.
func (s *CachedSource) Load(ctx context.Context) (schema.TicketTable, error) {
	if s.store == nil {
		// Fallback to direct loading
		return s.inner.Load(ctx)
	}

	identity, err := s.inner.Identity(ctx)
	if err != nil {
		return schema.TicketTable{}, err
	}
	key := fmt.Sprintf("%x", sha256.Sum256([]byte(identity)))

	// Check for cache hit
	if table := s.checkCacheHit(key); table != nil {
		return *table, nil
	}

	// Cache miss: load and store
	table, err := s.inner.Load(ctx)
	if err != nil {
		return schema.TicketTable{}, err
	}
	if data, err := json.Marshal(table); err == nil {
		_ = s.store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	return table, nil
}

// checkCacheHit attempts to retrieve and validate a cached table.
func (s *CachedSource) checkCacheHit(key string) *schema.TicketTable {
	data, version, ts, err := s.store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= s.ttl {
			var table schema.TicketTable
			if err := json.Unmarshal(data, &table); err == nil {
				return &table // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}
