// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/faultline/faultline/schema"
)

// TicketSource is the single interface the core consumes from its ingestion
// collaborator. Implementations own all I/O; the core never reads files or
// the network itself.
type TicketSource interface {
	// Identity returns a stable key describing the snapshot behind this
	// source (path, size, modification time). Two sources with the same
	// identity are interchangeable, which is what makes caching sound.
	Identity(ctx context.Context) (string, error)

	// Load reads and normalizes the ticket snapshot. A failure here is
	// terminal for the run; no partial results are produced.
	Load(ctx context.Context) (schema.TicketTable, error)
}

// CacheStore defines the interface for cached snapshot storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// CacheManager defines the interface for managing cache stores.
type CacheManager interface {
	GetTicketStore() CacheStore
}
