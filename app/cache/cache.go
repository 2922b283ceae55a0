// Package cache provides the time-boxed page cache used for the index
// listing. Entries expire on their TTL and are otherwise removed only by an
// explicit Clear; write paths never invalidate the cache.
package cache

import "context"

// IndexKeyPrefix namespaces cached index pages.
const IndexKeyPrefix = "index_page:"

// Cache is a byte-value key-value store with a fixed TTL per backend.
type Cache interface {
	// Get returns the cached value for key, or false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key with the backend's TTL.
	Set(ctx context.Context, key string, value []byte) error
	// Clear drops every cached page. This is the explicit administrative
	// invalidation; nothing else removes live entries.
	Clear(ctx context.Context) error
}
