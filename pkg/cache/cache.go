// Package cache provides a small byte-oriented cache abstraction used to
// avoid regenerating a pattern tree for parameters already built: keys
// are content hashes of the normalized TreeParam, values are the tree's
// serialized byte stream.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores and retrieves opaque byte blobs by key, with an optional
// per-entry TTL. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves the value stored under key. The second return value
	// is false on a miss (including an expired or absent entry); in that
	// case the error is nil unless retrieval itself failed.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means the entry never
	// expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the entry stored under key, if any. Deleting a
	// missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache (connections, file
	// handles). It is safe to call Close more than once.
	Close() error
}

// TreeKey derives the cache key for a generated tree from its content
// hash, namespacing it so tree entries never collide with any other
// kind of cached artifact sharing the same backend.
func TreeKey(paramsHash string) string {
	return fmt.Sprintf("tree:%s", paramsHash)
}
