// Package cache stores rendered artifacts so repeated renders of an
// unchanged document skip the expensive conversion step.
//
// Entries are keyed by [ArtifactKey], which hashes the document content
// together with every option that affects the output. A changed node,
// format or frame size therefore always misses.
//
// Two implementations are provided: [FileCache] for the CLI and
// [NullCache] for --no-cache runs and tests.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found. Expired or
	// unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Close() error
}
