package ports

import (
	"context"
	"time"
)

// SheetFetcher retrieves the raw JSON payload of a sheet by id.
// Implementations: the Smartsheet REST client and the caching decorator.
type SheetFetcher interface {
	FetchSheet(ctx context.Context, sheetID int64) ([]byte, error)
}

// CacheStore is a key-value store with per-entry expiry, used to hold raw
// sheet payloads between requests.
type CacheStore interface {
	// Get returns the value and true on a live hit. Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
