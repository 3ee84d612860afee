package cache

import (
	"context"
	"strconv"
	"time"

	"smartsheetsvc/internal"
	"smartsheetsvc/ports"

	"golang.org/x/sync/singleflight"
)

// CachedFetcher decorates a SheetFetcher with a TTL cache. Concurrent misses
// for the same sheet share one upstream call. Cache failures are logged and
// fall through to upstream.
type CachedFetcher struct {
	next   ports.SheetFetcher
	store  ports.CacheStore
	ttl    time.Duration
	group  singleflight.Group
	logger *internal.Logger
}

// NewCachedFetcher creates the decorator. A ttl of zero disables caching.
func NewCachedFetcher(next ports.SheetFetcher, store ports.CacheStore, ttl time.Duration, logger *internal.Logger) *CachedFetcher {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CachedFetcher{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger.Named("SheetCache"),
	}
}

// Key is the cache key of a sheet payload.
func Key(sheetID int64) string {
	return "sheet:" + strconv.FormatInt(sheetID, 10)
}

func (f *CachedFetcher) FetchSheet(ctx context.Context, sheetID int64) ([]byte, error) {
	if f.ttl <= 0 {
		return f.next.FetchSheet(ctx, sheetID)
	}

	key := Key(sheetID)
	if raw, ok := f.lookup(ctx, key); ok {
		return raw, nil
	}

	// The shared fetch outlives any one caller; each caller only stops
	// waiting when its own context ends.
	flightCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(key, func() (interface{}, error) {
		if raw, ok := f.lookup(flightCtx, key); ok {
			return raw, nil
		}
		raw, err := f.next.FetchSheet(flightCtx, sheetID)
		if err != nil {
			return nil, err
		}
		if err := f.store.Set(flightCtx, key, raw, f.ttl); err != nil {
			f.logger.Warn("store %s: %v", key, err)
		}
		return raw, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			f.logger.Trace("%s shared an in-flight fetch", key)
		}
		return res.Val.([]byte), nil
	}
}

func (f *CachedFetcher) lookup(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := f.store.Get(ctx, key)
	if err != nil {
		f.logger.Warn("lookup %s: %v", key, err)
		return nil, false
	}
	if ok {
		f.logger.Debug("hit %s", key)
	}
	return raw, ok
}
