package testkit

import (
	"context"
	"fmt"
	"sync"
)

// StaticFetcher serves fixed payloads by sheet id and counts fetches. It
// stands in for the Smartsheet client.
type StaticFetcher struct {
	mu     sync.Mutex
	sheets map[int64][]byte
	errs   map[int64]error
	calls  map[int64]int
}

// NewStaticFetcher returns an empty fetcher.
func NewStaticFetcher() *StaticFetcher {
	return &StaticFetcher{
		sheets: make(map[int64][]byte),
		errs:   make(map[int64]error),
		calls:  make(map[int64]int),
	}
}

// WithSheet registers a payload.
func (f *StaticFetcher) WithSheet(id int64, raw []byte) *StaticFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sheets[id] = raw
	return f
}

// WithError makes fetches of id fail.
func (f *StaticFetcher) WithError(id int64, err error) *StaticFetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[id] = err
	return f
}

// FetchSheet returns the registered payload.
func (f *StaticFetcher) FetchSheet(ctx context.Context, sheetID int64) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[sheetID]++

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := f.errs[sheetID]; ok {
		return nil, err
	}
	raw, ok := f.sheets[sheetID]
	if !ok {
		return nil, fmt.Errorf("testkit: no sheet %d", sheetID)
	}
	return raw, nil
}

// Calls returns how many times id was fetched.
func (f *StaticFetcher) Calls(id int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

// DefaultFetcher serves the funding, protocols and perfusions fixtures.
func DefaultFetcher() *StaticFetcher {
	return NewStaticFetcher().
		WithSheet(FundingSheetID, FundingSheet().Build()).
		WithSheet(ProtocolsSheetID, ProtocolsSheet().Build()).
		WithSheet(PerfusionsSheetID, PerfusionsSheet().Build())
}
