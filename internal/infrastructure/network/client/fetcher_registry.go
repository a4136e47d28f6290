package client

import (
	"fmt"
	"strings"
	"sync"

	"balance_enricher/internal/app/port"
)

// FetcherRegistry implements port.BalanceFetcherFactory as a thread-safe
// (chain alias, network) -> fetcher registry.
type FetcherRegistry struct {
	mu       sync.RWMutex
	fetchers map[string]port.BalanceFetcher
}

// NewFetcherRegistry creates an empty registry.
func NewFetcherRegistry() *FetcherRegistry {
	return &FetcherRegistry{fetchers: make(map[string]port.BalanceFetcher)}
}

var _ port.BalanceFetcherFactory = (*FetcherRegistry)(nil)

// Register installs a fetcher for a (chain alias, network) pair, replacing
// any previous registration.
func (r *FetcherRegistry) Register(chainAlias, network string, fetcher port.BalanceFetcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetchers[fetcherKey(chainAlias, network)] = fetcher
}

// GetFetcher resolves the fetcher for a (chain alias, network) pair.
func (r *FetcherRegistry) GetFetcher(chainAlias, network string) (port.BalanceFetcher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fetcher, ok := r.fetchers[fetcherKey(chainAlias, network)]
	return fetcher, ok
}

func fetcherKey(chainAlias, network string) string {
	return fmt.Sprintf("%s/%s", strings.ToLower(chainAlias), strings.ToLower(network))
}
