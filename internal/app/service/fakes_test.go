package service

import (
	"context"
	"sync"
	"time"

	"balance_enricher/internal/app/port"
	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/storage"
)

// nopLogger discards everything. Tests that assert on log output are not
// worth their upkeep here; behavior is asserted through returned values.
type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fakeAddressStore struct {
	addresses []entity.Address
}

func (s *fakeAddressStore) GetByID(_ context.Context, addressID string) (*entity.Address, error) {
	for _, a := range s.addresses {
		if a.ID == addressID {
			addrCopy := a
			return &addrCopy, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeAddressStore) GetByChainAndAddress(_ context.Context, chainAlias, walletAddress string) (*entity.Address, error) {
	for _, a := range s.addresses {
		if a.ChainAlias == chainAlias && a.WalletAddress == walletAddress {
			addrCopy := a
			return &addrCopy, nil
		}
	}
	return nil, storage.ErrNotFound
}

type fakeTokenStore struct {
	tokens []entity.Token
}

func (s *fakeTokenStore) GetVerifiedByChain(_ context.Context, chainAlias string) ([]entity.Token, error) {
	var out []entity.Token
	for _, t := range s.tokens {
		if t.ChainAlias == chainAlias {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeHoldingStore struct {
	holdings []entity.TokenHolding
	upserts  [][]entity.TokenHolding
}

func (s *fakeHoldingStore) GetByAddressID(_ context.Context, addressID string, includeHidden bool) ([]entity.TokenHolding, error) {
	var out []entity.TokenHolding
	for _, h := range s.holdings {
		if h.AddressID != addressID {
			continue
		}
		if !includeHidden && !h.Visible {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (s *fakeHoldingStore) UpsertBatch(_ context.Context, holdings []entity.TokenHolding) error {
	s.upserts = append(s.upserts, holdings)
	return nil
}

type fakePriceStore struct {
	fresh     []entity.TokenPrice
	anyAge    []entity.TokenPrice
	upserted  [][]entity.TokenPrice
	freshErr  error
	anyAgeErr error
}

func (s *fakePriceStore) GetFresh(_ context.Context, ids []string, currency string, _ time.Duration) ([]entity.TokenPrice, error) {
	if s.freshErr != nil {
		return nil, s.freshErr
	}
	return filterPrices(s.fresh, ids, currency), nil
}

func (s *fakePriceStore) GetByIDs(_ context.Context, ids []string, currency string) ([]entity.TokenPrice, error) {
	if s.anyAgeErr != nil {
		return nil, s.anyAgeErr
	}
	return filterPrices(s.anyAge, ids, currency), nil
}

func (s *fakePriceStore) UpsertBatch(_ context.Context, prices []entity.TokenPrice) error {
	s.upserted = append(s.upserted, prices)
	return nil
}

func filterPrices(rows []entity.TokenPrice, ids []string, currency string) []entity.TokenPrice {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []entity.TokenPrice
	for _, p := range rows {
		if _, ok := wanted[p.CoingeckoID]; ok && p.Currency == currency {
			out = append(out, p)
		}
	}
	return out
}

type fakeOracle struct {
	data  map[string]entity.MarketData
	err   error
	calls [][]string
}

func (o *fakeOracle) GetMarketData(_ context.Context, ids []string, _ string) (map[string]entity.MarketData, error) {
	o.calls = append(o.calls, ids)
	if o.err != nil {
		return nil, o.err
	}
	return o.data, nil
}

type fakeFetcher struct {
	native []entity.RawBalance
	tokens []entity.RawBalance
	err    error
}

func (f *fakeFetcher) GetNativeBalance(_ context.Context, _ string) ([]entity.RawBalance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.native, nil
}

func (f *fakeFetcher) GetTokenBalances(_ context.Context, _ string) ([]entity.RawBalance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens, nil
}

type fakeFetcherFactory struct {
	fetcher port.BalanceFetcher
}

func (f *fakeFetcherFactory) GetFetcher(_, _ string) (port.BalanceFetcher, bool) {
	if f.fetcher == nil {
		return nil, false
	}
	return f.fetcher, true
}

type fakeClassifier struct {
	results map[string]entity.ClassificationResult
	err     error
	batches [][]entity.TokenToClassify
}

func (c *fakeClassifier) ClassifyTokensBatch(_ context.Context, tokens []entity.TokenToClassify) (map[string]entity.ClassificationResult, error) {
	c.batches = append(c.batches, tokens)
	if c.err != nil {
		return nil, c.err
	}
	return c.results, nil
}

// fakeScanner delegates to a function so each test can script verdicts and
// failures per token. Calls are recorded under a lock because the aggregator
// fans out concurrently.
type fakeScanner struct {
	scan func(providerChain, tokenAddress string) (*entity.BlockaidResult, error)

	mu    sync.Mutex
	calls []string
}

func (s *fakeScanner) ScanToken(_ context.Context, providerChain, tokenAddress string) (*entity.BlockaidResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, providerChain+":"+tokenAddress)
	s.mu.Unlock()
	return s.scan(providerChain, tokenAddress)
}

func (s *fakeScanner) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
