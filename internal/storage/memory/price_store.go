package memory

import (
	"context"
	"sync"
	"time"

	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/storage"
)

// PriceStore is an in-memory implementation of storage.PriceStore.
type PriceStore struct {
	mu sync.RWMutex
	// coingecko id -> currency -> row
	byID map[string]map[string]*entity.TokenPrice
}

// NewPriceStore creates a new in-memory price cache.
func NewPriceStore() *PriceStore {
	return &PriceStore{byID: make(map[string]map[string]*entity.TokenPrice)}
}

// GetFresh retrieves rows for the given ids/currency fetched within ttl.
func (s *PriceStore) GetFresh(_ context.Context, ids []string, currency string, ttl time.Duration) ([]entity.TokenPrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now().UTC()
	prices := make([]entity.TokenPrice, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.byID[id][currency]; ok && p.FreshWithin(ttl, now) {
			prices = append(prices, *p)
		}
	}
	return prices, nil
}

// GetByIDs retrieves rows for the given ids/currency regardless of age.
func (s *PriceStore) GetByIDs(_ context.Context, ids []string, currency string) ([]entity.TokenPrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prices := make([]entity.TokenPrice, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.byID[id][currency]; ok {
			prices = append(prices, *p)
		}
	}
	return prices, nil
}

// UpsertBatch inserts or overwrites rows keyed by (CoingeckoID, Currency).
func (s *PriceStore) UpsertBatch(_ context.Context, prices []entity.TokenPrice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range prices {
		if p.CoingeckoID == "" || p.Currency == "" {
			return storage.ErrInvalidInput
		}
		rows, exists := s.byID[p.CoingeckoID]
		if !exists {
			rows = make(map[string]*entity.TokenPrice)
			s.byID[p.CoingeckoID] = rows
		}
		priceCopy := p
		rows[p.Currency] = &priceCopy
	}
	return nil
}

var _ storage.PriceStore = (*PriceStore)(nil)
