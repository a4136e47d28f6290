package memory

import (
	"context"
	"sync"

	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/storage"
)

// HoldingStore is an in-memory implementation of storage.HoldingStore.
type HoldingStore struct {
	mu sync.RWMutex
	// addressID -> holding key ("native" or lowercase token address) -> row
	byAddress map[string]map[string]*entity.TokenHolding
}

// NewHoldingStore creates a new in-memory holdings cache.
func NewHoldingStore() *HoldingStore {
	return &HoldingStore{byAddress: make(map[string]map[string]*entity.TokenHolding)}
}

// GetByAddressID retrieves the cached holdings for an address.
func (s *HoldingStore) GetByAddressID(_ context.Context, addressID string, includeHidden bool) ([]entity.TokenHolding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.byAddress[addressID]
	holdings := make([]entity.TokenHolding, 0, len(rows))
	for _, h := range rows {
		if !includeHidden && !h.Visible {
			continue
		}
		holdings = append(holdings, *h)
	}
	return holdings, nil
}

// UpsertBatch inserts or overwrites holdings keyed by
// (AddressID, ChainAlias, TokenAddress-or-nil). A pre-existing row keeps its
// visibility flag and user override; only balance and metadata are refreshed.
func (s *HoldingStore) UpsertBatch(_ context.Context, holdings []entity.TokenHolding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range holdings {
		if h.AddressID == "" {
			return storage.ErrInvalidInput
		}
		rows, exists := s.byAddress[h.AddressID]
		if !exists {
			rows = make(map[string]*entity.TokenHolding)
			s.byAddress[h.AddressID] = rows
		}
		holdingCopy := h
		if prev, ok := rows[h.Key()]; ok {
			holdingCopy.Visible = prev.Visible
			holdingCopy.UserOverride = prev.UserOverride
		}
		rows[h.Key()] = &holdingCopy
	}
	return nil
}

// SetVisibility flips the visibility flag of an existing holding. Used for
// seeding hidden rows in tests and by the API layer.
func (s *HoldingStore) SetVisibility(addressID, key string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.byAddress[addressID][key]; ok {
		h.Visible = visible
	}
}

// SetUserOverride records a user spam override on an existing holding.
func (s *HoldingStore) SetUserOverride(addressID, key string, override entity.SpamOverride) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.byAddress[addressID][key]; ok {
		h.UserOverride = override
	}
}

var _ storage.HoldingStore = (*HoldingStore)(nil)
