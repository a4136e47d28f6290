package memory

import (
	"context"
	"strings"
	"sync"

	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/storage"
)

// AddressStore is an in-memory implementation of storage.AddressStore.
type AddressStore struct {
	mu   sync.RWMutex
	byID map[string]*entity.Address
}

// NewAddressStore creates a new in-memory address store.
func NewAddressStore() *AddressStore {
	return &AddressStore{byID: make(map[string]*entity.Address)}
}

// Put adds or replaces an address. Used for seeding.
func (s *AddressStore) Put(a entity.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	addrCopy := a
	s.byID[a.ID] = &addrCopy
}

// GetByID retrieves an address by id. Returns ErrNotFound if not exists.
func (s *AddressStore) GetByID(_ context.Context, addressID string) (*entity.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.byID[addressID]
	if !exists {
		return nil, storage.ErrNotFound
	}
	addrCopy := *a
	return &addrCopy, nil
}

// GetByChainAndAddress retrieves an address by (chain alias, wallet address),
// matching the wallet address case-insensitively.
func (s *AddressStore) GetByChainAndAddress(_ context.Context, chainAlias, walletAddress string) (*entity.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.byID {
		if a.ChainAlias == chainAlias && strings.EqualFold(a.WalletAddress, walletAddress) {
			addrCopy := *a
			return &addrCopy, nil
		}
	}
	return nil, storage.ErrNotFound
}

var _ storage.AddressStore = (*AddressStore)(nil)
