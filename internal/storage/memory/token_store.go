package memory

import (
	"context"
	"sync"

	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/storage"
)

// TokenStore is an in-memory implementation of storage.TokenStore.
type TokenStore struct {
	mu      sync.RWMutex
	byChain map[string][]entity.Token
}

// NewTokenStore creates a new in-memory token catalog store.
func NewTokenStore() *TokenStore {
	return &TokenStore{byChain: make(map[string][]entity.Token)}
}

// Put adds a catalog entry. Used for seeding.
func (s *TokenStore) Put(t entity.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byChain[t.ChainAlias] = append(s.byChain[t.ChainAlias], t)
}

// GetVerifiedByChain retrieves the verified catalog entries for a chain.
func (s *TokenStore) GetVerifiedByChain(_ context.Context, chainAlias string) ([]entity.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := s.byChain[chainAlias]
	verified := make([]entity.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Verified {
			verified = append(verified, t)
		}
	}
	return verified, nil
}

var _ storage.TokenStore = (*TokenStore)(nil)
