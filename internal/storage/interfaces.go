package storage

import (
	"context"
	"time"

	"balance_enricher/internal/domain/entity"
)

// AddressStore provides read access to tracked addresses.
type AddressStore interface {
	// GetByID retrieves an address by its id. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, addressID string) (*entity.Address, error)

	// GetByChainAndAddress retrieves an address by (chain alias, wallet address).
	// Returns ErrNotFound if not exists.
	GetByChainAndAddress(ctx context.Context, chainAlias, walletAddress string) (*entity.Address, error)
}

// TokenStore provides read access to the verified-token catalog.
type TokenStore interface {
	// GetVerifiedByChain retrieves the verified catalog entries for a chain.
	// An unknown chain yields an empty slice, not an error.
	GetVerifiedByChain(ctx context.Context, chainAlias string) ([]entity.Token, error)
}

// HoldingStore provides access to the persisted holdings cache.
type HoldingStore interface {
	// GetByAddressID retrieves the cached holdings for an address. When
	// includeHidden is false only visible holdings are returned.
	GetByAddressID(ctx context.Context, addressID string, includeHidden bool) ([]entity.TokenHolding, error)

	// UpsertBatch inserts or overwrites holdings keyed by
	// (AddressID, ChainAlias, TokenAddress-or-nil). Upserts are idempotent;
	// concurrent writers race with last-write-wins semantics.
	UpsertBatch(ctx context.Context, holdings []entity.TokenHolding) error
}

// PriceStore provides access to the persisted price cache.
type PriceStore interface {
	// GetFresh retrieves rows for the given ids/currency fetched within ttl.
	// Ids without a fresh row are simply absent from the result.
	GetFresh(ctx context.Context, ids []string, currency string, ttl time.Duration) ([]entity.TokenPrice, error)

	// GetByIDs retrieves rows for the given ids/currency regardless of age.
	GetByIDs(ctx context.Context, ids []string, currency string) ([]entity.TokenPrice, error)

	// UpsertBatch inserts or overwrites rows keyed by (CoingeckoID, Currency).
	UpsertBatch(ctx context.Context, prices []entity.TokenPrice) error
}
