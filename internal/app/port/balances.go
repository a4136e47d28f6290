package port

import (
	"context"

	"balance_enricher/internal/domain/entity"
)

// BalanceService defines the inbound interface of the balance enrichment
// pipeline. It is the only component callers invoke directly.
type BalanceService interface {
	// GetBalances enriches all balances held by the address with the given id.
	// Returns *entity.NotFoundError for an unknown id and
	// *entity.InternalServerError when no fetcher is registered for the
	// address's chain.
	GetBalances(ctx context.Context, addressID string, opts entity.TokenBalanceOptions) ([]entity.EnrichedBalance, error)

	// GetBalancesByChainAndAddress is the (chain alias, wallet address) keyed
	// variant of GetBalances.
	GetBalancesByChainAndAddress(ctx context.Context, chainAlias, walletAddress string, opts entity.TokenBalanceOptions) ([]entity.EnrichedBalance, error)
}
