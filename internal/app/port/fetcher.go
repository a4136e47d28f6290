package port

import (
	"context"

	"balance_enricher/internal/domain/entity"
)

// BalanceFetcher defines the interface for fetching live balances from a
// chain RPC node or indexer. Implementations are specific to network types
// (e.g., EVM, Solana) and are interchangeable behind this interface.
type BalanceFetcher interface {
	// GetNativeBalance fetches the native currency balance for a wallet.
	GetNativeBalance(ctx context.Context, walletAddress string) ([]entity.RawBalance, error)

	// GetTokenBalances fetches the token balances for a wallet.
	GetTokenBalances(ctx context.Context, walletAddress string) ([]entity.RawBalance, error)
}

// BalanceFetcherFactory resolves a fetcher for a (chain alias, network) pair.
// A missing registration is a provisioning defect, reported by the second
// return value.
type BalanceFetcherFactory interface {
	GetFetcher(chainAlias, network string) (BalanceFetcher, bool)
}
