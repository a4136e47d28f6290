package postgres

import (
	"context"
	"fmt"

	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/storage"
)

// TokenStore implements storage.TokenStore using PostgreSQL.
type TokenStore struct {
	pool *Pool
}

// NewTokenStore creates a new TokenStore.
func NewTokenStore(pool *Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

var _ storage.TokenStore = (*TokenStore)(nil)

// GetVerifiedByChain retrieves the verified catalog entries for a chain.
func (s *TokenStore) GetVerifiedByChain(ctx context.Context, chainAlias string) ([]entity.Token, error) {
	query := `
		SELECT chain_alias, address, name, symbol, decimals, logo_url, coingecko_id, verified, flagged_spam
		FROM tokens
		WHERE chain_alias = $1 AND verified = TRUE
		ORDER BY symbol ASC
	`

	rows, err := s.pool.Query(ctx, query, chainAlias)
	if err != nil {
		return nil, fmt.Errorf("get verified tokens by chain: %w", err)
	}
	defer rows.Close()

	var tokens []entity.Token
	for rows.Next() {
		var t entity.Token
		err := rows.Scan(
			&t.ChainAlias,
			&t.Address,
			&t.Name,
			&t.Symbol,
			&t.Decimals,
			&t.LogoURL,
			&t.CoingeckoID,
			&t.Verified,
			&t.FlaggedSpam,
		)
		if err != nil {
			return nil, fmt.Errorf("scan token: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tokens: %w", err)
	}
	return tokens, nil
}
