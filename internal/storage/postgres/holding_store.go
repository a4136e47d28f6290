package postgres

import (
	"context"
	"fmt"

	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/storage"
)

// HoldingStore implements storage.HoldingStore using PostgreSQL.
//
// The natural key (address_id, chain_alias, token_address-or-NULL) is
// materialized as a token_key column ("native" or the lowercase token
// address) so the unique constraint works for native rows too.
type HoldingStore struct {
	pool *Pool
}

// NewHoldingStore creates a new HoldingStore.
func NewHoldingStore(pool *Pool) *HoldingStore {
	return &HoldingStore{pool: pool}
}

var _ storage.HoldingStore = (*HoldingStore)(nil)

// GetByAddressID retrieves the cached holdings for an address.
func (s *HoldingStore) GetByAddressID(ctx context.Context, addressID string, includeHidden bool) ([]entity.TokenHolding, error) {
	query := `
		SELECT address_id, chain_alias, token_address, balance, decimals, name, symbol, visible, user_override, updated_at
		FROM token_holdings
		WHERE address_id = $1 AND (visible = TRUE OR $2)
	`

	rows, err := s.pool.Query(ctx, query, addressID, includeHidden)
	if err != nil {
		return nil, fmt.Errorf("get holdings by address: %w", err)
	}
	defer rows.Close()

	var holdings []entity.TokenHolding
	for rows.Next() {
		var h entity.TokenHolding
		var override *string
		err := rows.Scan(
			&h.AddressID,
			&h.ChainAlias,
			&h.TokenAddress,
			&h.Balance,
			&h.Decimals,
			&h.Name,
			&h.Symbol,
			&h.Visible,
			&override,
			&h.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		if override != nil {
			h.UserOverride = entity.SpamOverride(*override)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate holdings: %w", err)
	}
	return holdings, nil
}

// UpsertBatch inserts or overwrites holdings. Visibility and user override
// survive the upsert; only balance and display metadata are refreshed.
func (s *HoldingStore) UpsertBatch(ctx context.Context, holdings []entity.TokenHolding) error {
	if len(holdings) == 0 {
		return nil
	}

	query := `
		INSERT INTO token_holdings (
			address_id, chain_alias, token_key, token_address, balance, decimals, name, symbol, visible, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (address_id, chain_alias, token_key) DO UPDATE SET
			balance = EXCLUDED.balance,
			decimals = EXCLUDED.decimals,
			name = EXCLUDED.name,
			symbol = EXCLUDED.symbol,
			updated_at = EXCLUDED.updated_at
	`

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin holdings upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, h := range holdings {
		if h.AddressID == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			h.AddressID,
			h.ChainAlias,
			h.Key(),
			h.TokenAddress,
			h.Balance,
			h.Decimals,
			h.Name,
			h.Symbol,
			h.Visible,
			h.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert holding %s: %w", h.Key(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit holdings upsert: %w", err)
	}
	return nil
}
