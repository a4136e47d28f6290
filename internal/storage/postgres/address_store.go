package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/storage"
)

// AddressStore implements storage.AddressStore using PostgreSQL.
type AddressStore struct {
	pool *Pool
}

// NewAddressStore creates a new AddressStore.
func NewAddressStore(pool *Pool) *AddressStore {
	return &AddressStore{pool: pool}
}

var _ storage.AddressStore = (*AddressStore)(nil)

// GetByID retrieves an address by id. Returns ErrNotFound if not exists.
func (s *AddressStore) GetByID(ctx context.Context, addressID string) (*entity.Address, error) {
	query := `
		SELECT id, chain_alias, wallet_address, ecosystem, vault_id, organization_id
		FROM addresses
		WHERE id = $1
	`

	row := s.pool.QueryRow(ctx, query, addressID)
	a, err := scanAddress(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get address by id: %w", err)
	}
	return a, nil
}

// GetByChainAndAddress retrieves an address by (chain alias, wallet address).
// Returns ErrNotFound if not exists.
func (s *AddressStore) GetByChainAndAddress(ctx context.Context, chainAlias, walletAddress string) (*entity.Address, error) {
	query := `
		SELECT id, chain_alias, wallet_address, ecosystem, vault_id, organization_id
		FROM addresses
		WHERE chain_alias = $1 AND lower(wallet_address) = lower($2)
	`

	row := s.pool.QueryRow(ctx, query, chainAlias, walletAddress)
	a, err := scanAddress(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get address by chain and wallet: %w", err)
	}
	return a, nil
}

// scanAddress scans a single row into Address.
func scanAddress(row pgx.Row) (*entity.Address, error) {
	var a entity.Address
	err := row.Scan(
		&a.ID,
		&a.ChainAlias,
		&a.WalletAddress,
		&a.Ecosystem,
		&a.VaultID,
		&a.OrganizationID,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
