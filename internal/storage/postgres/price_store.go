package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/storage"
)

// PriceStore implements storage.PriceStore using PostgreSQL.
type PriceStore struct {
	pool *Pool
}

// NewPriceStore creates a new PriceStore.
func NewPriceStore(pool *Pool) *PriceStore {
	return &PriceStore{pool: pool}
}

var _ storage.PriceStore = (*PriceStore)(nil)

// GetFresh retrieves rows for the given ids/currency fetched within ttl.
func (s *PriceStore) GetFresh(ctx context.Context, ids []string, currency string, ttl time.Duration) ([]entity.TokenPrice, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT coingecko_id, currency, price, price_change_24h, market_cap, fetched_at
		FROM token_prices
		WHERE coingecko_id = ANY($1) AND currency = $2 AND fetched_at > $3
	`

	cutoff := time.Now().UTC().Add(-ttl)
	rows, err := s.pool.Query(ctx, query, ids, currency, cutoff)
	if err != nil {
		return nil, fmt.Errorf("get fresh prices: %w", err)
	}
	defer rows.Close()

	return scanPrices(rows)
}

// GetByIDs retrieves rows for the given ids/currency regardless of age.
func (s *PriceStore) GetByIDs(ctx context.Context, ids []string, currency string) ([]entity.TokenPrice, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT coingecko_id, currency, price, price_change_24h, market_cap, fetched_at
		FROM token_prices
		WHERE coingecko_id = ANY($1) AND currency = $2
	`

	rows, err := s.pool.Query(ctx, query, ids, currency)
	if err != nil {
		return nil, fmt.Errorf("get prices by ids: %w", err)
	}
	defer rows.Close()

	return scanPrices(rows)
}

// UpsertBatch inserts or overwrites rows keyed by (CoingeckoID, Currency).
func (s *PriceStore) UpsertBatch(ctx context.Context, prices []entity.TokenPrice) error {
	if len(prices) == 0 {
		return nil
	}

	query := `
		INSERT INTO token_prices (
			coingecko_id, currency, price, price_change_24h, market_cap, fetched_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (coingecko_id, currency) DO UPDATE SET
			price = EXCLUDED.price,
			price_change_24h = EXCLUDED.price_change_24h,
			market_cap = EXCLUDED.market_cap,
			fetched_at = EXCLUDED.fetched_at
	`

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin prices upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range prices {
		if p.CoingeckoID == "" || p.Currency == "" {
			return storage.ErrInvalidInput
		}
		_, err := tx.Exec(ctx, query,
			p.CoingeckoID,
			p.Currency,
			p.Price,
			p.PriceChange24h,
			p.MarketCap,
			p.FetchedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert price %s/%s: %w", p.CoingeckoID, p.Currency, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit prices upsert: %w", err)
	}
	return nil
}

// scanPrices scans all rows into TokenPrice values.
func scanPrices(rows pgx.Rows) ([]entity.TokenPrice, error) {
	var prices []entity.TokenPrice
	for rows.Next() {
		var p entity.TokenPrice
		err := rows.Scan(
			&p.CoingeckoID,
			&p.Currency,
			&p.Price,
			&p.PriceChange24h,
			&p.MarketCap,
			&p.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prices: %w", err)
	}
	return prices, nil
}
