package service

import (
	"context"
	"time"

	"balance_enricher/internal/app/port"
	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/pkg/metrics"
	"balance_enricher/internal/pkg/utils"
	"balance_enricher/internal/storage"
)

// priceServiceImpl implements port.PriceService as a TTL-bounded read-through
// cache over the price store, backed by a batched external oracle.
type priceServiceImpl struct {
	priceStore storage.PriceStore
	oracle     port.PriceOracle
	logger     port.Logger
	ttl        time.Duration
}

// NewPriceService creates a new instance of priceServiceImpl.
func NewPriceService(priceStore storage.PriceStore, oracle port.PriceOracle, l port.Logger, ttl time.Duration) port.PriceService {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &priceServiceImpl{
		priceStore: priceStore,
		oracle:     oracle,
		logger:     l,
		ttl:        ttl,
	}
}

// GetPrices implements port.PriceService. Ids fresh in the cache are served
// from it; the remainder is fetched in one oracle call and persisted. When
// the oracle call fails, cached rows of any age are served with IsStale set,
// and ids without any cached row are omitted.
func (s *priceServiceImpl) GetPrices(ctx context.Context, ids []string, currency string) (map[string]entity.PriceQuote, error) {
	quotes := make(map[string]entity.PriceQuote)
	deduped := utils.DedupeStrings(ids)
	if len(deduped) == 0 {
		return quotes, nil
	}

	fresh, err := s.priceStore.GetFresh(ctx, deduped, currency, s.ttl)
	if err != nil {
		s.logger.Warn("Failed to read fresh prices from cache, treating all ids as missing",
			"currency", currency, "ids_count", len(deduped), "error", err)
		fresh = nil
	}
	for _, row := range fresh {
		quotes[row.CoingeckoID] = entity.PriceQuote{
			Price:          row.Price,
			PriceChange24h: row.PriceChange24h,
			MarketCap:      row.MarketCap,
		}
	}

	var missing []string
	for _, id := range deduped {
		if _, ok := quotes[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return quotes, nil
	}

	market, err := s.oracle.GetMarketData(ctx, missing, currency)
	if err != nil {
		metrics.OracleFailures.Inc()
		s.logger.Warn("Price oracle call failed, falling back to cached prices regardless of age",
			"currency", currency, "missing_count", len(missing), "error", err)
		s.fillStale(ctx, quotes, missing, currency)
		return quotes, nil
	}

	now := time.Now().UTC()
	rows := make([]entity.TokenPrice, 0, len(market))
	for _, id := range missing {
		data, ok := market[id]
		if !ok {
			// The oracle does not know this id; simply omit it.
			continue
		}
		quotes[id] = entity.PriceQuote{
			Price:          data.Price,
			PriceChange24h: data.PriceChange24h,
			MarketCap:      data.MarketCap,
		}
		rows = append(rows, entity.TokenPrice{
			CoingeckoID:    id,
			Currency:       currency,
			Price:          data.Price,
			PriceChange24h: data.PriceChange24h,
			MarketCap:      data.MarketCap,
			FetchedAt:      now,
		})
	}
	if len(rows) > 0 {
		if err := s.priceStore.UpsertBatch(ctx, rows); err != nil {
			s.logger.Warn("Failed to persist fetched prices", "currency", currency, "rows", len(rows), "error", err)
		}
	}
	return quotes, nil
}

// fillStale serves any-age cached rows for the given ids, marked stale.
func (s *priceServiceImpl) fillStale(ctx context.Context, quotes map[string]entity.PriceQuote, ids []string, currency string) {
	cached, err := s.priceStore.GetByIDs(ctx, ids, currency)
	if err != nil {
		s.logger.Error("Failed to read stale prices from cache", "currency", currency, "ids_count", len(ids), "error", err)
		return
	}
	for _, row := range cached {
		quotes[row.CoingeckoID] = entity.PriceQuote{
			Price:          row.Price,
			PriceChange24h: row.PriceChange24h,
			MarketCap:      row.MarketCap,
			IsStale:        true,
		}
	}
}
