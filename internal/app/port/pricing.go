package port

import (
	"context"

	"balance_enricher/internal/domain/entity"
)

// PriceService defines the interface of the TTL-bounded price cache.
type PriceService interface {
	// GetPrices resolves quotes for the deduplicated id set in one pass.
	// Ids with neither a cached nor a live price are omitted from the map;
	// oracle failures degrade to stale cached quotes and never surface here.
	GetPrices(ctx context.Context, ids []string, currency string) (map[string]entity.PriceQuote, error)
}

// PriceOracle defines the interface of the external price source. One call
// covers the whole id list; implementations never issue one call per id.
type PriceOracle interface {
	GetMarketData(ctx context.Context, ids []string, currency string) (map[string]entity.MarketData, error)
}
