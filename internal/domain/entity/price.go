package entity

import "time"

// TokenPrice is a persisted price-cache row keyed by (CoingeckoID, Currency).
type TokenPrice struct {
	CoingeckoID    string    `json:"coingeckoId"`
	Currency       string    `json:"currency"`
	Price          float64   `json:"price"`
	PriceChange24h float64   `json:"priceChange24h"`
	MarketCap      float64   `json:"marketCap"`
	FetchedAt      time.Time `json:"fetchedAt"`
}

// FreshWithin reports whether the row is younger than the given TTL.
func (p TokenPrice) FreshWithin(ttl time.Duration, now time.Time) bool {
	return now.Sub(p.FetchedAt) < ttl
}

// MarketData is one id's slice of a batched oracle response.
type MarketData struct {
	Price          float64 `json:"price"`
	PriceChange24h float64 `json:"priceChange24h"`
	MarketCap      float64 `json:"marketCap"`
	MarketCapRank  int     `json:"marketCapRank"`
}

// PriceQuote is the per-id result handed back to the orchestrator. IsStale is
// set when the row was served from the cache past its TTL because the oracle
// call failed.
type PriceQuote struct {
	Price          float64 `json:"price"`
	PriceChange24h float64 `json:"priceChange24h"`
	MarketCap      float64 `json:"marketCap"`
	IsStale        bool    `json:"isStale"`
}
