package entity

import "strings"

// SortKey selects the field balances are ordered by.
type SortKey string

const (
	SortByBalance  SortKey = "balance"
	SortByUSDValue SortKey = "usdValue"
	SortBySymbol   SortKey = "symbol"
)

// SortOrder selects ascending or descending ordering.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// TokenBalanceOptions controls a single enrichment request. The zero value
// means: visible holdings only, spam filtered out, sorted by USD value
// descending, priced in the configured default currency.
type TokenBalanceOptions struct {
	IncludeHidden bool      `json:"includeHidden"`
	ShowSpam      bool      `json:"showSpam"`
	SortBy        SortKey   `json:"sortBy"`
	SortOrder     SortOrder `json:"sortOrder"`
	Currency      string    `json:"currency"`
}

// EnrichedBalance is the final output row of the pipeline: one asset held by
// one address, with display metadata, pricing and spam annotation merged in.
// It is produced fresh on every call and never persisted.
type EnrichedBalance struct {
	TokenAddress     *string       `json:"tokenAddress"`
	IsNative         bool          `json:"isNative"`
	Name             string        `json:"name"`
	Symbol           string        `json:"symbol"`
	Decimals         uint8         `json:"decimals"`
	LogoURL          string        `json:"logoUrl,omitempty"`
	CoingeckoID      string        `json:"coingeckoId,omitempty"`
	Balance          string        `json:"balance"`
	FormattedBalance string        `json:"formattedBalance"`
	USDPrice         *float64      `json:"usdPrice"`
	USDValue         *float64      `json:"usdValue"`
	PriceChange24h   *float64      `json:"priceChange24h"`
	IsPriceStale     bool          `json:"isPriceStale"`
	SpamAnalysis     *SpamAnalysis `json:"spamAnalysis"`
}

// Key returns the natural map key for the balance.
func (b EnrichedBalance) Key() string {
	return BalanceKey(b.TokenAddress, b.IsNative)
}

// BalanceKey derives the canonical per-asset map key: the literal "native"
// for a native asset, otherwise the lowercase token address.
func BalanceKey(tokenAddress *string, isNative bool) string {
	if isNative || tokenAddress == nil {
		return NativeKey
	}
	return strings.ToLower(*tokenAddress)
}
