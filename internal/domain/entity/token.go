package entity

// Token is a catalog entry for a verified asset on a chain alias. Catalog
// entries are read-only inputs to enrichment; when one matches a fetched
// balance by token address, its logo and price-id take precedence over
// fetcher-supplied metadata.
type Token struct {
	ChainAlias  string `json:"chainAlias"`
	Address     string `json:"address"`
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint8  `json:"decimals"`
	LogoURL     string `json:"logoUrl,omitempty"`
	CoingeckoID string `json:"coingeckoId,omitempty"`
	Verified    bool   `json:"verified"`
	FlaggedSpam bool   `json:"flaggedSpam"`
}
