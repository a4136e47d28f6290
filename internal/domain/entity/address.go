package entity

// Address is a tracked wallet address. Addresses are created elsewhere and are
// immutable from the point of view of the enrichment pipeline: they are looked
// up, never mutated.
type Address struct {
	ID             string `json:"id"`
	ChainAlias     string `json:"chainAlias"`
	WalletAddress  string `json:"walletAddress"`
	Ecosystem      string `json:"ecosystem"`
	VaultID        string `json:"vaultId,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
}
