package entity

import "time"

// SpamOverride is an explicit user decision about a held token. It takes
// precedence over every automated classification signal.
type SpamOverride string

const (
	OverrideNone    SpamOverride = ""
	OverrideTrusted SpamOverride = "trusted"
	OverrideSpam    SpamOverride = "spam"
)

// NativeKey is the classification/map key used for a chain's native asset,
// which has no contract address.
const NativeKey = "native"

// TokenHolding is the persisted last-known balance row for one asset on one
// address. There is at most one row per (AddressID, ChainAlias,
// TokenAddress-or-nil); a nil TokenAddress identifies the native asset.
// Balances are base-unit integers kept as decimal strings because magnitudes
// can exceed the 64-bit range.
type TokenHolding struct {
	AddressID    string       `json:"addressId"`
	ChainAlias   string       `json:"chainAlias"`
	TokenAddress *string      `json:"tokenAddress"`
	Balance      string       `json:"balance"`
	Decimals     uint8        `json:"decimals"`
	Name         string       `json:"name"`
	Symbol       string       `json:"symbol"`
	Visible      bool         `json:"visible"`
	UserOverride SpamOverride `json:"userOverride,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// IsNative reports whether the holding is the chain's native asset.
func (h TokenHolding) IsNative() bool {
	return h.TokenAddress == nil
}

// Key returns the natural map key for the holding: "native" for the native
// asset, otherwise the lowercase token address.
func (h TokenHolding) Key() string {
	return BalanceKey(h.TokenAddress, h.IsNative())
}

// RawBalance is the ephemeral output of a chain balance fetcher. It is never
// persisted as-is; the orchestrator converts it to and from TokenHolding.
// Native identity is carried by IsNative, never inferred from TokenAddress,
// because a fetcher may report the native asset with any incidental address.
type RawBalance struct {
	WalletAddress string  `json:"walletAddress"`
	TokenAddress  *string `json:"tokenAddress"`
	IsNative      bool    `json:"isNative"`
	Balance       string  `json:"balance"`
	Decimals      uint8   `json:"decimals"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
}

// Key returns the natural map key for the raw balance.
func (rb RawBalance) Key() string {
	return BalanceKey(rb.TokenAddress, rb.IsNative)
}

// ToRawBalance converts a cached holding back into fetcher-shaped output for
// the cached-snapshot fallback path.
func (h TokenHolding) ToRawBalance(walletAddress string) RawBalance {
	var tokenAddress *string
	if h.TokenAddress != nil {
		addr := *h.TokenAddress
		tokenAddress = &addr
	}
	return RawBalance{
		WalletAddress: walletAddress,
		TokenAddress:  tokenAddress,
		IsNative:      h.IsNative(),
		Balance:       h.Balance,
		Decimals:      h.Decimals,
		Symbol:        h.Symbol,
		Name:          h.Name,
	}
}

// HoldingFromRawBalance converts a fetched balance into its persisted form.
// A native raw balance always yields a nil TokenAddress no matter what the
// fetcher reported in that field.
func HoldingFromRawBalance(addressID, chainAlias string, rb RawBalance) TokenHolding {
	var tokenAddress *string
	if !rb.IsNative && rb.TokenAddress != nil {
		addr := *rb.TokenAddress
		tokenAddress = &addr
	}
	return TokenHolding{
		AddressID:    addressID,
		ChainAlias:   chainAlias,
		TokenAddress: tokenAddress,
		Balance:      rb.Balance,
		Decimals:     rb.Decimals,
		Name:         rb.Name,
		Symbol:       rb.Symbol,
		Visible:      true,
		UpdatedAt:    time.Now().UTC(),
	}
}
