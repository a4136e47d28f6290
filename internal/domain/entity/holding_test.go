package entity

import "testing"

func strPtr(s string) *string { return &s }

func TestHoldingRawBalanceRoundTrip(t *testing.T) {
	holding := TokenHolding{
		AddressID:    "addr-1",
		ChainAlias:   "ethereum",
		TokenAddress: strPtr("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"),
		Balance:      "123456789012345678901234567890",
		Decimals:     6,
		Name:         "USD Coin",
		Symbol:       "USDC",
		Visible:      true,
	}

	raw := holding.ToRawBalance("0xwallet")
	back := HoldingFromRawBalance("addr-1", "ethereum", raw)

	if back.Balance != holding.Balance {
		t.Errorf("balance changed: %s -> %s", holding.Balance, back.Balance)
	}
	if back.Decimals != holding.Decimals {
		t.Errorf("decimals changed: %d -> %d", holding.Decimals, back.Decimals)
	}
	if back.Name != holding.Name || back.Symbol != holding.Symbol {
		t.Errorf("metadata changed: %s/%s -> %s/%s", holding.Name, holding.Symbol, back.Name, back.Symbol)
	}
	if back.IsNative() != holding.IsNative() {
		t.Error("native-ness changed in round trip")
	}
	if back.Key() != holding.Key() {
		t.Errorf("key changed: %s -> %s", holding.Key(), back.Key())
	}
}

func TestHoldingRawBalanceRoundTrip_Native(t *testing.T) {
	holding := TokenHolding{
		AddressID:  "addr-1",
		ChainAlias: "ethereum",
		Balance:    "1000000000000000000",
		Decimals:   18,
		Name:       "Ether",
		Symbol:     "ETH",
		Visible:    true,
	}

	raw := holding.ToRawBalance("0xwallet")
	if !raw.IsNative {
		t.Fatal("native holding should convert to a native raw balance")
	}

	back := HoldingFromRawBalance("addr-1", "ethereum", raw)
	if !back.IsNative() {
		t.Error("native-ness lost in round trip")
	}
}

func TestHoldingFromRawBalance_NativeIgnoresIncidentalAddress(t *testing.T) {
	// A fetcher may report the native asset with any incidental address;
	// native identity is keyed by IsNative alone.
	raw := RawBalance{
		WalletAddress: "0xwallet",
		TokenAddress:  strPtr("0x0000000000000000000000000000000000000000"),
		IsNative:      true,
		Balance:       "42",
		Decimals:      18,
		Symbol:        "ETH",
		Name:          "Ether",
	}
	holding := HoldingFromRawBalance("addr-1", "ethereum", raw)
	if holding.TokenAddress != nil {
		t.Error("native holding must have a nil token address")
	}
	if holding.Key() != NativeKey {
		t.Errorf("key = %s, want %s", holding.Key(), NativeKey)
	}
}

func TestBalanceKey(t *testing.T) {
	if got := BalanceKey(nil, true); got != NativeKey {
		t.Errorf("native key = %s, want %s", got, NativeKey)
	}
	if got := BalanceKey(strPtr("0xABCDef"), false); got != "0xabcdef" {
		t.Errorf("token key = %s, want lowercase address", got)
	}
}

func TestNativeCoingeckoID(t *testing.T) {
	tests := []struct {
		chain string
		want  string
	}{
		{"ethereum", "ethereum"},
		{"arbitrum", "ethereum"},
		{"optimism", "ethereum"},
		{"base", "ethereum"},
		{"polygon", "polygon-ecosystem-token"},
		{"avalanche", "avalanche-2"},
		{"bsc", "binancecoin"},
		{"solana", "solana"},
		{"bitcoin", "bitcoin"},
		{"tron", "tron"},
		{"xrp", "ripple"},
	}
	for _, tt := range tests {
		id, ok := NativeCoingeckoID(tt.chain)
		if !ok || id != tt.want {
			t.Errorf("NativeCoingeckoID(%s) = %s/%v, want %s", tt.chain, id, ok, tt.want)
		}
	}
	if _, ok := NativeCoingeckoID("unknown-chain"); ok {
		t.Error("unknown chain should have no native price id")
	}
}

func TestBlockaidChain(t *testing.T) {
	if chain, ok := BlockaidChain("ethereum"); !ok || chain != "eth" {
		t.Errorf("BlockaidChain(ethereum) = %s/%v, want eth", chain, ok)
	}
	if chain, ok := BlockaidChain("avalanche"); !ok || chain != "avalanche" {
		t.Errorf("BlockaidChain(avalanche) = %s/%v, want avalanche", chain, ok)
	}
	if chain, ok := BlockaidChain("avalanche-c"); !ok || chain != "avalanche" {
		t.Errorf("BlockaidChain(avalanche-c) = %s/%v, want avalanche", chain, ok)
	}
	if _, ok := BlockaidChain("tron"); ok {
		t.Error("tron is not scanner-supported")
	}
}
