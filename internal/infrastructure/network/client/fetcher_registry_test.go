package client

import (
	"context"
	"testing"

	"balance_enricher/internal/domain/entity"
)

type stubFetcher struct{ id string }

func (f *stubFetcher) GetNativeBalance(context.Context, string) ([]entity.RawBalance, error) {
	return nil, nil
}

func (f *stubFetcher) GetTokenBalances(context.Context, string) ([]entity.RawBalance, error) {
	return nil, nil
}

func TestFetcherRegistry(t *testing.T) {
	registry := NewFetcherRegistry()

	if _, ok := registry.GetFetcher("ethereum", "mainnet"); ok {
		t.Fatal("empty registry should resolve nothing")
	}

	eth := &stubFetcher{id: "eth"}
	registry.Register("Ethereum", "Mainnet", eth)

	got, ok := registry.GetFetcher("ethereum", "mainnet")
	if !ok {
		t.Fatal("lookup should be case-insensitive")
	}
	if got.(*stubFetcher).id != "eth" {
		t.Errorf("resolved the wrong fetcher: %v", got)
	}

	if _, ok := registry.GetFetcher("ethereum", "testnet"); ok {
		t.Error("network is part of the registry key")
	}

	replacement := &stubFetcher{id: "eth-2"}
	registry.Register("ethereum", "mainnet", replacement)
	got, _ = registry.GetFetcher("ethereum", "mainnet")
	if got.(*stubFetcher).id != "eth-2" {
		t.Error("re-registration should replace the fetcher")
	}
}
