package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"balance_enricher/internal/domain/entity"
)

func TestPriceService_EmptyInput(t *testing.T) {
	store := &fakePriceStore{}
	oracle := &fakeOracle{}
	svc := NewPriceService(store, oracle, nopLogger{}, time.Minute)

	quotes, err := svc.GetPrices(context.Background(), nil, "usd")
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	if len(quotes) != 0 {
		t.Errorf("expected empty map, got %d quotes", len(quotes))
	}
	if len(oracle.calls) != 0 {
		t.Error("empty input must not reach the oracle")
	}
}

func TestPriceService_FreshCacheHitSkipsOracle(t *testing.T) {
	store := &fakePriceStore{
		fresh: []entity.TokenPrice{
			{CoingeckoID: "ethereum", Currency: "usd", Price: 3000, PriceChange24h: 1.5, FetchedAt: time.Now().UTC()},
		},
	}
	oracle := &fakeOracle{}
	svc := NewPriceService(store, oracle, nopLogger{}, time.Minute)

	quotes, err := svc.GetPrices(context.Background(), []string{"ethereum", "ethereum"}, "usd")
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	if len(oracle.calls) != 0 {
		t.Error("fully fresh cache must not reach the oracle")
	}
	q, ok := quotes["ethereum"]
	if !ok {
		t.Fatal("missing quote for ethereum")
	}
	if q.Price != 3000 || q.IsStale {
		t.Errorf("quote = %+v, want fresh price 3000", q)
	}
}

func TestPriceService_MissingIDsFetchedInOneBatchAndPersisted(t *testing.T) {
	store := &fakePriceStore{
		fresh: []entity.TokenPrice{
			{CoingeckoID: "ethereum", Currency: "usd", Price: 3000, FetchedAt: time.Now().UTC()},
		},
	}
	oracle := &fakeOracle{
		data: map[string]entity.MarketData{
			"solana":      {Price: 150, PriceChange24h: -2, MarketCap: 7e10},
			"binancecoin": {Price: 600},
		},
	}
	svc := NewPriceService(store, oracle, nopLogger{}, time.Minute)

	quotes, err := svc.GetPrices(context.Background(), []string{"ethereum", "solana", "binancecoin"}, "usd")
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	if len(oracle.calls) != 1 {
		t.Fatalf("expected one batched oracle call, got %d", len(oracle.calls))
	}
	if len(oracle.calls[0]) != 2 {
		t.Errorf("oracle call should only cover the 2 missing ids, got %v", oracle.calls[0])
	}
	if len(quotes) != 3 {
		t.Errorf("expected 3 quotes, got %d", len(quotes))
	}
	if quotes["solana"].Price != 150 || quotes["solana"].IsStale {
		t.Errorf("solana quote = %+v", quotes["solana"])
	}
	if len(store.upserted) != 1 || len(store.upserted[0]) != 2 {
		t.Errorf("expected one upsert of 2 rows, got %+v", store.upserted)
	}
}

func TestPriceService_IDsUnknownToOracleAreOmitted(t *testing.T) {
	store := &fakePriceStore{}
	oracle := &fakeOracle{data: map[string]entity.MarketData{"ethereum": {Price: 3000}}}
	svc := NewPriceService(store, oracle, nopLogger{}, time.Minute)

	quotes, err := svc.GetPrices(context.Background(), []string{"ethereum", "no-such-token"}, "usd")
	if err != nil {
		t.Fatalf("GetPrices: %v", err)
	}
	if _, ok := quotes["no-such-token"]; ok {
		t.Error("ids absent from the oracle response must be omitted, not errored")
	}
	if len(quotes) != 1 {
		t.Errorf("expected 1 quote, got %d", len(quotes))
	}
}

func TestPriceService_OracleFailureFallsBackToStaleCache(t *testing.T) {
	store := &fakePriceStore{
		anyAge: []entity.TokenPrice{
			{CoingeckoID: "ethereum", Currency: "usd", Price: 2900, FetchedAt: time.Now().Add(-time.Hour)},
		},
	}
	oracle := &fakeOracle{err: errors.New("oracle down")}
	svc := NewPriceService(store, oracle, nopLogger{}, time.Minute)

	quotes, err := svc.GetPrices(context.Background(), []string{"ethereum", "solana"}, "usd")
	if err != nil {
		t.Fatalf("oracle failure must never surface, got: %v", err)
	}
	q, ok := quotes["ethereum"]
	if !ok {
		t.Fatal("expected a stale quote for ethereum")
	}
	if !q.IsStale || q.Price != 2900 {
		t.Errorf("quote = %+v, want stale price 2900", q)
	}
	if _, ok := quotes["solana"]; ok {
		t.Error("ids with no cached row must be omitted on oracle failure")
	}
	if len(store.upserted) != 0 {
		t.Error("nothing should be persisted on oracle failure")
	}
}
