package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"balance_enricher/internal/domain/entity"
)

func TestPriceStore_FreshnessWindow(t *testing.T) {
	store := NewPriceStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.UpsertBatch(ctx, []entity.TokenPrice{
		{CoingeckoID: "ethereum", Currency: "usd", Price: 3000, FetchedAt: now},
		{CoingeckoID: "solana", Currency: "usd", Price: 150, FetchedAt: now.Add(-5 * time.Minute)},
	}))

	fresh, err := store.GetFresh(ctx, []string{"ethereum", "solana"}, "usd", time.Minute)
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Equal(t, "ethereum", fresh[0].CoingeckoID)

	anyAge, err := store.GetByIDs(ctx, []string{"ethereum", "solana"}, "usd")
	require.NoError(t, err)
	assert.Len(t, anyAge, 2)
}

func TestPriceStore_CurrencyIsPartOfTheKey(t *testing.T) {
	store := NewPriceStore()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, store.UpsertBatch(ctx, []entity.TokenPrice{
		{CoingeckoID: "ethereum", Currency: "usd", Price: 3000, FetchedAt: now},
		{CoingeckoID: "ethereum", Currency: "eur", Price: 2800, FetchedAt: now},
	}))

	usd, err := store.GetByIDs(ctx, []string{"ethereum"}, "usd")
	require.NoError(t, err)
	require.Len(t, usd, 1)
	assert.Equal(t, float64(3000), usd[0].Price)

	eur, err := store.GetByIDs(ctx, []string{"ethereum"}, "eur")
	require.NoError(t, err)
	require.Len(t, eur, 1)
	assert.Equal(t, float64(2800), eur[0].Price)
}

func TestPriceStore_UpsertOverwrites(t *testing.T) {
	store := NewPriceStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertBatch(ctx, []entity.TokenPrice{
		{CoingeckoID: "ethereum", Currency: "usd", Price: 3000, FetchedAt: time.Now().UTC().Add(-time.Hour)},
	}))
	require.NoError(t, store.UpsertBatch(ctx, []entity.TokenPrice{
		{CoingeckoID: "ethereum", Currency: "usd", Price: 3100, FetchedAt: time.Now().UTC()},
	}))

	rows, err := store.GetByIDs(ctx, []string{"ethereum"}, "usd")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(3100), rows[0].Price)
}
