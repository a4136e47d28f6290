package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"balance_enricher/internal/app/port"
	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/pkg/metrics"
	"balance_enricher/internal/pkg/utils"
	"balance_enricher/internal/storage"
)

const defaultCurrency = "usd"

// balanceServiceImpl implements port.BalanceService: the orchestrator that
// turns raw on-chain balances into a priced, spam-annotated, sorted view.
type balanceServiceImpl struct {
	addressStore storage.AddressStore
	tokenStore   storage.TokenStore
	holdingStore storage.HoldingStore
	prices       port.PriceService
	classifier   port.SpamClassifier
	fetchers     port.BalanceFetcherFactory
	logger       port.Logger
	currency     string
	network      string
}

// NewBalanceService creates a new instance of balanceServiceImpl. classifier
// may be nil, in which case no spam analysis is attached and no balance is
// ever filtered for spam.
func NewBalanceService(
	addressStore storage.AddressStore,
	tokenStore storage.TokenStore,
	holdingStore storage.HoldingStore,
	prices port.PriceService,
	classifier port.SpamClassifier,
	fetchers port.BalanceFetcherFactory,
	l port.Logger,
	currency string,
	network string,
) port.BalanceService {
	if currency == "" {
		currency = defaultCurrency
	}
	if network == "" {
		network = "mainnet"
	}
	return &balanceServiceImpl{
		addressStore: addressStore,
		tokenStore:   tokenStore,
		holdingStore: holdingStore,
		prices:       prices,
		classifier:   classifier,
		fetchers:     fetchers,
		logger:       l,
		currency:     currency,
		network:      network,
	}
}

// GetBalances implements port.BalanceService.
func (s *balanceServiceImpl) GetBalances(ctx context.Context, addressID string, opts entity.TokenBalanceOptions) ([]entity.EnrichedBalance, error) {
	start := time.Now()
	address, err := s.addressStore.GetByID(ctx, addressID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = entity.NewAddressNotFoundError(addressID)
		}
		s.observe(start, err)
		return nil, err
	}
	balances, err := s.enrich(ctx, address, opts)
	s.observe(start, err)
	return balances, err
}

// GetBalancesByChainAndAddress implements port.BalanceService.
func (s *balanceServiceImpl) GetBalancesByChainAndAddress(ctx context.Context, chainAlias, walletAddress string, opts entity.TokenBalanceOptions) ([]entity.EnrichedBalance, error) {
	start := time.Now()
	address, err := s.addressStore.GetByChainAndAddress(ctx, chainAlias, walletAddress)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err = entity.NewWalletNotFoundError(walletAddress, chainAlias)
		}
		s.observe(start, err)
		return nil, err
	}
	balances, err := s.enrich(ctx, address, opts)
	s.observe(start, err)
	return balances, err
}

// enrich runs the full pipeline for one resolved address: live fetch with
// cached fallback, cache refresh, catalog merge, pricing, spam analysis,
// filtering and sorting. Inputs are never mutated; a new slice is returned.
func (s *balanceServiceImpl) enrich(ctx context.Context, address *entity.Address, opts entity.TokenBalanceOptions) ([]entity.EnrichedBalance, error) {
	fetcher, ok := s.fetchers.GetFetcher(address.ChainAlias, s.network)
	if !ok {
		return nil, entity.NewNoFetcherError(address.ChainAlias)
	}

	// Always read the full holdings set: a user override on a hidden holding
	// still applies to its live-fetched balance. Visibility only narrows the
	// snapshot served as fallback.
	cached, err := s.holdingStore.GetByAddressID(ctx, address.ID, true)
	if err != nil {
		s.logger.Warn("Failed to read cached holdings, continuing without fallback data",
			"address_id", address.ID, "chain", address.ChainAlias, "error", err)
		cached = nil
	}
	cachedByKey := make(map[string]entity.TokenHolding, len(cached))
	for _, h := range cached {
		cachedByKey[h.Key()] = h
	}
	snapshot := cached
	if !opts.IncludeHidden {
		snapshot = make([]entity.TokenHolding, 0, len(cached))
		for _, h := range cached {
			if h.Visible {
				snapshot = append(snapshot, h)
			}
		}
	}

	catalog, err := s.tokenStore.GetVerifiedByChain(ctx, address.ChainAlias)
	if err != nil {
		s.logger.Warn("Failed to load verified token catalog, continuing without catalog metadata",
			"chain", address.ChainAlias, "error", err)
		catalog = nil
	}
	catalogByAddress := make(map[string]entity.Token, len(catalog))
	for _, t := range catalog {
		catalogByAddress[strings.ToLower(t.Address)] = t
	}

	raw, err := s.fetchLive(ctx, fetcher, address, snapshot)
	if err != nil {
		return nil, err
	}

	currency := opts.Currency
	if currency == "" {
		currency = s.currency
	}

	balances := s.buildBalances(address.ChainAlias, raw, catalogByAddress)
	s.attachPrices(ctx, address.ChainAlias, balances, currency)
	s.attachSpamAnalysis(ctx, address.ChainAlias, balances, cachedByKey)

	balances = utils.FilterSpamBalances(balances, opts.ShowSpam)

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = entity.SortByUSDValue
	}
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = entity.SortDesc
	}
	return utils.SortBalances(balances, sortBy, sortOrder), nil
}

// fetchLive fetches native plus token balances and refreshes the holdings
// cache. On fetch failure with non-empty cached holdings it degrades to the
// cached snapshot; with an empty cache the original error propagates.
func (s *balanceServiceImpl) fetchLive(ctx context.Context, fetcher port.BalanceFetcher, address *entity.Address, cached []entity.TokenHolding) ([]entity.RawBalance, error) {
	var raw []entity.RawBalance
	native, fetchErr := fetcher.GetNativeBalance(ctx, address.WalletAddress)
	if fetchErr == nil {
		raw = append(raw, native...)
		var tokens []entity.RawBalance
		tokens, fetchErr = fetcher.GetTokenBalances(ctx, address.WalletAddress)
		if fetchErr == nil {
			raw = append(raw, tokens...)
		}
	}

	if fetchErr != nil {
		if len(cached) == 0 {
			s.logger.Error("Live balance fetch failed and no cached holdings exist",
				"address_id", address.ID,
				"wallet_address", address.WalletAddress,
				"chain", address.ChainAlias,
				"error", fetchErr)
			return nil, fetchErr
		}
		metrics.FetchFallbacks.Inc()
		s.logger.Warn("Live balance fetch failed, serving cached holdings",
			"address_id", address.ID,
			"wallet_address", address.WalletAddress,
			"chain", address.ChainAlias,
			"cached_count", len(cached),
			"error", fetchErr)
		raw = make([]entity.RawBalance, 0, len(cached))
		for _, h := range cached {
			raw = append(raw, h.ToRawBalance(address.WalletAddress))
		}
		s.refreshHoldings(ctx, address, raw)
		return raw, nil
	}

	s.detectMismatches(address, raw, cached)
	s.refreshHoldings(ctx, address, raw)
	return raw, nil
}

// detectMismatches logs a warning for every asset present in both the cached
// snapshot and the fresh fetch with a differing balance. Observability only.
func (s *balanceServiceImpl) detectMismatches(address *entity.Address, fetched []entity.RawBalance, cached []entity.TokenHolding) {
	cachedByKey := make(map[string]entity.TokenHolding, len(cached))
	for _, h := range cached {
		cachedByKey[h.Key()] = h
	}
	for _, rb := range fetched {
		prev, ok := cachedByKey[rb.Key()]
		if !ok || prev.Balance == rb.Balance {
			continue
		}
		s.logger.Warn("Balance mismatch detected",
			"address_id", address.ID,
			"token_address", rb.Key(),
			"cached", prev.Balance,
			"fetched", rb.Balance,
			"chain", address.ChainAlias)
	}
}

// refreshHoldings upserts every non-zero balance. Zero balances are never
// cached. A cache write failure is logged but does not fail the request:
// cached data is a hint re-validated on the next successful fetch.
func (s *balanceServiceImpl) refreshHoldings(ctx context.Context, address *entity.Address, raw []entity.RawBalance) {
	holdings := make([]entity.TokenHolding, 0, len(raw))
	for _, rb := range raw {
		if utils.IsZeroBaseUnits(rb.Balance) {
			continue
		}
		holdings = append(holdings, entity.HoldingFromRawBalance(address.ID, address.ChainAlias, rb))
	}
	if len(holdings) == 0 {
		return
	}
	if err := s.holdingStore.UpsertBatch(ctx, holdings); err != nil {
		s.logger.Warn("Failed to refresh holdings cache",
			"address_id", address.ID, "chain", address.ChainAlias, "count", len(holdings), "error", err)
	}
}

// buildBalances converts raw balances to enriched rows, dropping zero
// balances and merging catalog metadata. Catalog logo and price-id take
// precedence over fetcher-supplied values; name and symbol stay as fetched.
func (s *balanceServiceImpl) buildBalances(chainAlias string, raw []entity.RawBalance, catalogByAddress map[string]entity.Token) []entity.EnrichedBalance {
	balances := make([]entity.EnrichedBalance, 0, len(raw))
	for _, rb := range raw {
		if utils.IsZeroBaseUnits(rb.Balance) {
			continue
		}
		var tokenAddress *string
		if !rb.IsNative && rb.TokenAddress != nil {
			addr := *rb.TokenAddress
			tokenAddress = &addr
		}
		b := entity.EnrichedBalance{
			TokenAddress: tokenAddress,
			IsNative:     rb.IsNative,
			Name:         rb.Name,
			Symbol:       rb.Symbol,
			Decimals:     rb.Decimals,
			Balance:      rb.Balance,
		}
		if tokenAddress != nil {
			if t, ok := catalogByAddress[strings.ToLower(*tokenAddress)]; ok {
				b.LogoURL = t.LogoURL
				b.CoingeckoID = t.CoingeckoID
			}
		}
		formatted, err := utils.FormatBaseUnits(rb.Balance, rb.Decimals)
		if err != nil {
			s.logger.Warn("Failed to format balance", "chain", chainAlias, "token_address", rb.Key(), "balance", rb.Balance, "error", err)
			formatted = rb.Balance
		}
		b.FormattedBalance = formatted
		balances = append(balances, b)
	}
	return balances
}

// priceID resolves the external price-id for one balance: the static native
// table for the native asset, the catalog-supplied id otherwise.
func (s *balanceServiceImpl) priceID(chainAlias string, b entity.EnrichedBalance) string {
	if b.IsNative {
		id, ok := entity.NativeCoingeckoID(chainAlias)
		if !ok {
			return ""
		}
		return id
	}
	return b.CoingeckoID
}

// attachPrices resolves quotes with one deduplicated price-cache call and
// fills the price fields in place. A balance with no resolvable quote keeps
// nil price fields and is marked stale.
func (s *balanceServiceImpl) attachPrices(ctx context.Context, chainAlias string, balances []entity.EnrichedBalance, currency string) {
	ids := make([]string, 0, len(balances))
	for _, b := range balances {
		if id := s.priceID(chainAlias, b); id != "" {
			ids = append(ids, id)
		}
	}

	quotes := make(map[string]entity.PriceQuote)
	if len(ids) > 0 {
		var err error
		quotes, err = s.prices.GetPrices(ctx, ids, currency)
		if err != nil {
			s.logger.Warn("Price resolution failed, serving balances unpriced",
				"chain", chainAlias, "currency", currency, "ids_count", len(ids), "error", err)
			quotes = make(map[string]entity.PriceQuote)
		}
	}

	for i := range balances {
		b := &balances[i]
		quote, ok := quotes[s.priceID(chainAlias, *b)]
		if !ok {
			b.IsPriceStale = true
			continue
		}
		price := quote.Price
		change := quote.PriceChange24h
		b.USDPrice = &price
		b.PriceChange24h = &change
		b.IsPriceStale = quote.IsStale
		if amount, err := strconv.ParseFloat(b.FormattedBalance, 64); err == nil {
			value := amount * price
			b.USDValue = &value
		}
	}
}

// attachSpamAnalysis classifies all balances in one batch call and attaches
// the per-token analysis. With no classifier configured, or no result for a
// token, the balance keeps a nil SpamAnalysis.
func (s *balanceServiceImpl) attachSpamAnalysis(ctx context.Context, chainAlias string, balances []entity.EnrichedBalance, cachedByKey map[string]entity.TokenHolding) {
	if s.classifier == nil || len(balances) == 0 {
		return
	}

	toClassify := make([]entity.TokenToClassify, 0, len(balances))
	for _, b := range balances {
		var tokenAddress string
		if b.TokenAddress != nil {
			tokenAddress = *b.TokenAddress
		}
		toClassify = append(toClassify, entity.TokenToClassify{
			Key:         b.Key(),
			ChainAlias:  chainAlias,
			Address:     tokenAddress,
			Name:        b.Name,
			Symbol:      b.Symbol,
			IsNative:    b.IsNative,
			CoingeckoID: s.priceID(chainAlias, b),
		})
	}

	results, err := s.classifier.ClassifyTokensBatch(ctx, toClassify)
	if err != nil {
		s.logger.Warn("Spam classification failed, serving balances unclassified",
			"chain", chainAlias, "tokens", len(toClassify), "error", err)
		return
	}

	for i := range balances {
		b := &balances[i]
		result, ok := results[b.Key()]
		if !ok {
			continue
		}
		override := cachedByKey[b.Key()].UserOverride
		b.SpamAnalysis = &entity.SpamAnalysis{
			Classification: result,
			UserOverride:   override,
			Summary:        ComputeRiskSummary(result, override),
		}
	}
}

// observe records the request outcome and latency.
func (s *balanceServiceImpl) observe(start time.Time, err error) {
	metrics.RequestDuration.Observe(time.Since(start).Seconds())

	outcome := "success"
	var notFound *entity.NotFoundError
	var internal *entity.InternalServerError
	switch {
	case err == nil:
	case errors.As(err, &notFound):
		outcome = "not_found"
	case errors.As(err, &internal):
		outcome = "internal_error"
	default:
		outcome = "error"
	}
	metrics.BalanceRequests.WithLabelValues(outcome).Inc()
}
