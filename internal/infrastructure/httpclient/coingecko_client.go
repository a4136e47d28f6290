package httpclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"balance_enricher/internal/app/port"
	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxIDsPerMarketsRequest is the documented page cap of /coins/markets.
const maxIDsPerMarketsRequest = 250

// coinMarketData is one element of a /coins/markets response.
type coinMarketData struct {
	ID                       string   `json:"id"`
	CurrentPrice             *float64 `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	MarketCap                *float64 `json:"market_cap"`
	MarketCapRank            *int     `json:"market_cap_rank"`
}

// coinGeckoClientImpl implements port.PriceOracle against the CoinGecko API.
type coinGeckoClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewCoinGeckoClient creates a new CoinGecko price oracle client. The limiter
// throttles outbound calls; the public API rejects bursts.
func NewCoinGeckoClient(baseURL, apiKey string, timeout time.Duration, requestsPerMinute int, logger *zap.Logger) port.PriceOracle {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	return &coinGeckoClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		logger:  logger.Named("CoinGeckoClient"),
	}
}

// GetMarketData implements port.PriceOracle. Ids beyond the per-page cap are
// fetched in further pages of the same logical call; ids absent from the
// response are simply missing from the result.
func (c *coinGeckoClientImpl) GetMarketData(ctx context.Context, ids []string, currency string) (map[string]entity.MarketData, error) {
	if len(ids) == 0 {
		return map[string]entity.MarketData{}, nil
	}

	result := make(map[string]entity.MarketData, len(ids))
	for _, batch := range utils.BatchStrings(ids, maxIDsPerMarketsRequest) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}
		if err := c.fetchMarketsPage(ctx, batch, currency, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (c *coinGeckoClientImpl) fetchMarketsPage(ctx context.Context, ids []string, currency string, out map[string]entity.MarketData) error {
	requestURL := fmt.Sprintf("%s/coins/markets?vs_currency=%s&ids=%s&price_change_percentage=24h&per_page=%d",
		c.baseURL, currency, strings.Join(ids, ","), maxIDsPerMarketsRequest)

	c.logger.Debug("Requesting market data from CoinGecko",
		zap.Int("idCount", len(ids)),
		zap.String("currency", currency))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-cg-pro-api-key", c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute request to CoinGecko", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute request to CoinGecko (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("CoinGecko API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody))
		return fmt.Errorf("CoinGecko API request failed with status %d: %s", resp.StatusCode(), string(rawBody))
	}

	var coins []coinMarketData
	if err := json.Unmarshal(rawBody, &coins); err != nil {
		c.logger.Error("Failed to unmarshal CoinGecko markets response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return fmt.Errorf("failed to unmarshal CoinGecko markets response: %w", err)
	}

	for _, coin := range coins {
		if coin.ID == "" || coin.CurrentPrice == nil {
			c.logger.Warn("Skipping CoinGecko market entry without id or price", zap.String("id", coin.ID))
			continue
		}
		md := entity.MarketData{Price: *coin.CurrentPrice}
		if coin.PriceChangePercentage24h != nil {
			md.PriceChange24h = *coin.PriceChangePercentage24h
		}
		if coin.MarketCap != nil {
			md.MarketCap = *coin.MarketCap
		}
		if coin.MarketCapRank != nil {
			md.MarketCapRank = *coin.MarketCapRank
		}
		out[coin.ID] = md
	}
	return nil
}
