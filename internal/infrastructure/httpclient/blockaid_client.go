package httpclient

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"balance_enricher/internal/app/port"
	"balance_enricher/internal/domain/entity"
)

// phishingAttackTypes are the provider attack types that mark a token as
// phishing.
var phishingAttackTypes = map[string]struct{}{
	"impersonator": {},
	"phishing":     {},
}

// tokenScanResponse is the loosely-typed scanner payload. malicious_score has
// been observed as a number, a numeric string, an empty string and absent;
// attack_types as an object keyed by type name.
type tokenScanResponse struct {
	ResultType     string                         `json:"result_type"`
	MaliciousScore interface{}                    `json:"malicious_score"`
	AttackTypes    map[string]jsoniter.RawMessage `json:"attack_types"`
}

// blockaidClientImpl implements port.MaliciousTokenScanner against a
// Blockaid-style token scanning API.
type blockaidClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewBlockaidClient creates a new malicious-token scanner client.
func NewBlockaidClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) port.MaliciousTokenScanner {
	return &blockaidClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger.Named("BlockaidClient"),
	}
}

// ScanToken implements port.MaliciousTokenScanner. The raw provider payload
// and the scan timestamp are preserved on the result; malformed fields are
// coerced to safe defaults rather than raised.
func (c *blockaidClientImpl) ScanToken(ctx context.Context, providerChain, tokenAddress string) (*entity.BlockaidResult, error) {
	requestURL := fmt.Sprintf("%s/v0/token/scan", c.baseURL)

	body, err := json.Marshal(map[string]string{
		"chain":   providerChain,
		"address": tokenAddress,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal token scan request: %w", err)
	}

	c.logger.Debug("Requesting token scan",
		zap.String("chain", providerChain),
		zap.String("address", tokenAddress))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}
	req.SetBody(body)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Error("Failed to execute token scan request", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Error("Failed to execute token scan request (with default timeout)", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("Token scan API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody))
		return nil, fmt.Errorf("token scan request for %s on %s failed with status %d: %s",
			tokenAddress, providerChain, resp.StatusCode(), string(rawBody))
	}

	var scan tokenScanResponse
	if err := json.Unmarshal(rawBody, &scan); err != nil {
		c.logger.Error("Failed to unmarshal token scan response",
			zap.String("url", requestURL),
			zap.ByteString("responseBody", rawBody),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal token scan response: %w", err)
	}

	attackTypes := make([]string, 0, len(scan.AttackTypes))
	for name := range scan.AttackTypes {
		attackTypes = append(attackTypes, name)
	}

	result := &entity.BlockaidResult{
		IsMalicious: strings.EqualFold(scan.ResultType, "malicious") || strings.EqualFold(scan.ResultType, "spam"),
		IsPhishing:  hasPhishingAttackType(attackTypes),
		RiskScore:   coerceRiskScore(scan.MaliciousScore),
		ResultType:  scan.ResultType,
		AttackTypes: attackTypes,
		RawResponse: append([]byte(nil), rawBody...),
		CheckedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	return result, nil
}

// hasPhishingAttackType reports whether any reported attack type marks the
// token as an impersonation/phishing asset.
func hasPhishingAttackType(attackTypes []string) bool {
	for _, at := range attackTypes {
		if _, ok := phishingAttackTypes[strings.ToLower(at)]; ok {
			return true
		}
	}
	return false
}

// coerceRiskScore defensively parses the provider's risk score. Undefined,
// null, empty and non-numeric input all coerce to 0, never NaN.
func coerceRiskScore(v interface{}) float64 {
	switch score := v.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return 0
		}
		return score
	case string:
		if score == "" {
			return 0
		}
		// ParseFloat accepts "NaN" and "Inf"; those must coerce too.
		parsed, err := strconv.ParseFloat(score, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
