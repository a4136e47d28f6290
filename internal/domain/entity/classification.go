package entity

import (
	"encoding/json"
	"time"
)

// RiskLevel is the aggregator's tri-state classification outcome before user
// overrides are applied.
type RiskLevel string

const (
	RiskSafe    RiskLevel = "safe"
	RiskWarning RiskLevel = "warning"
	RiskDanger  RiskLevel = "danger"
)

// SpamStatus is the final, override-aware status used for filtering.
type SpamStatus string

const (
	SpamStatusTrusted SpamStatus = "trusted"
	SpamStatusSpam    SpamStatus = "spam"
	SpamStatusUnknown SpamStatus = "unknown"
)

// BlockaidResult is the normalized verdict of a malicious-token scanner for a
// single contract. The raw provider payload and the scan timestamp are always
// preserved alongside the derived fields.
type BlockaidResult struct {
	IsMalicious bool            `json:"isMalicious"`
	IsPhishing  bool            `json:"isPhishing"`
	RiskScore   float64         `json:"riskScore"`
	ResultType  string          `json:"resultType"`
	AttackTypes []string        `json:"attackTypes,omitempty"`
	RawResponse json.RawMessage `json:"rawResponse,omitempty"`
	CheckedAt   string          `json:"checkedAt"`
}

// ListingSignal carries the listing/ranking signal for a token.
type ListingSignal struct {
	IsListed      bool `json:"isListed"`
	MarketCapRank int  `json:"marketCapRank"`
}

// Heuristics are the cheap local signals computed from token metadata.
type Heuristics struct {
	SuspiciousName bool `json:"suspiciousName"`
	HasURLInName   bool `json:"hasUrlInName"`
}

// ClassificationResult is the per-token output of the spam aggregator.
// Blockaid is nil when the token's chain is unsupported by the scanner, the
// scan failed, or the token is native (native assets have no contract to scan).
type ClassificationResult struct {
	Blockaid   *BlockaidResult `json:"blockaid"`
	Coingecko  ListingSignal   `json:"coingecko"`
	Heuristics Heuristics      `json:"heuristics"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// TokenToClassify is one item of a classification batch. Key follows the
// BalanceKey convention. CoingeckoID and MarketCapRank carry the listing
// signal resolved from the token catalog and pricing data.
type TokenToClassify struct {
	Key           string
	ChainAlias    string
	Address       string
	Name          string
	Symbol        string
	IsNative      bool
	CoingeckoID   string
	MarketCapRank int
}

// RiskSummary is the resolved risk verdict with human-readable reasons for
// each signal that fired.
type RiskSummary struct {
	RiskLevel RiskLevel `json:"riskLevel"`
	Reasons   []string  `json:"reasons"`
}

// SpamAnalysis is the classification attached to an enriched balance together
// with the holding's user override and the derived summary.
type SpamAnalysis struct {
	Classification ClassificationResult `json:"classification"`
	UserOverride   SpamOverride         `json:"userOverride,omitempty"`
	Summary        RiskSummary          `json:"summary"`
}
