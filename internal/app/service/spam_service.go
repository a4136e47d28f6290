package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"balance_enricher/internal/app/port"
	"balance_enricher/internal/domain/entity"
	"balance_enricher/internal/pkg/metrics"
)

var (
	urlInNamePattern = regexp.MustCompile(`(?i)(https?://|www\.|\.(com|net|org|io|xyz|fi|app|site|top)\b)`)

	suspiciousNameKeywords = []string{
		"airdrop", "claim", "reward", "bonus", "giveaway", "free", "visit", "redeem", "voucher",
	}
)

// spamServiceImpl implements port.SpamClassifier. It fans out one scanner
// call per distinct non-native token, memoizing verdicts so repeated requests
// for the same contract do not hammer the scanner.
type spamServiceImpl struct {
	scanner       port.MaliciousTokenScanner
	logger        port.Logger
	verdictCache  *gocache.Cache
	maxConcurrent int
}

// NewSpamService creates a new instance of spamServiceImpl. cacheTTL bounds
// how long a scanner verdict is reused before the token is scanned again.
func NewSpamService(scanner port.MaliciousTokenScanner, l port.Logger, cacheTTL time.Duration, maxConcurrent int) port.SpamClassifier {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	return &spamServiceImpl{
		scanner:       scanner,
		logger:        l,
		verdictCache:  gocache.New(cacheTTL, 2*cacheTTL),
		maxConcurrent: maxConcurrent,
	}
}

// ClassifyTokensBatch implements port.SpamClassifier. Scanner calls run
// concurrently; a per-token failure degrades only that token's Blockaid field
// to nil and never fails the batch.
func (s *spamServiceImpl) ClassifyTokensBatch(ctx context.Context, tokens []entity.TokenToClassify) (map[string]entity.ClassificationResult, error) {
	results := make(map[string]entity.ClassificationResult, len(tokens))
	if len(tokens) == 0 {
		return results, nil
	}

	verdicts := make([]*entity.BlockaidResult, len(tokens))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, token := range tokens {
		if token.IsNative || token.Address == "" {
			continue
		}
		providerChain, supported := entity.BlockaidChain(token.ChainAlias)
		if !supported {
			continue
		}
		g.Go(func() error {
			verdicts[i] = s.scanOne(gctx, providerChain, token)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Workers never return errors; per-token failures degrade in place.
		return nil, err
	}

	now := time.Now().UTC()
	for i, token := range tokens {
		results[token.Key] = entity.ClassificationResult{
			Blockaid: verdicts[i],
			Coingecko: entity.ListingSignal{
				IsListed:      token.CoingeckoID != "",
				MarketCapRank: token.MarketCapRank,
			},
			Heuristics: entity.Heuristics{
				SuspiciousName: HasSuspiciousName(token.Name, token.Symbol),
				HasURLInName:   HasURLInName(token.Name),
			},
			UpdatedAt: now,
		}
	}
	return results, nil
}

// scanOne resolves a scanner verdict through the memo cache, falling back to
// nil on failure.
func (s *spamServiceImpl) scanOne(ctx context.Context, providerChain string, token entity.TokenToClassify) *entity.BlockaidResult {
	cacheKey := fmt.Sprintf("%s:%s", providerChain, strings.ToLower(token.Address))
	if cached, ok := s.verdictCache.Get(cacheKey); ok {
		return cached.(*entity.BlockaidResult)
	}

	result, err := s.scanner.ScanToken(ctx, providerChain, token.Address)
	if err != nil {
		metrics.ScannerFailures.Inc()
		s.logger.Warn("Token scan failed, degrading classification for token",
			"chain", token.ChainAlias,
			"provider_chain", providerChain,
			"token_address", token.Address,
			"error", err)
		return nil
	}
	s.verdictCache.Set(cacheKey, result, gocache.DefaultExpiration)
	return result
}

// HasURLInName reports whether a token name embeds a URL, a common lure in
// airdropped spam tokens.
func HasURLInName(name string) bool {
	return urlInNamePattern.MatchString(name)
}

// HasSuspiciousName reports whether the token name or symbol contains
// keywords typical of scam airdrops.
func HasSuspiciousName(name, symbol string) bool {
	haystack := strings.ToLower(name + " " + symbol)
	for _, keyword := range suspiciousNameKeywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

// ComputeRiskSummary resolves the final risk verdict for one token. An
// explicit user override wins outright, even over an outright-malicious scan.
// Without an override: danger on a malicious or phishing scan verdict,
// warning when an unlisted token also trips a name heuristic, safe otherwise.
func ComputeRiskSummary(classification entity.ClassificationResult, userOverride entity.SpamOverride) entity.RiskSummary {
	switch userOverride {
	case entity.OverrideTrusted:
		return entity.RiskSummary{
			RiskLevel: entity.RiskSafe,
			Reasons:   []string{"Marked as trusted by user"},
		}
	case entity.OverrideSpam:
		return entity.RiskSummary{
			RiskLevel: entity.RiskDanger,
			Reasons:   []string{"Marked as spam by user"},
		}
	}

	var reasons []string
	level := entity.RiskSafe

	if b := classification.Blockaid; b != nil {
		if b.IsMalicious {
			level = entity.RiskDanger
			reasons = append(reasons, fmt.Sprintf("Flagged as malicious by token scanner (%s)", b.ResultType))
		}
		if b.IsPhishing {
			level = entity.RiskDanger
			reasons = append(reasons, "Phishing attack types reported by token scanner")
		}
	}

	if level != entity.RiskDanger && !classification.Coingecko.IsListed {
		if classification.Heuristics.HasURLInName {
			level = entity.RiskWarning
			reasons = append(reasons, "Unlisted token with a URL in its name")
		} else if classification.Heuristics.SuspiciousName {
			level = entity.RiskWarning
			reasons = append(reasons, "Unlisted token with a suspicious name")
		}
	}

	return entity.RiskSummary{RiskLevel: level, Reasons: reasons}
}
