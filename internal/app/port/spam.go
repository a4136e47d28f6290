package port

import (
	"context"

	"balance_enricher/internal/domain/entity"
)

// SpamClassifier defines the interface of the spam classification aggregator.
type SpamClassifier interface {
	// ClassifyTokensBatch classifies all tokens in one call. Keys are the
	// lowercase token address, or "native" for the native asset. A per-token
	// scanner failure degrades that token's result, never the batch.
	ClassifyTokensBatch(ctx context.Context, tokens []entity.TokenToClassify) (map[string]entity.ClassificationResult, error)
}

// MaliciousTokenScanner defines the interface of the external single-token
// scanner (a Blockaid-style service). providerChain is the scanner's own
// chain identifier, already translated from the chain alias.
type MaliciousTokenScanner interface {
	ScanToken(ctx context.Context, providerChain, tokenAddress string) (*entity.BlockaidResult, error)
}
