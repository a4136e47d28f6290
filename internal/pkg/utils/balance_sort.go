package utils

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"balance_enricher/internal/domain/entity"
)

// EffectiveSpamStatus resolves the final, override-aware spam status of a
// balance. A balance without a spam analysis is always unknown; an explicit
// user override wins outright; otherwise only a danger-level summary counts
// as spam.
func EffectiveSpamStatus(b entity.EnrichedBalance) entity.SpamStatus {
	if b.SpamAnalysis == nil {
		return entity.SpamStatusUnknown
	}
	switch b.SpamAnalysis.UserOverride {
	case entity.OverrideTrusted:
		return entity.SpamStatusTrusted
	case entity.OverrideSpam:
		return entity.SpamStatusSpam
	}
	if b.SpamAnalysis.Summary.RiskLevel == entity.RiskDanger {
		return entity.SpamStatusSpam
	}
	return entity.SpamStatusUnknown
}

// FilterSpamBalances drops balances whose effective status is spam. With
// showSpam=true the input is returned unchanged. Unknown and trusted
// balances are always kept.
func FilterSpamBalances(balances []entity.EnrichedBalance, showSpam bool) []entity.EnrichedBalance {
	if showSpam {
		return balances
	}
	kept := make([]entity.EnrichedBalance, 0, len(balances))
	for _, b := range balances {
		if EffectiveSpamStatus(b) != entity.SpamStatusSpam {
			kept = append(kept, b)
		}
	}
	return kept
}

// SortBalances returns a new sorted slice; the input is never mutated.
// Balances compare as arbitrary-precision integers, symbols compare
// case-insensitively, and a nil USDValue sorts last regardless of order.
func SortBalances(balances []entity.EnrichedBalance, sortBy entity.SortKey, sortOrder entity.SortOrder) []entity.EnrichedBalance {
	sorted := make([]entity.EnrichedBalance, len(balances))
	copy(sorted, balances)

	desc := sortOrder == entity.SortDesc

	switch sortBy {
	case entity.SortByBalance:
		sort.SliceStable(sorted, func(i, j int) bool {
			cmp := CompareBaseUnits(sorted[i].Balance, sorted[j].Balance)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case entity.SortBySymbol:
		// Collation handles case folding beyond ASCII; a fresh collator per
		// call since Collator is not safe for concurrent use.
		coll := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(sorted, func(i, j int) bool {
			cmp := coll.CompareString(sorted[i].Symbol, sorted[j].Symbol)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	default: // usdValue
		sort.SliceStable(sorted, func(i, j int) bool {
			vi, vj := sorted[i].USDValue, sorted[j].USDValue
			if vi == nil {
				return false
			}
			if vj == nil {
				return true
			}
			if desc {
				return *vi > *vj
			}
			return *vi < *vj
		})
	}
	return sorted
}
