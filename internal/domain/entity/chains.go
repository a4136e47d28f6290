package entity

// nativeCoingeckoIDs maps a chain alias to the external price-id of its
// native asset. The ethereum-family L2s all price against ethereum itself.
// Kept as an explicit table so the mapping is independently testable.
var nativeCoingeckoIDs = map[string]string{
	"ethereum":  "ethereum",
	"arbitrum":  "ethereum",
	"optimism":  "ethereum",
	"base":      "ethereum",
	"polygon":   "polygon-ecosystem-token",
	"avalanche": "avalanche-2",
	"bsc":       "binancecoin",
	"solana":    "solana",
	"bitcoin":   "bitcoin",
	"tron":      "tron",
	"xrp":       "ripple",
}

// NativeCoingeckoID resolves the external price-id for a chain's native
// asset. The second return is false for chains without a known mapping.
func NativeCoingeckoID(chainAlias string) (string, bool) {
	id, ok := nativeCoingeckoIDs[chainAlias]
	return id, ok
}

// blockaidChains maps a chain alias to the malicious-token scanner's chain
// identifier. Aliases outside this table are unsupported by the scanner and
// must not be scanned at all.
var blockaidChains = map[string]string{
	"ethereum": "eth",
	"polygon":  "polygon",
	"arbitrum": "arbitrum",
	"optimism": "optimism",
	"base":     "base",
	"bsc":      "bsc",
	// Both the C-chain alias and the bare alias resolve to the scanner's
	// avalanche identifier.
	"avalanche":   "avalanche",
	"avalanche-c": "avalanche",
	"zksync-era":  "zksync-era",
	"linea":       "linea",
	"scroll":      "scroll",
	"blast":       "blast",
	"solana":      "solana",
	"sui":         "sui",
	"stellar":     "stellar",
	"bitcoin":     "bitcoin",
	"hedera":      "hedera",
}

// BlockaidChain resolves the scanner chain identifier for a chain alias.
// The second return is false for unsupported aliases.
func BlockaidChain(chainAlias string) (string, bool) {
	chain, ok := blockaidChains[chainAlias]
	return chain, ok
}
