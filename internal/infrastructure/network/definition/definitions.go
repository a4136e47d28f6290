package networkdefinition

import "strings"

// ChainDefinition holds the static description of one supported chain: what
// the EVM fetcher needs to dial it and describe its native asset.
type ChainDefinition struct {
	ChainID          uint64
	Name             string
	ChainAlias       string
	Network          string
	NativeName       string
	NativeSymbol     string
	NativeDecimals   uint8
	PrimaryRPCURL    string
	FallbackRPCURLs  []string
	BlockExplorerURL string
}

// Predefined chain definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = ChainDefinition{
		ChainID:          1,
		Name:             "Ethereum Mainnet",
		ChainAlias:       "ethereum",
		Network:          "mainnet",
		NativeName:       "Ether",
		NativeSymbol:     "ETH",
		NativeDecimals:   18,
		PrimaryRPCURL:    "https://ethereum-rpc.publicnode.com",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"},
		BlockExplorerURL: "https://etherscan.io",
	}
	Arbitrum = ChainDefinition{
		ChainID:          42161,
		Name:             "Arbitrum One",
		ChainAlias:       "arbitrum",
		Network:          "mainnet",
		NativeName:       "Ether",
		NativeSymbol:     "ETH",
		NativeDecimals:   18,
		PrimaryRPCURL:    "https://arb1.arbitrum.io/rpc",
		FallbackRPCURLs:  []string{"https://arbitrum.llamarpc.com", "https://arbitrum.publicnode.com"},
		BlockExplorerURL: "https://arbiscan.io",
	}
	Optimism = ChainDefinition{
		ChainID:          10,
		Name:             "OP Mainnet",
		ChainAlias:       "optimism",
		Network:          "mainnet",
		NativeName:       "Ether",
		NativeSymbol:     "ETH",
		NativeDecimals:   18,
		PrimaryRPCURL:    "https://mainnet.optimism.io",
		FallbackRPCURLs:  []string{"https://optimism.publicnode.com"},
		BlockExplorerURL: "https://optimistic.etherscan.io",
	}
	Base = ChainDefinition{
		ChainID:          8453,
		Name:             "Base",
		ChainAlias:       "base",
		Network:          "mainnet",
		NativeName:       "Ether",
		NativeSymbol:     "ETH",
		NativeDecimals:   18,
		PrimaryRPCURL:    "https://mainnet.base.org",
		FallbackRPCURLs:  []string{"https://base.publicnode.com"},
		BlockExplorerURL: "https://basescan.org",
	}
	Polygon = ChainDefinition{
		ChainID:          137,
		Name:             "Polygon PoS",
		ChainAlias:       "polygon",
		Network:          "mainnet",
		NativeName:       "Polygon Ecosystem Token",
		NativeSymbol:     "POL",
		NativeDecimals:   18,
		PrimaryRPCURL:    "https://polygon-rpc.com/",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/polygon", "https://polygon.publicnode.com"},
		BlockExplorerURL: "https://polygonscan.com",
	}
	BSC = ChainDefinition{
		ChainID:          56,
		Name:             "BNB Smart Chain",
		ChainAlias:       "bsc",
		Network:          "mainnet",
		NativeName:       "BNB",
		NativeSymbol:     "BNB",
		NativeDecimals:   18,
		PrimaryRPCURL:    "https://1rpc.io/bnb",
		FallbackRPCURLs:  []string{"https://bsc-dataseed2.binance.org/", "https://bsc.publicnode.com"},
		BlockExplorerURL: "https://bscscan.com",
	}
	Avalanche = ChainDefinition{
		ChainID:          43114,
		Name:             "Avalanche C-Chain",
		ChainAlias:       "avalanche",
		Network:          "mainnet",
		NativeName:       "Avalanche",
		NativeSymbol:     "AVAX",
		NativeDecimals:   18,
		PrimaryRPCURL:    "https://api.avax.network/ext/bc/C/rpc",
		FallbackRPCURLs:  []string{"https://avalanche.public-rpc.com", "https://rpc.ankr.com/avalanche"},
		BlockExplorerURL: "https://snowtrace.io",
	}
)

// All returns every predefined EVM chain definition.
func All() []ChainDefinition {
	return []ChainDefinition{Ethereum, Arbitrum, Optimism, Base, Polygon, BSC, Avalanche}
}

// ByAlias finds a chain definition by its alias, case-insensitively.
func ByAlias(chainAlias string) (ChainDefinition, bool) {
	for _, def := range All() {
		if strings.EqualFold(def.ChainAlias, chainAlias) {
			return def, true
		}
	}
	return ChainDefinition{}, false
}
