package seedloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"balance_enricher/internal/app/port"
	"balance_enricher/internal/domain/entity"
)

const (
	defaultAddressFilePath    = "data/addresses.json"
	defaultTokenDirectoryPath = "data/tokens"
)

// SeedLoader reads the tracked addresses and the verified token catalog from
// JSON files on disk. It backs the in-memory store mode; when running against
// postgres this data lives in the database instead.
type SeedLoader struct {
	addressFilePath string
	tokenDirPath    string
	logger          port.Logger
}

// NewSeedLoader creates a new SeedLoader reading from the default data paths.
func NewSeedLoader(l port.Logger) *SeedLoader {
	return &SeedLoader{
		addressFilePath: defaultAddressFilePath,
		tokenDirPath:    defaultTokenDirectoryPath,
		logger:          l,
	}
}

// LoadAddresses reads the tracked address list. Entries missing an id, chain
// alias or wallet address are skipped with a log, never a failure.
func (l *SeedLoader) LoadAddresses() ([]entity.Address, error) {
	data, err := os.ReadFile(l.addressFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read address file %s: %w", l.addressFilePath, err)
	}

	var entries []entity.Address
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal addresses from %s: %w", l.addressFilePath, err)
	}

	addresses := make([]entity.Address, 0, len(entries))
	for _, a := range entries {
		if a.ID == "" || a.ChainAlias == "" || a.WalletAddress == "" {
			l.logger.Warn("Skipping incomplete address entry",
				"file", l.addressFilePath, "id", a.ID, "chain", a.ChainAlias, "wallet_address", a.WalletAddress)
			continue
		}
		addresses = append(addresses, a)
	}

	l.logger.Info("Addresses loaded from file", "count", len(addresses), "path", l.addressFilePath)
	return addresses, nil
}

// LoadTokens scans the token directory and reads one JSON catalog file per
// chain, keyed by the file name (e.g. ethereum.json). Tokens whose chain
// alias does not match their file are skipped; unreadable or malformed files
// are skipped whole. A missing directory yields an empty catalog.
func (l *SeedLoader) LoadTokens() (map[string][]entity.Token, error) {
	tokensByChain := make(map[string][]entity.Token)

	files, err := os.ReadDir(l.tokenDirPath)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Info("Token directory does not exist, starting with an empty catalog", "path", l.tokenDirPath)
			return tokensByChain, nil
		}
		return nil, fmt.Errorf("failed to read token directory %s: %w", l.tokenDirPath, err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".json") {
			continue
		}
		chainAlias := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))

		filePath := filepath.Join(l.tokenDirPath, file.Name())
		data, err := os.ReadFile(filePath)
		if err != nil {
			l.logger.Warn("Failed to read token file, skipping file", "path", filePath, "error", err)
			continue
		}

		var tokensInFile []entity.Token
		if err := json.Unmarshal(data, &tokensInFile); err != nil {
			l.logger.Warn("Failed to unmarshal tokens from file, skipping file", "path", filePath, "error", err)
			continue
		}

		valid := make([]entity.Token, 0, len(tokensInFile))
		for _, token := range tokensInFile {
			if token.ChainAlias != "" && token.ChainAlias != chainAlias {
				l.logger.Warn("Token has mismatched chain alias in file, skipping token",
					"file", filePath, "token_symbol", token.Symbol, "token_address", token.Address,
					"token_chain", token.ChainAlias, "expected_chain", chainAlias)
				continue
			}
			token.ChainAlias = chainAlias
			valid = append(valid, token)
		}

		if len(valid) > 0 {
			tokensByChain[chainAlias] = append(tokensByChain[chainAlias], valid...)
			l.logger.Info("Loaded token catalog for chain from file",
				"chain", chainAlias, "file", file.Name(), "count", len(valid))
		}
	}

	return tokensByChain, nil
}
