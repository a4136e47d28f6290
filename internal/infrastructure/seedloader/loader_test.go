package seedloader

import (
	"os"
	"path/filepath"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadAddresses_SkipsIncompleteEntries(t *testing.T) {
	dir := t.TempDir()
	addressFile := filepath.Join(dir, "addresses.json")
	writeFile(t, addressFile, `[
		{"id": "addr-1", "chainAlias": "ethereum", "walletAddress": "0xabc", "ecosystem": "evm"},
		{"id": "", "chainAlias": "ethereum", "walletAddress": "0xdef"},
		{"id": "addr-3", "chainAlias": "", "walletAddress": "0xghi"}
	]`)

	loader := &SeedLoader{addressFilePath: addressFile, logger: nopLogger{}}
	addresses, err := loader.LoadAddresses()
	if err != nil {
		t.Fatalf("LoadAddresses: %v", err)
	}
	if len(addresses) != 1 || addresses[0].ID != "addr-1" {
		t.Errorf("addresses = %+v, want only addr-1", addresses)
	}
}

func TestLoadAddresses_MissingFileFails(t *testing.T) {
	loader := &SeedLoader{addressFilePath: filepath.Join(t.TempDir(), "nope.json"), logger: nopLogger{}}
	if _, err := loader.LoadAddresses(); err == nil {
		t.Fatal("a missing address file is a startup failure")
	}
}

func TestLoadTokens_ChainFromFileName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ethereum.json"), `[
		{"address": "0xusdc", "name": "USD Coin", "symbol": "USDC", "decimals": 6, "verified": true},
		{"chainAlias": "polygon", "address": "0xwrong", "name": "Wrong Chain", "symbol": "WC"}
	]`)
	writeFile(t, filepath.Join(dir, "broken.json"), `not json`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `ignored`)

	loader := &SeedLoader{tokenDirPath: dir, logger: nopLogger{}}
	tokensByChain, err := loader.LoadTokens()
	if err != nil {
		t.Fatalf("LoadTokens: %v", err)
	}
	eth := tokensByChain["ethereum"]
	if len(eth) != 1 || eth[0].Symbol != "USDC" {
		t.Errorf("ethereum catalog = %+v, want only USDC", eth)
	}
	if eth[0].ChainAlias != "ethereum" {
		t.Errorf("chain alias should come from the file name, got %q", eth[0].ChainAlias)
	}
	if _, ok := tokensByChain["broken"]; ok {
		t.Error("malformed files are skipped whole")
	}
}

func TestLoadTokens_MissingDirectoryIsEmptyCatalog(t *testing.T) {
	loader := &SeedLoader{tokenDirPath: filepath.Join(t.TempDir(), "absent"), logger: nopLogger{}}
	tokensByChain, err := loader.LoadTokens()
	if err != nil {
		t.Fatalf("LoadTokens: %v", err)
	}
	if len(tokensByChain) != 0 {
		t.Errorf("expected an empty catalog, got %+v", tokensByChain)
	}
}
