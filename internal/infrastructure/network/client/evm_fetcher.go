package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"balance_enricher/internal/app/port"
	"balance_enricher/internal/domain/entity"
	networkdefinition "balance_enricher/internal/infrastructure/network/definition"
)

// EVMFetcher implements port.BalanceFetcher for EVM-compatible chains. Token
// balances are read for the chain's verified catalog via one JSON-RPC batch.
type EVMFetcher struct {
	ethClient      *ethclient.Client
	def            networkdefinition.ChainDefinition
	tokens         []entity.Token
	rpcCallTimeout time.Duration
}

// ERC20 ABI minimal part for balanceOf
const erc20ABI = `[{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	parsedERC20ABI  abi.ABI
	parsedERC20Once sync.Once
	erc20MethodID   []byte
)

func initParsedERC20ABI() {
	parsedERC20Once.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			// This is a critical error during initialization, panic is appropriate
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		balanceOfMethod, ok := parsedERC20ABI.Methods["balanceOf"]
		if !ok {
			panic("balanceOf method not found in parsed ERC20 ABI")
		}
		erc20MethodID = balanceOfMethod.ID
	})
}

// NewEVMFetcher creates a fetcher for the given chain definition, trying the
// primary RPC endpoint first and falling back in order.
func NewEVMFetcher(def networkdefinition.ChainDefinition, tokens []entity.Token, connectionTimeout, rpcCallTimeout time.Duration) (port.BalanceFetcher, error) {
	initParsedERC20ABI()
	rpcURLs := append([]string{def.PrimaryRPCURL}, def.FallbackRPCURLs...)
	var lastErr error

	for _, rpcURL := range rpcURLs {
		ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		ethClient, err := ethclient.DialContext(ctx, rpcURL)
		cancel()

		if err == nil {
			return &EVMFetcher{
				ethClient:      ethClient,
				def:            def,
				tokens:         tokens,
				rpcCallTimeout: rpcCallTimeout,
			}, nil
		}
		lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
	}

	return nil, fmt.Errorf("all RPC connection attempts failed for chain %s: %w", def.ChainAlias, lastErr)
}

// GetNativeBalance fetches the native currency balance for a wallet.
func (f *EVMFetcher) GetNativeBalance(ctx context.Context, walletAddress string) ([]entity.RawBalance, error) {
	callCtx, cancel := context.WithTimeout(ctx, f.rpcCallTimeout)
	defer cancel()

	balance, err := f.ethClient.BalanceAt(callCtx, common.HexToAddress(walletAddress), nil)
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance for %s on %s: %w", walletAddress, f.def.ChainAlias, err)
	}

	return []entity.RawBalance{{
		WalletAddress: walletAddress,
		TokenAddress:  nil,
		IsNative:      true,
		Balance:       balance.String(),
		Decimals:      f.def.NativeDecimals,
		Symbol:        f.def.NativeSymbol,
		Name:          f.def.NativeName,
	}}, nil
}

// GetTokenBalances fetches the catalog tokens' balances for a wallet in one
// JSON-RPC batch. Entries whose result cannot be decoded are omitted; the
// batch as a whole only fails when the RPC call itself fails.
func (f *EVMFetcher) GetTokenBalances(ctx context.Context, walletAddress string) ([]entity.RawBalance, error) {
	if len(f.tokens) == 0 {
		return []entity.RawBalance{}, nil
	}

	batchElems := make([]rpc.BatchElem, len(f.tokens))
	paddedWalletAddress := common.LeftPadBytes(common.HexToAddress(walletAddress).Bytes(), 32)
	callData := append(append([]byte(nil), erc20MethodID...), paddedWalletAddress...)

	for i, token := range f.tokens {
		callArgs := map[string]interface{}{
			"to":   common.HexToAddress(token.Address),
			"data": hexutil.Bytes(callData),
		}
		batchElems[i] = rpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{callArgs, "latest"},
			Result: new(hexutil.Bytes),
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, f.rpcCallTimeout)
	defer cancel()

	if err := f.ethClient.Client().BatchCallContext(callCtx, batchElems); err != nil {
		return nil, fmt.Errorf("RPC batch call failed for %s on %s: %w", walletAddress, f.def.ChainAlias, err)
	}

	balances := make([]entity.RawBalance, 0, len(f.tokens))
	for i, elem := range batchElems {
		if elem.Error != nil {
			continue
		}
		result, ok := elem.Result.(*hexutil.Bytes)
		if !ok || result == nil {
			continue
		}

		balance := big.NewInt(0)
		if len(*result) > 0 {
			unpacked, err := parsedERC20ABI.Unpack("balanceOf", *result)
			if err != nil || len(unpacked) == 0 {
				continue
			}
			balance, ok = unpacked[0].(*big.Int)
			if !ok {
				continue
			}
		}

		tokenAddress := f.tokens[i].Address
		balances = append(balances, entity.RawBalance{
			WalletAddress: walletAddress,
			TokenAddress:  &tokenAddress,
			IsNative:      false,
			Balance:       balance.String(),
			Decimals:      f.tokens[i].Decimals,
			Symbol:        f.tokens[i].Symbol,
			Name:          f.tokens[i].Name,
		})
	}
	return balances, nil
}
