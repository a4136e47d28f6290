package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"balance_enricher/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// stubBalanceService records the options it was called with and returns a
// scripted result.
type stubBalanceService struct {
	balances []entity.EnrichedBalance
	err      error
	lastOpts entity.TokenBalanceOptions
}

func (s *stubBalanceService) GetBalances(_ context.Context, _ string, opts entity.TokenBalanceOptions) ([]entity.EnrichedBalance, error) {
	s.lastOpts = opts
	return s.balances, s.err
}

func (s *stubBalanceService) GetBalancesByChainAndAddress(_ context.Context, _, _ string, opts entity.TokenBalanceOptions) ([]entity.EnrichedBalance, error) {
	s.lastOpts = opts
	return s.balances, s.err
}

func serve(t *testing.T, svc *stubBalanceService, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := SetupRouter(NewBalanceHandler(svc, nopLogger{}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetBalancesHandler_OK(t *testing.T) {
	svc := &stubBalanceService{
		balances: []entity.EnrichedBalance{{IsNative: true, Symbol: "ETH", Balance: "1", FormattedBalance: "1"}},
	}
	rec := serve(t, svc, "/api/v1/addresses/addr-1/balances?showSpam=true&sortBy=symbol&sortOrder=asc&currency=eur")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp APIBalancesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Data.Balances) != 1 || resp.Data.Balances[0].Symbol != "ETH" {
		t.Errorf("unexpected payload: %s", rec.Body.String())
	}

	if !svc.lastOpts.ShowSpam || svc.lastOpts.SortBy != entity.SortBySymbol ||
		svc.lastOpts.SortOrder != entity.SortAsc || svc.lastOpts.Currency != "eur" {
		t.Errorf("options not parsed from query: %+v", svc.lastOpts)
	}
}

func TestGetBalancesHandler_NotFound(t *testing.T) {
	svc := &stubBalanceService{err: entity.NewAddressNotFoundError("addr-404")}
	rec := serve(t, svc, "/api/v1/addresses/addr-404/balances")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetBalancesByChainAndAddressHandler_NoFetcher(t *testing.T) {
	svc := &stubBalanceService{err: entity.NewNoFetcherError("unknown-chain")}
	rec := serve(t, svc, "/api/v1/chains/unknown-chain/addresses/0xabc/balances")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp APIErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error != "No balance fetcher for chain: unknown-chain" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestGetBalancesHandler_UpstreamFailure(t *testing.T) {
	svc := &stubBalanceService{err: errors.New("rpc unreachable")}
	rec := serve(t, svc, "/api/v1/addresses/addr-1/balances")

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestGetBalancesHandler_EmptyResultIsAnArray(t *testing.T) {
	rec := serve(t, &stubBalanceService{}, "/api/v1/addresses/addr-1/balances")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Data struct {
			Balances json.RawMessage `json:"balances"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if string(resp.Data.Balances) != "[]" {
		t.Errorf("empty result must serialize as [], got %s", resp.Data.Balances)
	}
}
