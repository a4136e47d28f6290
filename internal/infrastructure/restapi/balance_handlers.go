package restapi

import (
	"errors"
	"net/http"
	"strconv"

	"balance_enricher/internal/app/port"
	"balance_enricher/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIBalancesResponse is the response envelope of the balance endpoints.
type APIBalancesResponse struct {
	Data struct {
		Balances []entity.EnrichedBalance `json:"balances"`
	} `json:"data"`
}

// APIErrorResponse is the response envelope of a failed request.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// BalanceHandler handles HTTP requests for enriched balances.
type BalanceHandler struct {
	balanceService port.BalanceService
	logger         port.Logger
}

// NewBalanceHandler creates a new instance of BalanceHandler.
func NewBalanceHandler(bs port.BalanceService, l port.Logger) *BalanceHandler {
	return &BalanceHandler{
		balanceService: bs,
		logger:         l,
	}
}

// GetBalancesByAddressIDHandler serves GET /api/v1/addresses/:addressID/balances.
func (h *BalanceHandler) GetBalancesByAddressIDHandler(c *gin.Context) {
	addressID := c.Param("addressID")
	opts := parseBalanceOptions(c)

	balances, err := h.balanceService.GetBalances(c.Request.Context(), addressID, opts)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeBalances(c, balances)
}

// GetBalancesByChainAndAddressHandler serves
// GET /api/v1/chains/:chainAlias/addresses/:walletAddress/balances.
func (h *BalanceHandler) GetBalancesByChainAndAddressHandler(c *gin.Context) {
	chainAlias := c.Param("chainAlias")
	walletAddress := c.Param("walletAddress")
	opts := parseBalanceOptions(c)

	balances, err := h.balanceService.GetBalancesByChainAndAddress(c.Request.Context(), chainAlias, walletAddress, opts)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.writeBalances(c, balances)
}

func (h *BalanceHandler) writeBalances(c *gin.Context, balances []entity.EnrichedBalance) {
	var response APIBalancesResponse
	if balances == nil {
		balances = []entity.EnrichedBalance{}
	}
	response.Data.Balances = balances
	c.JSON(http.StatusOK, response)
}

func (h *BalanceHandler) writeError(c *gin.Context, err error) {
	var notFound *entity.NotFoundError
	var internal *entity.InternalServerError
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, APIErrorResponse{Error: err.Error()})
	case errors.As(err, &internal):
		c.JSON(http.StatusInternalServerError, APIErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Balance request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadGateway, APIErrorResponse{Error: "failed to fetch balances"})
	}
}

// parseBalanceOptions reads the query parameters of a balance request.
// Unknown sort keys and orders fall back to the service defaults.
func parseBalanceOptions(c *gin.Context) entity.TokenBalanceOptions {
	opts := entity.TokenBalanceOptions{
		Currency: c.Query("currency"),
	}
	if v, err := strconv.ParseBool(c.Query("includeHidden")); err == nil {
		opts.IncludeHidden = v
	}
	if v, err := strconv.ParseBool(c.Query("showSpam")); err == nil {
		opts.ShowSpam = v
	}
	switch entity.SortKey(c.Query("sortBy")) {
	case entity.SortByBalance:
		opts.SortBy = entity.SortByBalance
	case entity.SortByUSDValue:
		opts.SortBy = entity.SortByUSDValue
	case entity.SortBySymbol:
		opts.SortBy = entity.SortBySymbol
	}
	switch entity.SortOrder(c.Query("sortOrder")) {
	case entity.SortAsc:
		opts.SortOrder = entity.SortAsc
	case entity.SortDesc:
		opts.SortOrder = entity.SortDesc
	}
	return opts
}
