package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammadchandra19/stock-sentinel/internal/domain/portfolio"
	holdingInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/holding"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/shopspring/decimal"
)

// HoldingHandler serves the caller's watchlist and portfolio.
type HoldingHandler struct {
	portfolio portfolio.Usecase
	logger    logger.Interface
}

// NewHoldingHandler creates a new HoldingHandler.
func NewHoldingHandler(portfolio portfolio.Usecase, logger logger.Interface) *HoldingHandler {
	return &HoldingHandler{
		portfolio: portfolio,
		logger:    logger,
	}
}

// RegisterRoutes binds the watchlist and portfolio endpoints to router.
func (h *HoldingHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/watchlist", h.AddWatch)
	router.GET("/watchlist", h.ListWatchlist)
	router.DELETE("/watchlist/:symbol", h.RemoveWatch)

	router.POST("/portfolio", h.AddPosition)
	router.GET("/portfolio", h.Summary)
}

// WatchRequest is the body of POST /watchlist.
type WatchRequest struct {
	Symbol string `json:"symbol"`
}

// AddWatch follows a symbol. Adding one already followed returns the existing entry.
func (h *HoldingHandler) AddWatch(c *gin.Context) {
	var req WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, errors.InvalidInput, "malformed request body")
		return
	}

	item, err := h.portfolio.AddWatch(c.Request.Context(), userID(c), req.Symbol)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, item)
}

func (h *HoldingHandler) ListWatchlist(c *gin.Context) {
	items, err := h.portfolio.ListWatchlist(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}

	if items == nil {
		items = []*holdingInfra.WatchlistItem{}
	}
	respond(c, http.StatusOK, items)
}

func (h *HoldingHandler) RemoveWatch(c *gin.Context) {
	if err := h.portfolio.RemoveWatch(c.Request.Context(), userID(c), c.Param("symbol")); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// PositionRequest is the body of POST /portfolio. PurchasedAt defaults to now.
type PositionRequest struct {
	Symbol        string          `json:"symbol"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	PurchasedAt   *time.Time      `json:"purchasedAt"`
}

// AddPosition records a simulated purchase.
func (h *HoldingHandler) AddPosition(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, errors.InvalidInput, "malformed request body")
		return
	}

	position := &holdingInfra.Position{
		UserID:        userID(c),
		Symbol:        req.Symbol,
		Shares:        req.Shares,
		PurchasePrice: req.PurchasePrice,
	}
	if req.PurchasedAt != nil {
		position.PurchasedAt = req.PurchasedAt.UTC()
	}

	if err := h.portfolio.AddPosition(c.Request.Context(), position); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, position)
}

// Summary values every position at the latest served price.
func (h *HoldingHandler) Summary(c *gin.Context) {
	summary, err := h.portfolio.Summary(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, summary)
}
