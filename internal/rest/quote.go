package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/muhammadchandra19/stock-sentinel/internal/domain/analysis"
	"github.com/muhammadchandra19/stock-sentinel/internal/domain/price"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/interval"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
)

// QuoteHandler serves prices and chart data.
type QuoteHandler struct {
	prices   price.Usecase
	analysis analysis.Usecase
	logger   logger.Interface
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(prices price.Usecase, analysis analysis.Usecase, logger logger.Interface) *QuoteHandler {
	return &QuoteHandler{
		prices:   prices,
		analysis: analysis,
		logger:   logger,
	}
}

// RegisterRoutes binds the quote endpoints to router.
func (h *QuoteHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/quotes/:symbol", h.GetQuote)
	router.GET("/stocks/:symbol/indicators", h.GetIndicators)
	router.GET("/stocks/:symbol/info", h.GetInfo)
	router.GET("/stocks/:symbol/volume-profile", h.GetVolumeProfile)
}

// GetQuote returns the latest price through the serving path. The stale
// flag is set when the live fetch failed and the cached value was used.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.prices.GetQuote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, quote)
}

// GetIndicators returns bars with indicator columns. The interval query
// parameter picks daily (default) or weekly bars.
func (h *QuoteHandler) GetIndicators(c *gin.Context) {
	in, err := interval.GetInterval(c.Query("interval"))
	if err != nil {
		fail(c, err)
		return
	}

	rows, err := h.analysis.Indicators(c.Request.Context(), c.Param("symbol"), in)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, rows)
}

// GetInfo returns the company profile and current quote.
func (h *QuoteHandler) GetInfo(c *gin.Context) {
	info, err := h.analysis.Info(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, info)
}

// GetVolumeProfile returns traded volume by price level.
func (h *QuoteHandler) GetVolumeProfile(c *gin.Context) {
	var bins int
	if raw := c.Query("bins"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			abort(c, http.StatusBadRequest, errors.InvalidInput, "bins must be an integer")
			return
		}
		bins = n
	}

	levels, err := h.analysis.VolumeProfile(c.Request.Context(), c.Param("symbol"), bins)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, levels)
}
