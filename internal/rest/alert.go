package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/muhammadchandra19/stock-sentinel/internal/domain/alert"
	alertInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/shopspring/decimal"
)

// AlertHandler manages the caller's price alerts.
type AlertHandler struct {
	alerts alert.Usecase
	logger logger.Interface
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alerts alert.Usecase, logger logger.Interface) *AlertHandler {
	return &AlertHandler{
		alerts: alerts,
		logger: logger,
	}
}

// RegisterRoutes binds the alert endpoints to router.
func (h *AlertHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/alerts", h.CreateAlert)
	router.GET("/alerts", h.ListAlerts)
	router.DELETE("/alerts/:id", h.DeleteAlert)
}

// CreateAlertRequest is the body of POST /alerts.
type CreateAlertRequest struct {
	Symbol      string          `json:"symbol"`
	TargetPrice decimal.Decimal `json:"targetPrice"`
	Direction   string          `json:"direction"`
}

// CreateAlert registers a new untriggered alert for the caller.
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, errors.InvalidInput, "malformed request body")
		return
	}

	a := &alertInfra.Alert{
		UserID:      userID(c),
		Symbol:      req.Symbol,
		TargetPrice: req.TargetPrice,
		Direction:   alertInfra.Direction(req.Direction),
	}
	if err := h.alerts.Create(c.Request.Context(), a); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, a)
}

// ListAlerts returns the caller's alerts, newest first, optionally for one symbol.
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	alerts, err := h.alerts.ListFor(c.Request.Context(), alertInfra.Filter{
		UserID: userID(c),
		Symbol: c.Query("symbol"),
	})
	if err != nil {
		fail(c, err)
		return
	}

	if alerts == nil {
		alerts = []*alertInfra.Alert{}
	}
	respond(c, http.StatusOK, alerts)
}

// DeleteAlert removes one of the caller's alerts.
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abort(c, http.StatusBadRequest, errors.InvalidInput, "alert id must be a positive integer")
		return
	}

	if err := h.alerts.Delete(c.Request.Context(), userID(c), id); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
