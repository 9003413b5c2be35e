package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/muhammadchandra19/stock-sentinel/internal/metrics"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Quote   *QuoteHandler
	Alert   *AlertHandler
	Holding *HoldingHandler
}

// NewRouter builds the gin engine. /health is answered in front of the
// engine by the healthcheck middleware.
func NewRouter(handlers Handlers, log logger.Interface, m *metrics.Metrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := router.Group("/api/v1")
	handlers.Quote.RegisterRoutes(api)

	user := api.Group("", RequireUser())
	handlers.Alert.RegisterRoutes(user)
	handlers.Holding.RegisterRoutes(user)

	return router
}
