package bootstrap

import "github.com/muhammadchandra19/stock-sentinel/internal/rest"

// Handler is the HTTP layer.
type Handler struct {
	QuoteHandler   *rest.QuoteHandler
	AlertHandler   *rest.AlertHandler
	HoldingHandler *rest.HoldingHandler
}

// registerHandler registers the HTTP handlers.
func (b *Bootstrap) registerHandler() {
	b.Handler.QuoteHandler = rest.NewQuoteHandler(b.Usecase.PriceUsecase, b.Usecase.AnalysisUsecase, b.Logger)
	b.Handler.AlertHandler = rest.NewAlertHandler(b.Usecase.AlertUsecase, b.Logger)
	b.Handler.HoldingHandler = rest.NewHoldingHandler(b.Usecase.PortfolioUsecase, b.Logger)
}

// Handlers returns the handler set for rest.NewRouter.
func (h Handler) Handlers() rest.Handlers {
	return rest.Handlers{
		Quote:   h.QuoteHandler,
		Alert:   h.AlertHandler,
		Holding: h.HoldingHandler,
	}
}
