package bootstrap

import (
	alertDomain "github.com/muhammadchandra19/stock-sentinel/internal/domain/alert"
	analysisDomain "github.com/muhammadchandra19/stock-sentinel/internal/domain/analysis"
	ingestDomain "github.com/muhammadchandra19/stock-sentinel/internal/domain/ingest"
	portfolioDomain "github.com/muhammadchandra19/stock-sentinel/internal/domain/portfolio"
	priceDomain "github.com/muhammadchandra19/stock-sentinel/internal/domain/price"
	alertUc "github.com/muhammadchandra19/stock-sentinel/internal/usecase/alert"
	analysisUc "github.com/muhammadchandra19/stock-sentinel/internal/usecase/analysis"
	ingestUc "github.com/muhammadchandra19/stock-sentinel/internal/usecase/ingest"
	portfolioUc "github.com/muhammadchandra19/stock-sentinel/internal/usecase/portfolio"
	priceUc "github.com/muhammadchandra19/stock-sentinel/internal/usecase/price"
)

// Usecase is the business layer.
type Usecase struct {
	IngestUsecase    ingestDomain.Usecase
	PriceUsecase     priceDomain.Usecase
	AlertUsecase     alertDomain.Usecase
	PortfolioUsecase portfolioDomain.Usecase
	AnalysisUsecase  analysisDomain.Usecase
}

// registerUsecase registers the usecases. Alert and ingest come first since
// the serving path feeds live quotes back through ingest.
func (b *Bootstrap) registerUsecase() {
	storageTimeout := b.Config.App.StorageTimeout

	b.Usecase.AlertUsecase = alertUc.NewUsecase(b.Repository.AlertRepository, storageTimeout, b.Clock, b.Logger)
	b.Usecase.IngestUsecase = ingestUc.NewUsecase(
		b.Repository.PriceRepository,
		b.Usecase.AlertUsecase,
		b.Notifier.Dispatcher,
		storageTimeout,
		b.Logger,
		b.Metrics,
	)

	b.Usecase.PriceUsecase = priceUc.NewUsecase(
		b.Repository.PriceRepository,
		b.Source,
		b.Usecase.IngestUsecase,
		priceUc.Config{
			FreshnessWindow: b.Config.Price.FreshnessWindow,
			StorageTimeout:  storageTimeout,
			Clock:           b.Clock,
		},
		b.Logger,
		b.Metrics,
	)

	b.Usecase.PortfolioUsecase = portfolioUc.NewUsecase(
		b.Repository.HoldingRepository,
		b.Usecase.PriceUsecase,
		storageTimeout,
		b.Clock,
		b.Logger,
	)
	b.Usecase.AnalysisUsecase = analysisUc.NewUsecase(b.Source, b.Usecase.PriceUsecase, b.Logger)
}
