package price

import (
	"context"
	"fmt"
	"time"

	domainIngest "github.com/muhammadchandra19/stock-sentinel/internal/domain/ingest"
	domainPrice "github.com/muhammadchandra19/stock-sentinel/internal/domain/price"
	quotev1 "github.com/muhammadchandra19/stock-sentinel/internal/domain/quote/v1"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
	"github.com/muhammadchandra19/stock-sentinel/internal/metrics"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
)

// Config tunes the price usecase.
type Config struct {
	FreshnessWindow time.Duration
	StorageTimeout  time.Duration
	Clock           util.Clock
}

type usecase struct {
	priceRepository price.PriceRepository
	source          quotev1.Source
	ingest          domainIngest.Usecase
	config          Config
	logger          logger.Interface
	metrics         *metrics.Metrics
}

// NewUsecase creates a new price usecase.
func NewUsecase(
	priceRepository price.PriceRepository,
	source quotev1.Source,
	ingest domainIngest.Usecase,
	config Config,
	logger logger.Interface,
	metrics *metrics.Metrics,
) *usecase {
	if config.Clock == nil {
		config.Clock = util.SystemClock
	}
	return &usecase{
		priceRepository: priceRepository,
		source:          source,
		ingest:          ingest,
		config:          config,
		logger:          logger,
		metrics:         metrics,
	}
}

// Get returns the stored quote regardless of age, or nil when absent.
func (u *usecase) Get(ctx context.Context, symbol string) (*price.Quote, error) {
	symbol, ok := util.NormalizeSymbol(symbol)
	if !ok {
		return nil, invalidSymbol(symbol)
	}

	ctx, cancel := context.WithTimeout(ctx, u.config.StorageTimeout)
	defer cancel()

	q, err := u.priceRepository.Get(ctx, symbol)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return q, nil
}

// GetFresh returns the stored quote only when it is within the freshness window.
func (u *usecase) GetFresh(ctx context.Context, symbol string) (*price.Quote, error) {
	q, err := u.Get(ctx, symbol)
	if err != nil || q == nil {
		return nil, err
	}
	if !q.IsFresh(u.config.Clock(), u.config.FreshnessWindow) {
		return nil, nil
	}
	return q, nil
}

// GetQuote is the dashboard read path. Storage failures degrade to a live
// fetch; a failed live fetch degrades to the stale cached value.
func (u *usecase) GetQuote(ctx context.Context, symbol string) (*domainPrice.ServedQuote, error) {
	symbol, ok := util.NormalizeSymbol(symbol)
	if !ok {
		return nil, invalidSymbol(symbol)
	}

	cached, err := u.GetFresh(ctx, symbol)
	if err != nil {
		u.logger.WarnContext(ctx, "Price cache read failed",
			logger.Field{Key: "symbol", Value: symbol},
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
	if cached != nil {
		u.metrics.RecordServed(string(domainPrice.OriginCache))
		return &domainPrice.ServedQuote{Quote: *cached, Origin: domainPrice.OriginCache}, nil
	}

	live, fetchErr := u.source.Fetch(ctx, symbol)
	if fetchErr == nil {
		// alerts must see this price too; a storage failure here is logged by ingest
		_, _ = u.ingest.Process(ctx, domainIngest.SourceServe, live)
		u.metrics.RecordServed(string(domainPrice.OriginLive))
		return &domainPrice.ServedQuote{Quote: *live, Origin: domainPrice.OriginLive}, nil
	}

	u.logger.WarnContext(ctx, "Live quote fetch failed",
		logger.Field{Key: "symbol", Value: symbol},
		logger.Field{Key: "code", Value: errors.CodeOf(fetchErr).String()},
		logger.Field{Key: "error", Value: fetchErr.Error()},
	)

	// re-read: a concurrent ingest may have stored a newer value
	if stale, err := u.Get(ctx, symbol); err == nil && stale != nil {
		u.metrics.RecordServed(string(domainPrice.OriginStale))
		return &domainPrice.ServedQuote{Quote: *stale, Stale: true, Origin: domainPrice.OriginStale}, nil
	}

	u.metrics.RecordServed("error")
	if errors.HasCode(fetchErr, errors.QuoteNotFound) {
		return nil, fetchErr
	}
	return nil, errors.Wrap(errors.QuoteUnavailable, fetchErr, fmt.Sprintf("unable to fetch %s", symbol))
}

func invalidSymbol(symbol string) error {
	return errors.TracerFromError(errors.NewErrorDetails(
		fmt.Sprintf("invalid symbol %q", symbol),
		errors.InvalidInput,
		"symbol",
	))
}
