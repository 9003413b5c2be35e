package ingest

import (
	"context"
	"fmt"
	"time"

	domainAlert "github.com/muhammadchandra19/stock-sentinel/internal/domain/alert"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/notifier"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
	"github.com/muhammadchandra19/stock-sentinel/internal/metrics"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
)

type usecase struct {
	priceRepository price.PriceRepository
	alerts          domainAlert.Usecase
	notifier        notifier.Notifier
	storageTimeout  time.Duration
	logger          logger.Interface
	metrics         *metrics.Metrics
}

// NewUsecase creates the ingest pipeline.
func NewUsecase(
	priceRepository price.PriceRepository,
	alerts domainAlert.Usecase,
	notifier notifier.Notifier,
	storageTimeout time.Duration,
	logger logger.Interface,
	metrics *metrics.Metrics,
) *usecase {
	return &usecase{
		priceRepository: priceRepository,
		alerts:          alerts,
		notifier:        notifier,
		storageTimeout:  storageTimeout,
		logger:          logger,
		metrics:         metrics,
	}
}

// Process stores quote, evaluates alerts on its symbol and dispatches a
// notification for each alert this call triggered. A failed upsert skips
// evaluation. Delivery failures are logged and never undo a trigger.
func (u *usecase) Process(ctx context.Context, source string, quote *price.Quote) ([]*alert.Alert, error) {
	ctx = util.WithSource(ctx, source)

	symbol, ok := util.NormalizeSymbol(quote.Symbol)
	if !ok {
		u.metrics.RecordIngest(source, errors.InvalidInput.String())
		return nil, errors.TracerFromError(errors.NewErrorDetails(
			fmt.Sprintf("invalid symbol %q", quote.Symbol), errors.InvalidInput, "symbol",
		))
	}
	if symbol != quote.Symbol {
		normalized := *quote
		normalized.Symbol = symbol
		quote = &normalized
	}

	if err := u.upsert(ctx, quote); err != nil {
		u.metrics.RecordIngest(source, errors.StorageFailure.String())
		u.logger.ErrorContext(ctx, err,
			logger.Field{Key: "action", Value: "upsert price"},
			logger.Field{Key: "symbol", Value: quote.Symbol},
		)
		return nil, err
	}
	u.metrics.RecordIngest(source, "ok")

	triggered, err := u.evaluate(ctx, quote)
	if err != nil {
		u.logger.ErrorContext(ctx, err,
			logger.Field{Key: "action", Value: "evaluate alerts"},
			logger.Field{Key: "symbol", Value: quote.Symbol},
		)
		return nil, err
	}

	for _, a := range triggered {
		u.metrics.RecordTriggered(string(a.Direction))

		if err := u.notifier.Notify(ctx, notifier.NewNotification(a, quote.Price)); err != nil {
			u.metrics.RecordNotification("failed")
			u.logger.WarnContext(ctx, "Alert notification failed",
				logger.Field{Key: "alertId", Value: a.ID},
				logger.Field{Key: "error", Value: err.Error()},
			)
			continue
		}
		u.metrics.RecordNotification("ok")
	}

	return triggered, nil
}

func (u *usecase) upsert(ctx context.Context, quote *price.Quote) error {
	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()

	if err := u.priceRepository.Upsert(ctx, quote); err != nil {
		return asStorageFailure(err, "upsert price")
	}
	return nil
}

func (u *usecase) evaluate(ctx context.Context, quote *price.Quote) ([]*alert.Alert, error) {
	triggered, err := u.alerts.Evaluate(ctx, quote.Symbol, quote.Price)
	if err != nil {
		return nil, asStorageFailure(err, "evaluate alerts")
	}
	return triggered, nil
}

func asStorageFailure(err error, message string) error {
	if errors.HasCode(err, errors.StorageFailure) {
		return err
	}
	return errors.Wrap(errors.StorageFailure, err, message)
}
