package analysis

import (
	"context"
	"fmt"

	domainAnalysis "github.com/muhammadchandra19/stock-sentinel/internal/domain/analysis"
	domainPrice "github.com/muhammadchandra19/stock-sentinel/internal/domain/price"
	quotev1 "github.com/muhammadchandra19/stock-sentinel/internal/domain/quote/v1"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/indicator"
	"github.com/muhammadchandra19/stock-sentinel/pkg/interval"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
)

type usecase struct {
	source quotev1.Source
	prices domainPrice.Usecase
	logger logger.Interface
}

// NewUsecase creates a new analysis usecase.
func NewUsecase(source quotev1.Source, prices domainPrice.Usecase, logger logger.Interface) *usecase {
	return &usecase{
		source: source,
		prices: prices,
		logger: logger,
	}
}

// Indicators loads daily history, folds in the latest served quote,
// resamples to in and computes the indicator columns. A missing live quote
// only means the chart ends at the last historical close.
func (u *usecase) Indicators(ctx context.Context, symbol string, in interval.Interval) ([]indicator.Row, error) {
	bars, err := u.bars(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if in != interval.Interval1d {
		bars = in.Resample(bars)
	}
	return indicator.Compute(bars), nil
}

// VolumeProfile buckets the same daily bars Indicators charts.
func (u *usecase) VolumeProfile(ctx context.Context, symbol string, bins int) ([]indicator.VolumeLevel, error) {
	if bins == 0 {
		bins = indicator.DefaultProfileBins
	}
	if bins < 0 || bins > domainAnalysis.MaxProfileBins {
		return nil, errors.TracerFromError(errors.NewErrorDetails(
			fmt.Sprintf("bins must be between 1 and %d", domainAnalysis.MaxProfileBins), errors.InvalidInput, "bins",
		))
	}

	bars, err := u.bars(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return indicator.VolumeProfile(bars, bins), nil
}

// Info joins the company profile with the served quote. The profile is
// required; the quote is best effort.
func (u *usecase) Info(ctx context.Context, symbol string) (*domainAnalysis.StockInfo, error) {
	normalized, err := normalize(symbol)
	if err != nil {
		return nil, err
	}

	overview, err := u.source.Overview(ctx, normalized)
	if err != nil {
		if errors.HasCode(err, errors.QuoteNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(errors.QuoteUnavailable, err, fmt.Sprintf("unable to load overview for %s", normalized))
	}

	info := &domainAnalysis.StockInfo{Overview: overview}
	served, err := u.prices.GetQuote(ctx, normalized)
	if err != nil {
		u.logger.WarnContext(ctx, "Stock info without live quote",
			logger.Field{Key: "symbol", Value: normalized},
			logger.Field{Key: "error", Value: err.Error()},
		)
		return info, nil
	}
	info.Quote = served
	return info, nil
}

func (u *usecase) bars(ctx context.Context, symbol string) ([]interval.Bar, error) {
	normalized, err := normalize(symbol)
	if err != nil {
		return nil, err
	}

	bars, err := u.source.History(ctx, normalized)
	if err != nil {
		if errors.HasCode(err, errors.QuoteNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(errors.QuoteUnavailable, err, fmt.Sprintf("unable to load history for %s", normalized))
	}

	served, err := u.prices.GetQuote(ctx, normalized)
	if err != nil {
		u.logger.WarnContext(ctx, "Charting without live quote",
			logger.Field{Key: "symbol", Value: normalized},
			logger.Field{Key: "error", Value: err.Error()},
		)
		return bars, nil
	}

	return interval.Interval1d.Merge(bars, interval.Tick{
		Timestamp: served.ObservedAt,
		Price:     served.Price.InexactFloat64(),
		Volume:    served.Volume,
	}), nil
}

func normalize(symbol string) (string, error) {
	normalized, ok := util.NormalizeSymbol(symbol)
	if !ok {
		return "", errors.TracerFromError(errors.NewErrorDetails(
			fmt.Sprintf("invalid symbol %q", symbol), errors.InvalidInput, "symbol",
		))
	}
	return normalized, nil
}
