package analysis

import (
	"context"

	"github.com/muhammadchandra19/stock-sentinel/pkg/indicator"
	"github.com/muhammadchandra19/stock-sentinel/pkg/interval"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// Usecase builds chart data for the dashboard.
type Usecase interface {
	// Indicators returns bars of width in, oldest first, with the latest
	// quote folded into the last bar and every indicator column computed.
	Indicators(ctx context.Context, symbol string, in interval.Interval) ([]indicator.Row, error)
	// Info returns the company profile with the current served quote.
	Info(ctx context.Context, symbol string) (*StockInfo, error)
	// VolumeProfile buckets the daily history by close into bins price
	// levels. Zero bins means indicator.DefaultProfileBins.
	VolumeProfile(ctx context.Context, symbol string, bins int) ([]indicator.VolumeLevel, error)
}
