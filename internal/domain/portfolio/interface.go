package portfolio

import (
	"context"

	holdingInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/holding"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// Usecase manages watchlists and simulated positions.
type Usecase interface {
	AddWatch(ctx context.Context, userID int64, symbol string) (*holdingInfra.WatchlistItem, error)
	RemoveWatch(ctx context.Context, userID int64, symbol string) error
	ListWatchlist(ctx context.Context, userID int64) ([]*holdingInfra.WatchlistItem, error)
	AddPosition(ctx context.Context, position *holdingInfra.Position) error
	Summary(ctx context.Context, userID int64) (*Summary, error)
	// ActiveSymbols is the union of every watchlist and portfolio symbol.
	ActiveSymbols(ctx context.Context) ([]string, error)
}
