package holding

import "context"

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// HoldingRepository persists watchlists and portfolio positions.
type HoldingRepository interface {
	// AddWatch is idempotent; re-adding an existing symbol returns the stored row.
	AddWatch(ctx context.Context, item *WatchlistItem) error
	RemoveWatch(ctx context.Context, userID int64, symbol string) (bool, error)
	ListWatchlist(ctx context.Context, userID int64) ([]*WatchlistItem, error)

	AddPosition(ctx context.Context, position *Position) error
	ListPositions(ctx context.Context, userID int64) ([]*Position, error)

	// ActiveSymbols returns the distinct symbols referenced by any watchlist or portfolio row, sorted.
	ActiveSymbols(ctx context.Context) ([]string, error)
}
