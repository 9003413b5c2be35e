package holding

import (
	"context"

	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/postgresql"
)

const (
	// The no-op update makes RETURNING yield the existing row on conflict.
	addWatchQuery = `INSERT INTO watchlist (user_id, symbol, added_at) VALUES ($1, $2, $3)
ON CONFLICT (user_id, symbol) DO UPDATE SET symbol = EXCLUDED.symbol
RETURNING id, added_at`

	removeWatchQuery = `DELETE FROM watchlist WHERE user_id = $1 AND symbol = $2`

	listWatchlistQuery = `SELECT id, user_id, symbol, added_at FROM watchlist WHERE user_id = $1 ORDER BY added_at DESC, id DESC`

	addPositionQuery = `INSERT INTO portfolio (user_id, symbol, shares, purchase_price, purchase_date)
VALUES ($1, $2, $3::numeric, $4::numeric, $5)
RETURNING id`

	listPositionsQuery = `SELECT id, user_id, symbol, shares, purchase_price, purchase_date
FROM portfolio WHERE user_id = $1 ORDER BY symbol, purchase_date`

	activeSymbolsQuery = `SELECT symbol FROM watchlist UNION SELECT symbol FROM portfolio ORDER BY symbol`
)

type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new holding repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) HoldingRepository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

func (r *repository) AddWatch(ctx context.Context, item *WatchlistItem) error {
	err := r.db.QueryRow(ctx, addWatchQuery, item.UserID, item.Symbol, item.AddedAt).
		Scan(&item.ID, &item.AddedAt)
	if err != nil {
		return errors.Wrap(errors.StorageFailure, err, "add watchlist item")
	}
	return nil
}

func (r *repository) RemoveWatch(ctx context.Context, userID int64, symbol string) (bool, error) {
	cmd, err := r.db.Exec(ctx, removeWatchQuery, userID, symbol)
	if err != nil {
		return false, errors.Wrap(errors.StorageFailure, err, "remove watchlist item")
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *repository) ListWatchlist(ctx context.Context, userID int64) ([]*WatchlistItem, error) {
	rows, err := r.db.Query(ctx, listWatchlistQuery, userID)
	if err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "list watchlist")
	}
	defer rows.Close()

	items := make([]*WatchlistItem, 0)
	for rows.Next() {
		item := &WatchlistItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Symbol, &item.AddedAt); err != nil {
			return nil, errors.Wrap(errors.StorageFailure, err, "list watchlist")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "list watchlist")
	}

	return items, nil
}

func (r *repository) AddPosition(ctx context.Context, position *Position) error {
	err := r.db.QueryRow(ctx, addPositionQuery,
		position.UserID,
		position.Symbol,
		position.Shares,
		position.PurchasePrice,
		position.PurchasedAt,
	).Scan(&position.ID)
	if err != nil {
		return errors.Wrap(errors.StorageFailure, err, "add position")
	}

	r.logger.InfoContext(ctx, "Added position",
		logger.Field{Key: "positionId", Value: position.ID},
		logger.Field{Key: "symbol", Value: position.Symbol},
	)
	return nil
}

func (r *repository) ListPositions(ctx context.Context, userID int64) ([]*Position, error) {
	rows, err := r.db.Query(ctx, listPositionsQuery, userID)
	if err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "list positions")
	}
	defer rows.Close()

	positions := make([]*Position, 0)
	for rows.Next() {
		p := &Position{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Symbol, &p.Shares, &p.PurchasePrice, &p.PurchasedAt); err != nil {
			return nil, errors.Wrap(errors.StorageFailure, err, "list positions")
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "list positions")
	}

	return positions, nil
}

func (r *repository) ActiveSymbols(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, activeSymbolsQuery)
	if err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "list active symbols")
	}
	defer rows.Close()

	symbols := make([]string, 0)
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.StorageFailure, err, "list active symbols")
		}
		symbols = append(symbols, symbol)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "list active symbols")
	}

	return symbols, nil
}
