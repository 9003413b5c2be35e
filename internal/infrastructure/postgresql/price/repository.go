package price

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/postgresql"
)

const (
	upsertQuery = `INSERT INTO real_time_prices (symbol, price, volume, timestamp)
VALUES ($1, $2::numeric, $3, $4)
ON CONFLICT (symbol) DO UPDATE SET price = EXCLUDED.price, volume = EXCLUDED.volume, timestamp = EXCLUDED.timestamp`

	getQuery = `SELECT symbol, price, volume, timestamp FROM real_time_prices WHERE symbol = $1`
)

type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new price repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) PriceRepository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// Upsert writes quote as the current row for its symbol in a single statement.
func (r *repository) Upsert(ctx context.Context, quote *Quote) error {
	cmd, err := r.db.Exec(ctx, upsertQuery,
		quote.Symbol,
		quote.Price,
		quote.Volume,
		quote.ObservedAt,
	)
	if err != nil {
		return errors.Wrap(errors.StorageFailure, err, "upsert price")
	}

	r.logger.DebugContext(ctx, "Upserted price",
		logger.Field{Key: "symbol", Value: quote.Symbol},
		logger.Field{Key: "commandTag", Value: cmd.String()},
	)

	return nil
}

// Get returns the stored quote for symbol.
func (r *repository) Get(ctx context.Context, symbol string) (*Quote, error) {
	q := &Quote{}
	err := r.db.QueryRow(ctx, getQuery, symbol).Scan(
		&q.Symbol,
		&q.Price,
		&q.Volume,
		&q.ObservedAt,
	)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "get price")
	}

	return q, nil
}
