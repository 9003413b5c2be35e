package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// RowsInterface is the multi-row result of Query. pgx.Rows satisfies it.
type RowsInterface interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

// Row is the single-row result of QueryRow. pgx.Row satisfies it.
type Row interface {
	Scan(dest ...any) error
}

// PostgreSQLClient is what repositories, the migration runner and the
// health check need from a pool. Statements run inside the transaction
// bound to ctx by WithTx, when there is one.
type PostgreSQLClient interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (RowsInterface, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row

	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)

	Ping(ctx context.Context) error
	Close()
	Stats() *pgxpool.Stat
	DatabaseName() string
}
