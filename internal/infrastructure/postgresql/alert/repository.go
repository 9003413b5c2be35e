package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/postgresql"
	"github.com/shopspring/decimal"
)

const (
	columns = `id, user_id, symbol, target_price, alert_type, is_triggered, created_at, triggered_at`

	createQuery = `INSERT INTO price_alerts (user_id, symbol, target_price, alert_type, created_at)
VALUES ($1, $2, $3::numeric, $4, $5)
RETURNING id, created_at`

	// A row lock is taken per matching alert; a concurrent evaluate blocks on
	// it and then re-checks NOT is_triggered, so each alert flips once.
	evaluateQuery = `UPDATE price_alerts
SET is_triggered = TRUE, triggered_at = $3
WHERE symbol = $1
  AND NOT is_triggered
  AND ((alert_type = 'above' AND $2::numeric > target_price)
    OR (alert_type = 'below' AND $2::numeric < target_price))
RETURNING ` + columns

	deleteQuery = `DELETE FROM price_alerts WHERE id = $1 AND user_id = $2`
)

type repository struct {
	db     postgresql.PostgreSQLClient
	logger logger.Interface
}

// NewRepository creates a new alert repository.
func NewRepository(db postgresql.PostgreSQLClient, logger logger.Interface) AlertRepository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new alert.
func (r *repository) Create(ctx context.Context, alert *Alert) error {
	err := r.db.QueryRow(ctx, createQuery,
		alert.UserID,
		alert.Symbol,
		alert.TargetPrice,
		alert.Direction,
		alert.CreatedAt,
	).Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		return errors.Wrap(errors.StorageFailure, err, "create alert")
	}

	r.logger.InfoContext(ctx, "Created alert",
		logger.Field{Key: "alertId", Value: alert.ID},
		logger.Field{Key: "symbol", Value: alert.Symbol},
	)

	return nil
}

// ListFor lists a user's alerts, newest first.
func (r *repository) ListFor(ctx context.Context, filter Filter) ([]*Alert, error) {
	query := fmt.Sprintf("SELECT %s FROM price_alerts WHERE user_id = $1", columns)
	args := []any{filter.UserID}

	if filter.Symbol != "" {
		args = append(args, filter.Symbol)
		query += fmt.Sprintf(" AND symbol = $%d", len(args))
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "list alerts")
	}
	defer rows.Close()

	alerts, err := scanAlerts(rows)
	if err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "list alerts")
	}

	return alerts, nil
}

// Evaluate flips every matching untriggered alert in one statement.
func (r *repository) Evaluate(ctx context.Context, symbol string, price decimal.Decimal, now time.Time) ([]*Alert, error) {
	rows, err := r.db.Query(ctx, evaluateQuery, symbol, price, now)
	if err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "evaluate alerts")
	}
	defer rows.Close()

	triggered, err := scanAlerts(rows)
	if err != nil {
		return nil, errors.Wrap(errors.StorageFailure, err, "evaluate alerts")
	}

	if len(triggered) > 0 {
		r.logger.InfoContext(ctx, "Triggered alerts",
			logger.Field{Key: "symbol", Value: symbol},
			logger.Field{Key: "price", Value: price.String()},
			logger.Field{Key: "count", Value: len(triggered)},
		)
	}

	return triggered, nil
}

// Delete removes an alert owned by userID.
func (r *repository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, deleteQuery, id, userID)
	if err != nil {
		return false, errors.Wrap(errors.StorageFailure, err, "delete alert")
	}

	return cmd.RowsAffected() > 0, nil
}

func scanAlerts(rows postgresql.RowsInterface) ([]*Alert, error) {
	alerts := make([]*Alert, 0)
	for rows.Next() {
		a := &Alert{}
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Symbol,
			&a.TargetPrice,
			&a.Direction,
			&a.Triggered,
			&a.CreatedAt,
			&a.TriggeredAt,
		); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, rows.Err()
}
