package alert

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// AlertRepository persists alert conditions.
type AlertRepository interface {
	// Create stores a new untriggered alert and fills ID and CreatedAt.
	Create(ctx context.Context, alert *Alert) error
	// ListFor returns alerts newest first.
	ListFor(ctx context.Context, filter Filter) ([]*Alert, error)
	// Evaluate atomically marks every untriggered alert on symbol whose
	// condition holds at price as triggered at now, and returns exactly the
	// alerts that this call flipped.
	Evaluate(ctx context.Context, symbol string, price decimal.Decimal, now time.Time) ([]*Alert, error)
	// Delete removes one of the user's alerts and reports whether it existed.
	Delete(ctx context.Context, userID, id int64) (bool, error)
}
