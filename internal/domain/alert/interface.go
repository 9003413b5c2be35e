package alert

import (
	"context"

	alertInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// Usecase manages user alert conditions.
type Usecase interface {
	Create(ctx context.Context, alert *alertInfra.Alert) error
	ListFor(ctx context.Context, filter alertInfra.Filter) ([]*alertInfra.Alert, error)
	Evaluate(ctx context.Context, symbol string, price decimal.Decimal) ([]*alertInfra.Alert, error)
	Delete(ctx context.Context, userID, id int64) error
}
