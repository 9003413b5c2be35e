package quotev1

import (
	"context"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
	"github.com/muhammadchandra19/stock-sentinel/pkg/interval"
)

// Source fetches market data for a symbol. Failures carry one of the
// quote_* error codes: quote_not_found is terminal for the call,
// quote_rate_limited and quote_transient may succeed later.
//
//go:generate mockgen -source source.go -destination=mock/source_mock.go -package=quotev1_mock
type Source interface {
	Fetch(ctx context.Context, symbol string) (*price.Quote, error)
	// History returns daily bars, oldest first.
	History(ctx context.Context, symbol string) ([]interval.Bar, error)
	Overview(ctx context.Context, symbol string) (*Overview, error)
}
