package price

import (
	"context"

	priceInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// Usecase is the read side of the price cache and its serving path.
// Writes go through the ingest pipeline so alerts see every price.
type Usecase interface {
	Get(ctx context.Context, symbol string) (*priceInfra.Quote, error)
	// GetFresh returns nil, nil when the symbol is absent or older than the freshness window.
	GetFresh(ctx context.Context, symbol string) (*priceInfra.Quote, error)
	// GetQuote answers from the fresh cache, then a live fetch, then the stale cache.
	GetQuote(ctx context.Context, symbol string) (*ServedQuote, error)
}
