package price

import "context"

//go:generate mockgen -source=interface.go -destination=mock/repository_mock.go -package=mock

// PriceRepository stores the latest quote per symbol.
type PriceRepository interface {
	// Get returns nil, nil when the symbol has never been stored.
	Get(ctx context.Context, symbol string) (*Quote, error)
	Upsert(ctx context.Context, quote *Quote) error
}
