package ingest

import (
	"context"

	alertInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert"
	priceInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
)

// Sources tag which path delivered a quote.
const (
	SourcePoll  = "poll"
	SourcePush  = "push"
	SourceServe = "serve"
)

//go:generate mockgen -source=interface.go -destination=mock/usecase_mock.go -package=mock

// Usecase is the single write path for incoming quotes: store, then
// evaluate alerts, then notify.
type Usecase interface {
	Process(ctx context.Context, source string, quote *priceInfra.Quote) ([]*alertInfra.Alert, error)
}
