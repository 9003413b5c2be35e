package price

import (
	priceInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
)

// Origin says which step of the serving path produced a quote.
type Origin string

const (
	OriginCache Origin = "cache"
	OriginLive  Origin = "live"
	OriginStale Origin = "stale"
)

// ServedQuote is a quote as returned to a dashboard reader.
type ServedQuote struct {
	priceInfra.Quote
	Stale  bool   `json:"stale"`
	Origin Origin `json:"origin"`
}
