package price

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the latest observed price for one symbol. There is at most one
// Quote per symbol; a newer write replaces the row regardless of ObservedAt.
type Quote struct {
	Symbol     string          `json:"symbol"`
	Price      decimal.Decimal `json:"price"`
	Volume     int64           `json:"volume"`
	ObservedAt time.Time       `json:"observedAt"`
}

// Age returns how old the quote is at now.
func (q *Quote) Age(now time.Time) time.Duration {
	return now.Sub(q.ObservedAt)
}

// IsFresh reports whether the quote is no older than window at now.
func (q *Quote) IsFresh(now time.Time, window time.Duration) bool {
	return q.Age(now) <= window
}
