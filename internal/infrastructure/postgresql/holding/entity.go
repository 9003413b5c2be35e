package holding

import (
	"time"

	"github.com/shopspring/decimal"
)

// WatchlistItem marks a symbol a user follows. Unique per (UserID, Symbol).
type WatchlistItem struct {
	ID      int64     `json:"id"`
	UserID  int64     `json:"userId"`
	Symbol  string    `json:"symbol"`
	AddedAt time.Time `json:"addedAt"`
}

// Position is one simulated purchase lot.
type Position struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	Symbol        string          `json:"symbol"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	PurchasedAt   time.Time       `json:"purchasedAt"`
}

// CostBasis is shares times purchase price.
func (p *Position) CostBasis() decimal.Decimal {
	return p.Shares.Mul(p.PurchasePrice)
}
