package portfolio

import (
	holdingInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/holding"
	"github.com/shopspring/decimal"
)

// Valuation is a position priced at the latest served quote. The price
// fields are nil when no quote could be obtained for the symbol.
type Valuation struct {
	holdingInfra.Position
	CostBasis    decimal.Decimal  `json:"costBasis"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
	MarketValue  *decimal.Decimal `json:"marketValue,omitempty"`
	GainLoss     *decimal.Decimal `json:"gainLoss,omitempty"`
	GainLossPct  *decimal.Decimal `json:"gainLossPct,omitempty"`
	Stale        bool             `json:"stale"`
}

// Summary totals the valued positions. Unpriced positions are listed but
// excluded from every total.
type Summary struct {
	Positions        []*Valuation    `json:"positions"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	TotalGainLoss    decimal.Decimal `json:"totalGainLoss"`
	TotalGainLossPct decimal.Decimal `json:"totalGainLossPct"`
}
