package alert

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of the target price that fires an alert.
type Direction string

const (
	// DirectionAbove fires when the price moves strictly above the target.
	DirectionAbove Direction = "above"
	// DirectionBelow fires when the price moves strictly below the target.
	DirectionBelow Direction = "below"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == DirectionAbove || d == DirectionBelow
}

// Crossed reports whether price satisfies the condition for target. The
// comparison is strict, so a price equal to the target never fires.
func (d Direction) Crossed(price, target decimal.Decimal) bool {
	switch d {
	case DirectionAbove:
		return price.GreaterThan(target)
	case DirectionBelow:
		return price.LessThan(target)
	default:
		return false
	}
}

// Alert is a user's price condition on one symbol. Triggered flips from
// false to true exactly once and never reverts.
type Alert struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Symbol      string          `json:"symbol"`
	TargetPrice decimal.Decimal `json:"targetPrice"`
	Direction   Direction       `json:"direction"`
	Triggered   bool            `json:"triggered"`
	CreatedAt   time.Time       `json:"createdAt"`
	TriggeredAt *time.Time      `json:"triggeredAt,omitempty"`
}

// Filter narrows ListFor. An empty Symbol matches every symbol.
type Filter struct {
	UserID int64
	Symbol string
}
