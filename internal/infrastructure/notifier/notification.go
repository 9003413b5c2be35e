// Package notifier delivers newly triggered alerts to the outside world.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert"
	"github.com/shopspring/decimal"
)

// Notification is one triggered alert together with the price that crossed it.
type Notification struct {
	AlertID      int64           `json:"alertId"`
	UserID       int64           `json:"userId"`
	Symbol       string          `json:"symbol"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Direction    alert.Direction `json:"direction"`
	TargetPrice  decimal.Decimal `json:"targetPrice"`
	TriggeredAt  time.Time       `json:"triggeredAt"`
	Message      string          `json:"message"`
}

// NewNotification builds the notification for an alert that current just crossed.
func NewNotification(a *alert.Alert, current decimal.Decimal) Notification {
	n := Notification{
		AlertID:      a.ID,
		UserID:       a.UserID,
		Symbol:       a.Symbol,
		CurrentPrice: current,
		Direction:    a.Direction,
		TargetPrice:  a.TargetPrice,
	}
	if a.TriggeredAt != nil {
		n.TriggeredAt = *a.TriggeredAt
	}
	n.Message = n.Text()
	return n
}

// Text renders the human readable alert.
func (n Notification) Text() string {
	return fmt.Sprintf("Stock Alert: %s is at $%s\nTarget: $%s\nPrice is now %s target!",
		n.Symbol,
		n.CurrentPrice.StringFixed(2),
		n.TargetPrice.StringFixed(2),
		n.Direction,
	)
}

// Bytes is the JSON wire form shared by the Redis and Kafka channels.
func (n Notification) Bytes() []byte {
	b, _ := json.Marshal(n)
	return b
}

// Notifier delivers a notification over one channel.
//
//go:generate mockgen -source notification.go -destination=mock/notifier_mock.go -package=notifier_mock
type Notifier interface {
	Name() string
	Notify(ctx context.Context, n Notification) error
}
