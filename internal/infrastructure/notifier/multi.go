package notifier

import (
	"context"
	stderrors "errors"

	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
)

// Multi fans a notification out to every channel. A failing channel does not
// stop delivery to the others; all failures are joined.
type Multi struct {
	notifiers []Notifier
	logger    logger.Interface
}

// NewMulti creates a fan-out notifier.
func NewMulti(logger logger.Interface, notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers, logger: logger}
}

func (m *Multi) Name() string { return "multi" }

func (m *Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			m.logger.WarnContext(ctx, "Alert delivery failed",
				logger.Field{Key: "notifier", Value: notifier.Name()},
				logger.Field{Key: "alertId", Value: n.AlertID},
				logger.Field{Key: "error", Value: err.Error()},
			)
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
