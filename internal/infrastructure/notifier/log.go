package notifier

import (
	"context"

	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
)

// LogNotifier writes notifications to the application log. It is the
// console channel and is always enabled.
type LogNotifier struct {
	logger logger.Interface
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger logger.Interface) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Name() string { return "log" }

func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.logger.InfoContext(ctx, "ALERT: "+n.Message,
		logger.Field{Key: "alertId", Value: n.AlertID},
		logger.Field{Key: "userId", Value: n.UserID},
		logger.Field{Key: "symbol", Value: n.Symbol},
	)
	return nil
}
