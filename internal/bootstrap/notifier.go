package bootstrap

import (
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/notifier"
)

// Notifier is the alert delivery fan-out.
type Notifier struct {
	Dispatcher notifier.Notifier
	Kafka      *notifier.KafkaNotifier
}

// registerNotifier always logs; Redis and Kafka join when configured.
func (b *Bootstrap) registerNotifier() {
	sinks := []notifier.Notifier{notifier.NewLogNotifier(b.Logger)}

	if b.Redis != nil {
		sinks = append(sinks, notifier.NewRedisNotifier(b.Redis, b.Config.Redis.AlertChannel, b.Logger))
	}

	if b.Config.Kafka.Enabled {
		b.Notifier.Kafka = notifier.NewKafkaNotifier(b.Config.Kafka, b.Logger)
		sinks = append(sinks, b.Notifier.Kafka)
	}

	b.Notifier.Dispatcher = notifier.NewMulti(b.Logger, sinks...)
}
