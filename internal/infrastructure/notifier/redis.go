package notifier

import (
	"context"

	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/redis"
)

// RedisNotifier publishes notifications on a pub/sub channel.
type RedisNotifier struct {
	client  redis.Client
	channel string
	logger  logger.Interface
}

// NewRedisNotifier creates a RedisNotifier. The client must already be connected.
func NewRedisNotifier(client redis.Client, channel string, logger logger.Interface) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel, logger: logger}
}

func (r *RedisNotifier) Name() string { return "redis" }

func (r *RedisNotifier) Notify(ctx context.Context, n Notification) error {
	receivers, err := r.client.Publish(ctx, r.channel, n.Bytes())
	if err != nil {
		return errors.Wrap(errors.NotifierPublishError, err, "publish alert to redis")
	}

	r.logger.DebugContext(ctx, "Published alert",
		logger.Field{Key: "channel", Value: r.channel},
		logger.Field{Key: "alertId", Value: n.AlertID},
		logger.Field{Key: "receivers", Value: receivers},
	)
	return nil
}
