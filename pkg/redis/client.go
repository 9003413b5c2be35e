package redis

import (
	"context"
	"math"
	"math/rand/v2"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type client struct {
	logger    logger.Interface
	config    *Config
	universal redis.UniversalClient
}

// NewClient creates a new Redis client with the provided logger and configuration.
// No connection is made until Connect.
func NewClient(log logger.Interface, config *Config) Client {
	return &client{
		logger: log,
		config: config,
	}
}

func configError(message string) error {
	return errors.NewErrorDetails(message, errors.RedisConfigError, "connect")
}

func (c *client) Connect(ctx context.Context) error {
	if c.config == nil {
		return configError("Redis config is nil")
	}
	if err := c.config.Validate(); err != nil {
		return err
	}

	var universal redis.UniversalClient
	switch c.config.Mode {
	case Cluster:
		universal = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:           c.config.Addrs,
			Username:        c.config.Username,
			Password:        c.config.Password,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	default:
		universal = redis.NewClient(&redis.Options{
			Addr:            c.config.Addrs[0],
			Username:        c.config.Username,
			Password:        c.config.Password,
			DB:              c.config.DB,
			MaxRetries:      c.config.MaxRetries,
			MinRetryBackoff: c.config.MinRetryBackoff,
			MaxRetryBackoff: c.config.MaxRetryBackoff,
			DialTimeout:     c.config.ConnectTimeout,
			ReadTimeout:     c.config.ConnectTimeout,
			WriteTimeout:    c.config.ConnectTimeout,
			PoolSize:        c.config.PoolSize,
			MinIdleConns:    c.config.MinIdleConns,
			ConnMaxIdleTime: c.config.ConnMaxIdleTime,
			PoolTimeout:     c.config.PoolTimeout,
		})
	}

	if err := universal.Ping(ctx).Err(); err != nil {
		_ = universal.Close()
		details := errors.NewErrorDetails("Failed to connect to Redis", errors.RedisConnectionError, "connect")
		details.Err = err
		return details
	}

	if c.universal != nil {
		_ = c.universal.Close()
	}
	c.universal = universal
	return nil
}

// Reconnect retries Connect with exponential backoff plus jitter, capped at
// MaxRetryBackoff, and reports whether a connection was established.
func (c *client) Reconnect(ctx context.Context) bool {
	baseDelay := c.config.MinRetryBackoff
	maxDelay := c.config.MaxRetryBackoff

	for i := range c.config.ReconnectMaxRetries {
		backoff := min(baseDelay*time.Duration(math.Pow(2, float64(i))), maxDelay)
		jitter := time.Duration(rand.Int64N(int64(baseDelay) + 1))
		totalDelay := backoff + jitter

		c.logger.Info("Reconnecting to Redis",
			logger.Field{Key: "attempt", Value: i + 1},
			logger.Field{Key: "delay", Value: totalDelay.String()},
		)

		select {
		case <-ctx.Done():
			c.logger.Warn("Reconnect cancelled", logger.Field{Key: "reason", Value: ctx.Err().Error()})
			return false
		case <-time.After(totalDelay):
		}

		connectCtx, cancel := context.WithTimeout(ctx, c.config.ConnectTimeout)
		err := c.Connect(connectCtx)
		cancel()
		if err == nil {
			c.logger.Info("Reconnected to Redis", logger.Field{Key: "attempt", Value: i + 1})
			return true
		}

		c.logger.Error(errors.TracerFromError(err), logger.Field{Key: "attempt", Value: i + 1})
	}

	return false
}

func (c *client) Disconnect(ctx context.Context) error {
	if c.universal == nil {
		return nil
	}
	if err := c.universal.Close(); err != nil {
		details := errors.NewErrorDetails("Failed to close Redis client", errors.RedisDisconnectionError, "disconnect")
		details.Err = err
		return details
	}
	c.universal = nil
	return nil
}

func (c *client) Ping(ctx context.Context) error {
	if c.universal == nil {
		return errors.NewErrorDetails("Redis is not connected", errors.RedisPingError, "ping")
	}
	if err := c.universal.Ping(ctx).Err(); err != nil {
		details := errors.NewErrorDetails("Failed to ping Redis", errors.RedisPingError, "ping")
		details.Err = err
		return details
	}
	return nil
}

func (c *client) Publish(ctx context.Context, channel string, message any) (int64, error) {
	if c.universal == nil {
		return 0, errors.NewErrorDetails("Redis is not connected", errors.RedisPublishError, "publish")
	}

	receivers, err := c.universal.Publish(ctx, channel, message).Result()
	if err != nil {
		details := errors.NewErrorDetails("Failed to publish message to Redis", errors.RedisPublishError, "publish")
		details.Err = err
		return 0, details
	}
	return receivers, nil
}
