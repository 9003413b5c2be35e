package redis

import (
	"context"
	"testing"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestConnect_InvalidConfig(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		message string
	}{
		{
			name:    "no addresses",
			mutate:  func(c *Config) { c.Addrs = nil },
			message: "Redis addresses are empty",
		},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Mode = "sentinel" },
			message: "Invalid Redis mode",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.ConnectTimeout = 0 },
			message: "Invalid Redis connect timeout",
		},
		{
			name:    "backoff inverted",
			mutate:  func(c *Config) { c.MinRetryBackoff = 5 * time.Second },
			message: "Invalid Redis retry backoff",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)

			err := NewClient(logger.NewNop(), cfg).Connect(context.Background())
			assert.EqualError(t, err, tc.message)
			assert.True(t, errors.HasCode(err, errors.RedisConfigError))
		})
	}
}

func TestConnect_NilConfig(t *testing.T) {
	err := NewClient(logger.NewNop(), nil).Connect(context.Background())
	assert.True(t, errors.HasCode(err, errors.RedisConfigError))
}

func TestPublish_NotConnected(t *testing.T) {
	c := NewClient(logger.NewNop(), DefaultConfig())

	_, err := c.Publish(context.Background(), "alerts", "payload")
	assert.True(t, errors.HasCode(err, errors.RedisPublishError))
	assert.True(t, errors.HasCode(c.Ping(context.Background()), errors.RedisPingError))
	assert.NoError(t, c.Disconnect(context.Background()))
}

func TestReconnect_Cancelled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRetryBackoff = time.Second
	cfg.MaxRetryBackoff = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, NewClient(logger.NewNop(), cfg).Reconnect(ctx))
}
