package redis

import (
	"context"
)

// Client is the subset of Redis used for fanning out alert notifications.
//
//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock
type Client interface {
	Connect(ctx context.Context) error
	Reconnect(ctx context.Context) bool
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error

	// Publish sends message on channel and returns the number of subscribers that received it.
	Publish(ctx context.Context, channel string, message any) (int64, error)
}
