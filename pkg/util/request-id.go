package util

import (
	"context"

	"github.com/google/uuid"
)

const requestIDKey = key("x-request-id")

// WithRequestID returns a context with request id.
// A new uuid is generated when id is empty.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = NewRequestID()
	}

	return context.WithValue(ctx, requestIDKey, id)
}

// NewRequestID returns a uuid-v4 string to use as request id
func NewRequestID() string {
	return uuid.NewString()
}

// GetRequestID returns request id from context, or "" when not present.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
