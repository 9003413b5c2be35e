package util

import (
	"context"
)

type key string

const (
	userIDKey = key("x-user-id")
	sourceKey = key("price-source")
)

// WithUserID returns a context carrying the id of the signed-in user.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserID returns the user id from context.
// ok is false when the caller is anonymous.
func GetUserID(ctx context.Context) (id int64, ok bool) {
	id, ok = ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithSource tags ctx with the ingestion path that produced a price ("poll", "push", "serve").
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetSource returns the ingestion path tag, or "" when not present.
func GetSource(ctx context.Context) string {
	s, _ := ctx.Value(sourceKey).(string)
	return s
}
