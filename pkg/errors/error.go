package errors

import (
	"bytes"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralNotFoundError represents a generic not found error.
	GeneralNotFoundError ErrorCode = "general_not_found_error"
	// GeneralUnauthorizedError represents a missing or malformed caller identity.
	GeneralUnauthorizedError ErrorCode = "general_unauthorized_error"

	// InvalidInput is returned when caller supplied data fails validation.
	InvalidInput ErrorCode = "invalid_input"
	// StorageFailure is returned when the relational store rejects or times out a statement.
	StorageFailure ErrorCode = "storage_failure"

	// QuoteNotFound means the market data source does not know the symbol. Terminal for the call.
	QuoteNotFound ErrorCode = "quote_not_found"
	// QuoteRateLimited means the market data source throttled the request. Retryable.
	QuoteRateLimited ErrorCode = "quote_rate_limited"
	// QuoteTransient covers network failures, timeouts and 5xx responses. Retryable.
	QuoteTransient ErrorCode = "quote_transient"
	// QuoteUnknown is any source failure that could not be classified.
	QuoteUnknown ErrorCode = "quote_unknown"
	// QuoteUnavailable is returned by the serving path when nothing is cached and the live fetch failed.
	QuoteUnavailable ErrorCode = "quote_unavailable"

	// NotifierPublishError represents a failure to hand an alert notification to a channel.
	NotifierPublishError ErrorCode = "notifier_publish_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)

// String returns the wire form of the code.
func (c ErrorCode) String() string {
	return string(c)
}

// BaseError is an `error` type containing an array of ErrorDetails.
// Validation collects every failing field into one BaseError so callers
// can report them together.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// HasDetails reports whether at least one detail was collected.
func (b *BaseError) HasDetails() bool {
	return len(b.details) > 0
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	for _, err := range b.details {
		buff.WriteString(err.Code)
		buff.WriteString(": ")
		buff.WriteString(err.Error())
		if err.Field != "" {
			buff.WriteString(" (field: ")
			buff.WriteString(err.Field)
			buff.WriteString(")")
		}
		buff.WriteString("; ")
	}

	return strings.TrimSuffix(strings.TrimSpace(buff.String()), ";")
}
