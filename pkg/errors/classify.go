package errors

import stderrors "errors"

// New returns a traced error carrying code.
func New(code ErrorCode, message string) error {
	return TracerFromError(NewErrorDetails(message, code, ""))
}

// Wrap returns a traced error carrying code whose cause is err.
func Wrap(code ErrorCode, err error, message string) error {
	details := NewErrorDetails(message, code, "")
	details.Err = err
	return TracerFromError(details)
}

// CodeOf returns the first ErrorCode found in the chain of err, or "" when
// none of the wrapped errors carries one.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}

	var details *ErrorDetails
	if stderrors.As(err, &details) {
		return ErrorCode(details.Code)
	}

	var base *BaseError
	if stderrors.As(err, &base) && base.HasDetails() {
		return ErrorCode(base.GetDetails()[0].Code)
	}

	return ""
}

// HasCode reports whether err carries code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsRetryable reports whether the market data failure may succeed on a later attempt.
func IsRetryable(err error) bool {
	switch CodeOf(err) {
	case QuoteRateLimited, QuoteTransient:
		return true
	default:
		return false
	}
}
