package errors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// StackTracer is implemented by errors created or wrapped by github.com/pkg/errors.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// ErrorTracer pairs a message with a cause that always has a stack attached,
// so the logger can print where a failure started.
type ErrorTracer struct {
	Message string
	Err     error
}

// TracerFromError wraps err, reusing the deepest stack already in its chain.
// A nil err yields nil.
func TracerFromError(err error) *ErrorTracer {
	if err == nil {
		return nil
	}
	return (&ErrorTracer{Message: err.Error()}).Wrap(err)
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// Wrap sets err as the cause, recording a stack here when nothing in the
// chain carries one.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	var st StackTracer
	if stderrors.As(err, &st) {
		e.Err = err
	} else {
		e.Err = errors.WithStack(err)
	}
	return e
}

// StackTrace returns the first stack found in the cause chain.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	var st StackTracer
	if e.Err != nil && stderrors.As(e.Err, &st) {
		return st.StackTrace()
	}
	return nil
}
