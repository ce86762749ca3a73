package errors

import "github.com/pkg/errors"

// StackTracer is satisfied by errors that carry a captured call stack.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// ErrorTracer pairs a short message, usually an error code, with a wrapped
// cause. The cause always carries a stack so the logger can attach one
// stacktrace per error regardless of where it originated.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates an ErrorTracer with no cause yet; chain Wrap to attach one.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{Message: message}
}

// TracerFromError wraps an existing error, using its text as the message.
func TracerFromError(err error) *ErrorTracer {
	return NewTracer(err.Error()).Wrap(err)
}

// Wrap attaches err as the cause, capturing a stack if err has none.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	if _, ok := err.(StackTracer); ok {
		e.Err = err
	} else {
		e.Err = errors.WithStack(err)
	}
	return e
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// StackTrace returns the cause's stack, or nil when nothing is wrapped.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if cause, ok := e.Err.(StackTracer); ok {
		return cause.StackTrace()
	}
	return nil
}
