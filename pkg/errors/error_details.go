package errors

import "fmt"

// ErrorDetails is a machine-checkable rejection: a human message plus the
// code callers branch on and the field the rejection refers to.
type ErrorDetails struct {
	Message string
	Code    string
	Field   string
}

// NewErrorDetails creates an ErrorDetails.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

func (e *ErrorDetails) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrorCodeEquals reports whether err is an ErrorDetails with the given code.
func ErrorCodeEquals(err error, code string) bool {
	details, ok := err.(*ErrorDetails)
	return ok && details.Code == code
}
