package errors

import "fmt"

// NotFoundError is returned when the registry answers 404, e.g. for a tool
// that has no stored configuration yet.
type NotFoundError struct {
	message string
}

func (v *NotFoundError) Error() string {
	return v.message
}

func NotFoundErrorf(format string, args ...any) *NotFoundError {
	return &NotFoundError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &NotFoundError{}
