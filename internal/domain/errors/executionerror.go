package errors

import "fmt"

// ExecutionError carries the registry's message for a failed tool execution.
type ExecutionError struct {
	message string
}

func (v *ExecutionError) Error() string {
	return v.message
}

func ExecutionErrorf(format string, args ...any) *ExecutionError {
	return &ExecutionError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &ExecutionError{}
