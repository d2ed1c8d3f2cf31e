package errors

import "fmt"

// ParameterFormatError reports operator-typed execution parameters that are not valid JSON.
type ParameterFormatError struct {
	message string
}

func (v *ParameterFormatError) Error() string {
	return v.message
}

func ParameterFormatErrorf(format string, args ...any) *ParameterFormatError {
	return &ParameterFormatError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &ParameterFormatError{}
