package errors

import "fmt"

// ConfigFormatError reports a configuration draft that does not parse as a JSON object.
type ConfigFormatError struct {
	message string
}

func (v *ConfigFormatError) Error() string {
	return v.message
}

func ConfigFormatErrorf(format string, args ...any) *ConfigFormatError {
	return &ConfigFormatError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &ConfigFormatError{}
