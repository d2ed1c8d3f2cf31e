package errors

import "fmt"

// ConfigSaveError carries the registry's message for a rejected configuration save.
type ConfigSaveError struct {
	message string
}

func (v *ConfigSaveError) Error() string {
	return v.message
}

func ConfigSaveErrorf(format string, args ...any) *ConfigSaveError {
	return &ConfigSaveError{
		message: fmt.Sprintf(format, args...),
	}
}

var _ error = &ConfigSaveError{}
