package errors

import "fmt"

// RegistryError is a non-success response from the tool registry. The message
// is the backend's own wording and is shown to the operator as is.
type RegistryError struct {
	StatusCode int
	message    string
}

func (v *RegistryError) Error() string {
	return v.message
}

func RegistryErrorf(status int, format string, args ...any) *RegistryError {
	return &RegistryError{
		StatusCode: status,
		message:    fmt.Sprintf(format, args...),
	}
}

var _ error = &RegistryError{}
