package domain

import "errors"

var (
	// ErrValidation marks input rejected before any I/O. Wrap it with the
	// user-facing reason: fmt.Errorf("%w: prompt is required", ErrValidation).
	ErrValidation  = errors.New("validation failed")
	ErrPersistence = errors.New("persistence failure")
)

// ValidationMessage returns the user-facing part of a wrapped validation error.
func ValidationMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
