package bridge

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateType is returned when a type is registered twice.
	ErrDuplicateType = errors.New("type is already registered")
	// ErrUnregistered is returned when no codec exists for a type.
	ErrUnregistered = errors.New("type is not registered")
)

// ValidationError is returned by a field read when its fallback decided the
// backing data cannot provide a sane value.
type ValidationError struct {
	// Type is the name the owning object was bound with.
	Type string
	// Field is the key of the field that failed.
	Field   string
	Message string
	Err     error
}

// Invalid creates a ValidationError for use inside fallbacks. The owning
// type and field are filled in by the field that runs the fallback.
func Invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Type != "" && e.Field != "":
		return fmt.Sprintf("%s.%s: %s", e.Type, e.Field, msg)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, msg)
	default:
		return msg
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
