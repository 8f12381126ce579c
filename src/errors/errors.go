package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios
var (
	// Validation errors
	ErrUnsupportedForm = errors.New("unsupported form")
	ErrMissingRequired = errors.New("missing required field")

	// Request file errors
	ErrUnsupportedFileType = errors.New("unsupported request file type")
	ErrUnknownField        = errors.New("unknown request field")
)

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Value != nil {
		return fmt.Sprintf("validation failed for %s (value: %v)", e.Field, e.Value)
	}
	return fmt.Sprintf("validation failed for %s", e.Field)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err carries a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUnsupportedForm checks if error indicates an unknown writing form
func IsUnsupportedForm(err error) bool {
	return errors.Is(err, ErrUnsupportedForm)
}

// WrapWithContext adds context to an error
func WrapWithContext(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
