package usecases

import "errors"

var (
	// ErrValidation marks a missing or malformed field. FieldError
	// wraps it with the field name.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials covers both unknown username and wrong
	// password; callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrDuplicateUser is returned when username or email is taken.
	ErrDuplicateUser = errors.New("username or email already taken")
)

// FieldError is a validation failure on a single form field so the
// display layer can re-render that field with a message.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

func (e *FieldError) Unwrap() error { return ErrValidation }

func newFieldError(field, message string) error {
	return &FieldError{Field: field, Message: message}
}
