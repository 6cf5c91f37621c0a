package catalog

import "errors"

var (
	ErrNotFound      = errors.New("cabin not found")
	ErrDuplicateSlug = errors.New("slug already in use")
	ErrValidation    = errors.New("validation error")
)

// ValidationError lists the offending fields of a cabin form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return ErrValidation.Error() }

func (e *ValidationError) Unwrap() error { return ErrValidation }
