package catalog

import "fmt"

// ParseError is returned when the catalog document is not well-formed markup.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse version catalog: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldError is returned when a well-formed document lacks a field
// the launcher depends on.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("version catalog has no %s element", e.Field)
}
