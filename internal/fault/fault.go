// Package fault defines the error taxonomy shared across the service:
// validation failures, record-store schema problems, missing records and
// upstream collaborator failures. Handlers map these onto HTTP statuses.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals that no intake record matches the business key.
	// It is an expected outcome, not an exceptional one.
	ErrNotFound = errors.New("record not found")

	// ErrNoLabels signals that every label in a batch failed to generate.
	ErrNoLabels = errors.New("no labels generated")
)

// ValidationError reports malformed caller input. Never retried.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// Validation builds a field-specific ValidationError.
func Validation(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// SchemaError reports that the record store's column layout is missing a
// required column. The observed headers are carried for diagnosability.
type SchemaError struct {
	Missing string
	Headers []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s column not found; headers seen: %s", e.Missing, strings.Join(e.Headers, ", "))
}

// UpstreamError reports a failed call to an external collaborator
// (record store, archive store, merge service, image generator).
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream wraps err as an UpstreamError for the named operation.
func Upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}
