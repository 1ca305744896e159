package domain

import (
	"fmt"
	"strings"
)

// FormatError reports a mortality table whose shape or values cannot be used.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "mortality table format: " + e.Reason
}

// NewFormatError builds a FormatError from a format string.
func NewFormatError(format string, args ...any) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// RangeError reports an age, term or entry age outside the populated table domain.
type RangeError struct {
	Field  string
	Value  any
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s=%v out of range: %s", e.Field, e.Value, e.Reason)
}

// NewRangeError builds a RangeError for field.
func NewRangeError(field string, value any, format string, args ...any) *RangeError {
	return &RangeError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// ParameterError reports an invalid scalar parameter such as radix, pct, m or moment.
type ParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}

// NewParameterError builds a ParameterError for field.
func NewParameterError(field string, value any, format string, args ...any) *ParameterError {
	return &ParameterError{Field: field, Value: value, Reason: fmt.Sprintf(format, args...)}
}

// ValidationError aggregates every violation found while validating one call.
// errors.Is and errors.As see each violation through Unwrap.
type ValidationError struct {
	Violations []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(e.Violations), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Violations
}

// Violations collects errors and turns them into a *ValidationError.
type Violations []error

// Add appends err when it is not nil.
func (v *Violations) Add(err error) {
	if err != nil {
		*v = append(*v, err)
	}
}

// Err returns nil when nothing was collected.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Violations: append([]error(nil), v...)}
}
