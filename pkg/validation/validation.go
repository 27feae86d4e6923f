// Package validation provides structured input validation shared by all
// calculators. A failed validation enumerates every violated field rather
// than stopping at the first.
package validation

import (
	"fmt"
	"strings"

	"github.com/carmarket-ro/costengine/pkg/mathutil"
)

// FieldError describes one violated constraint on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every field violation found while validating one
// parameter set. It satisfies the error interface; a nil *Errors or one
// with no entries means the input is valid.
type Errors struct {
	Fields []FieldError `json:"fields"`
}

// Add records a violation for the named field.
func (e *Errors) Add(field, format string, args ...interface{}) {
	e.Fields = append(e.Fields, FieldError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any violation was recorded.
func (e *Errors) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Err returns the collector as an error, or nil when no violation was
// recorded. Callers should always return the result of Err rather than the
// collector itself so valid inputs produce an untyped nil.
func (e *Errors) Err() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *Errors) Error() string {
	if !e.HasErrors() {
		return "validation passed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RequireFinite records a violation unless the value is a finite number.
func (e *Errors) RequireFinite(field string, value float64) bool {
	if !mathutil.IsFinite(value) {
		e.Add(field, "must be a finite number")
		return false
	}
	return true
}

// RequirePositive records a violation unless the value is finite and
// strictly positive.
func (e *Errors) RequirePositive(field string, value float64) {
	if !e.RequireFinite(field, value) {
		return
	}
	if value <= 0 {
		e.Add(field, "must be greater than 0, got %v", value)
	}
}

// RequireNonNegative records a violation unless the value is finite and
// greater than or equal to zero.
func (e *Errors) RequireNonNegative(field string, value float64) {
	if !e.RequireFinite(field, value) {
		return
	}
	if value < 0 {
		e.Add(field, "must not be negative, got %v", value)
	}
}

// RequireIntRange records a violation unless min <= value <= max.
func (e *Errors) RequireIntRange(field string, value, min, max int) {
	if value < min || value > max {
		e.Add(field, "must be between %d and %d, got %d", min, max, value)
	}
}

// RequireAtMost records a violation unless value <= limit. The limit is
// described by limitField in the message.
func (e *Errors) RequireAtMost(field string, value, limit float64, limitField string) {
	if !e.RequireFinite(field, value) {
		return
	}
	if value > limit {
		e.Add(field, "must not exceed %s (%v), got %v", limitField, limit, value)
	}
}
