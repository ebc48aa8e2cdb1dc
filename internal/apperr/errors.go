// Package apperr defines the error kinds returned by the ledgers and the
// review workflow. Every error here is raised before any state is mutated.
package apperr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports bad input shape or range. It is shown to the caller
// as-is and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid returns a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// CapacityExceededError reports that a change would push an allocation total
// past its cap. It is also a *ValidationError for errors.As.
type CapacityExceededError struct {
	ValidationError

	// Resource is "rent" or "utilities".
	Resource string

	// Limit is the cap, Current is the total before the change (excluding the
	// entity being edited) and Attempted is the value being added.
	Limit     decimal.Decimal
	Current   decimal.Decimal
	Attempted decimal.Decimal
}

// Exceeds returns how far over the cap the attempted change would land.
func (e *CapacityExceededError) Exceeds() decimal.Decimal {
	return e.Current.Add(e.Attempted).Sub(e.Limit)
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s: adding %s to current %s would exceed limit %s by %s",
		e.Field, e.Attempted, e.Current, e.Limit, e.Exceeds())
}

// As lets errors.As match *ValidationError.
func (e *CapacityExceededError) As(target any) bool {
	if v, ok := target.(**ValidationError); ok {
		*v = &e.ValidationError
		return true
	}
	return false
}

// CapacityExceeded builds a CapacityExceededError.
func CapacityExceeded(field, resource string, limit, current, attempted decimal.Decimal) error {
	return &CapacityExceededError{
		ValidationError: ValidationError{Field: field, Message: resource + " capacity exceeded"},
		Resource:        resource,
		Limit:           limit,
		Current:         current,
		Attempted:       attempted,
	}
}

// NotFoundError reports a referenced ID that does not exist. Mutating calls
// treat unknown IDs as no-ops; only explicit lookups return this.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// NotFound returns a NotFoundError.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ConflictError reports a transition that the current state does not allow.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Conflict returns a ConflictError.
func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is or wraps a ValidationError, including
// capacity errors.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsCapacity reports whether err is or wraps a CapacityExceededError.
func IsCapacity(err error) bool {
	var c *CapacityExceededError
	return errors.As(err, &c)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

// IsConflict reports whether err is or wraps a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// Kind returns a short label for err, used for metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsCapacity(err):
		return "capacity"
	case IsValidation(err):
		return "validation"
	case IsNotFound(err):
		return "not_found"
	case IsConflict(err):
		return "conflict"
	default:
		return "internal"
	}
}
