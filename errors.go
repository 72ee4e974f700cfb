package strata

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("strata: entity not found")

	// ErrNotSingular is returned when a query that expects exactly one result
	// returns zero or multiple results.
	ErrNotSingular = errors.New("strata: entity not singular")

	// ErrInvalidMode is returned when a connection mode is empty or unknown.
	ErrInvalidMode = errors.New("strata: invalid connection mode")

	// ErrMissingConfig is returned when the configuration for a requested
	// connection mode is absent or malformed.
	ErrMissingConfig = errors.New("strata: missing connection config")

	// ErrMapping is returned when a property or column is referenced that the
	// mapping descriptor does not know about.
	ErrMapping = errors.New("strata: mapping error")
)

// NotFoundError represents an error when an entity is not found.
type NotFoundError struct {
	label string
	id    any // Optional: the key that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("strata: %s not found (id=%v)", e.label, e.id)
	}
	return fmt.Sprintf("strata: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the entity label.
func (e *NotFoundError) Label() string {
	return e.label
}

// ID returns the key that was searched for, if available.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given entity type.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the key that was searched for.
func NewNotFoundErrorWithID(label string, id any) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// MaskNotFound masks not found errors to nil. Useful for optional lookups
// where absence is a valid outcome.
func MaskNotFound(err error) error {
	if IsNotFound(err) {
		return nil
	}
	return err
}

// NotSingularError represents an error when a query expects a singular result
// but receives zero or multiple results.
type NotSingularError struct {
	label string
	count int // Number of results returned (-1 if unknown)
}

// Error returns the error string.
func (e *NotSingularError) Error() string {
	if e.count >= 0 {
		return fmt.Sprintf("strata: %s not singular (got %d results, expected 1)", e.label, e.count)
	}
	return fmt.Sprintf("strata: %s not singular", e.label)
}

// Is reports whether the target error matches NotSingularError.
func (e *NotSingularError) Is(err error) bool {
	return err == ErrNotSingular
}

// Label returns the entity label.
func (e *NotSingularError) Label() string {
	return e.label
}

// Count returns the number of results, or -1 if unknown.
func (e *NotSingularError) Count() int {
	return e.count
}

// NewNotSingularError returns a new NotSingularError for the given entity type.
func NewNotSingularError(label string) *NotSingularError {
	return &NotSingularError{label: label, count: -1}
}

// NewNotSingularErrorWithCount returns a new NotSingularError with the result count.
func NewNotSingularErrorWithCount(label string, count int) *NotSingularError {
	return &NotSingularError{label: label, count: count}
}

// IsNotSingular returns true if the error is a NotSingularError.
func IsNotSingular(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSingularError
	return errors.As(err, &e) || errors.Is(err, ErrNotSingular)
}

// InvalidModeError is returned when a requested connection mode is empty or
// not one of the two recognized modes ("read", "write").
type InvalidModeError struct {
	Mode string
}

// Error returns the error string.
func (e *InvalidModeError) Error() string {
	if e.Mode == "" {
		return "strata: invalid connection mode: mode is empty"
	}
	return fmt.Sprintf("strata: invalid connection mode %q", e.Mode)
}

// Is reports whether the target error matches InvalidModeError.
// This allows errors.Is(err, ErrInvalidMode) to return true.
func (e *InvalidModeError) Is(err error) bool {
	return err == ErrInvalidMode
}

// NewInvalidModeError returns a new InvalidModeError for the given mode.
func NewInvalidModeError(mode string) *InvalidModeError {
	return &InvalidModeError{Mode: mode}
}

// IsInvalidMode returns true if the error is an InvalidModeError.
func IsInvalidMode(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidModeError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidMode)
}

// MissingConfigError is returned when the configuration for a requested
// connection mode is absent, or present but missing required fields.
// It is raised eagerly, never deferred to query time.
type MissingConfigError struct {
	Mode   string
	Reason string
}

// Error returns the error string.
func (e *MissingConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("strata: missing config for mode %q: %s", e.Mode, e.Reason)
	}
	return fmt.Sprintf("strata: missing config for mode %q", e.Mode)
}

// Is reports whether the target error matches MissingConfigError.
func (e *MissingConfigError) Is(err error) bool {
	return err == ErrMissingConfig
}

// NewMissingConfigError returns a new MissingConfigError for the given mode.
func NewMissingConfigError(mode, reason string) *MissingConfigError {
	return &MissingConfigError{Mode: mode, Reason: reason}
}

// IsMissingConfig returns true if the error is a MissingConfigError.
func IsMissingConfig(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingConfigError
	return errors.As(err, &e) || errors.Is(err, ErrMissingConfig)
}

// MappingError is returned when a referenced property has no corresponding
// column, or vice versa. It indicates a programming or configuration error
// and is raised at descriptor construction or lookup, never at query time.
type MappingError struct {
	Label string // Entity label, if known
	Name  string // The offending property or column name
	Hint  string // Optional detail about what went wrong
}

// Error returns the error string.
func (e *MappingError) Error() string {
	switch {
	case e.Label != "" && e.Hint != "":
		return fmt.Sprintf("strata: mapping %s: %q: %s", e.Label, e.Name, e.Hint)
	case e.Label != "":
		return fmt.Sprintf("strata: mapping %s: unknown name %q", e.Label, e.Name)
	case e.Hint != "":
		return fmt.Sprintf("strata: mapping: %q: %s", e.Name, e.Hint)
	default:
		return fmt.Sprintf("strata: mapping: unknown name %q", e.Name)
	}
}

// Is reports whether the target error matches MappingError.
func (e *MappingError) Is(err error) bool {
	return err == ErrMapping
}

// NewMappingError returns a new MappingError for the given name.
func NewMappingError(label, name, hint string) *MappingError {
	return &MappingError{Label: label, Name: name, Hint: hint}
}

// IsMapping returns true if the error is a MappingError.
func IsMapping(err error) bool {
	if err == nil {
		return false
	}
	var e *MappingError
	return errors.As(err, &e) || errors.Is(err, ErrMapping)
}

// ExecutionError is returned when the underlying database rejected or failed
// a statement (syntax, constraint, connectivity). It always wraps the
// original driver error; no retry or reinterpretation is performed.
type ExecutionError struct {
	Query string // The statement text that failed
	cause error
}

// Error returns the error string.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("strata: execution failed: %v", e.cause)
}

// Unwrap returns the original driver error.
func (e *ExecutionError) Unwrap() error {
	return e.cause
}

// NewExecutionError returns a new ExecutionError wrapping the given cause.
func NewExecutionError(query string, cause error) *ExecutionError {
	return &ExecutionError{Query: query, cause: cause}
}

// IsExecution returns true if the error is an ExecutionError.
func IsExecution(err error) bool {
	if err == nil {
		return false
	}
	var e *ExecutionError
	return errors.As(err, &e)
}

// ConstraintError represents a database constraint violation error.
type ConstraintError struct {
	msg  string
	wrap error
}

// Error returns the error string.
func (e ConstraintError) Error() string {
	return fmt.Sprintf("strata: constraint failed: %s", e.msg)
}

// Unwrap returns the underlying error.
func (e ConstraintError) Unwrap() error {
	return e.wrap
}

// NewConstraintError returns a new ConstraintError with the given message.
func NewConstraintError(msg string, wrap error) error {
	return ConstraintError{msg: msg, wrap: wrap}
}

// IsConstraintError returns true if the error is a ConstraintError.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e ConstraintError
	return errors.As(err, &e)
}
