package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested quote or slot does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the change collides with existing state, such as a duplicate id.
	ErrConflict = errors.New("conflict")

	// ErrValidation indicates user input or an imported record was rejected.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates the remote endpoint or a storage backend cannot be reached.
	ErrUnavailable = errors.New("unavailable")

	// ErrCorrupt indicates persisted content could not be decoded.
	ErrCorrupt = errors.New("corrupt data")
)

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError describes a state collision.
type ConflictError struct {
	Entity string
	Reason string
	ID     string
}

func (e *ConflictError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s conflict: %s (id %s)", e.Entity, e.Reason, e.ID)
	}

	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// NewConflictError creates a conflict error.
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}

// NewDuplicateIDError reports that a quote id is already present in the collection.
func NewDuplicateIDError(id string) error {
	return &ConflictError{Entity: "quote", Reason: "duplicate id", ID: id}
}

// ValidationError describes rejected input.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error that carries the offending value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// UnavailableError names the dependency that could not be reached.
type UnavailableError struct {
	Service string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// CorruptDataError reports a storage slot whose content could not be decoded.
type CorruptDataError struct {
	Slot  string
	Cause error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("slot %q holds corrupt data: %v", e.Slot, e.Cause)
}

// Unwrap exposes both the sentinel and the decode error.
func (e *CorruptDataError) Unwrap() []error {
	return []error{ErrCorrupt, e.Cause}
}

// NewCorruptDataError creates a corrupt data error.
func NewCorruptDataError(slot string, cause error) error {
	return &CorruptDataError{Slot: slot, Cause: cause}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
