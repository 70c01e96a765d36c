package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - match with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrValidation       = errors.New("validation failed")
	ErrReferenceInvalid = errors.New("invalid reference")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrStorage          = errors.New("storage failure")
	ErrConflict         = errors.New("conflict")
)

// Domain error types implementing HTTPError
type (
	// NotFoundError indicates the entity id does not resolve
	NotFoundError struct {
		Resource string
		ID       int64
	}

	// ForbiddenError indicates the entity exists but the requester does not own it
	ForbiddenError struct {
		Resource string
		ID       int64
		Reason   string
	}

	// ValidationError indicates invalid input (blank names, unknown block types, bad batches)
	ValidationError struct {
		Message string
	}

	// ReferenceError indicates a folder reference that is missing or owned by someone else
	ReferenceError struct {
		Field string
		ID    int64
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ConflictError indicates a unique value (username, email) is already taken
	ConflictError struct {
		Resource string
		Field    string
		Value    string
	}

	// StorageError wraps a backend failure; the transaction has been rolled back
	StorageError struct {
		Op  string
		Err error
	}
)

func NewNotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewForbidden(resource string, id int64, reason string) error {
	return &ForbiddenError{Resource: resource, ID: id, Reason: reason}
}

func NewValidation(message string) error {
	return &ValidationError{Message: message}
}

func NewReferenceInvalid(field string, id int64) error {
	return &ReferenceError{Field: field, ID: id}
}

func NewConflict(resource, field, value string) error {
	return &ConflictError{Resource: resource, Field: field, Value: value}
}

func NewStorage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Error implementations
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d: not found", e.Resource, e.ID)
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("access denied to %s %d", e.Resource, e.ID)
	}
	return fmt.Sprintf("access denied to %s %d: %s", e.Resource, e.ID, e.Reason)
}

func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("invalid %s %d", e.Field, e.ID)
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s %q is already taken", e.Resource, e.Field, e.Value)
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is implementations (errors.Is against sentinels)
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ForbiddenError) Is(target error) bool    { return target == ErrForbidden }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *ReferenceError) Is(target error) bool    { return target == ErrReferenceInvalid }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *StorageError) Is(target error) bool      { return target == ErrStorage }
func (e *ConflictError) Is(target error) bool     { return target == ErrConflict }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *ReferenceError) StatusCode() int    { return http.StatusUnprocessableEntity }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *StorageError) StatusCode() int      { return http.StatusInternalServerError }
func (e *ConflictError) StatusCode() int     { return http.StatusConflict }
