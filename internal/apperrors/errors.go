package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError rejects a request before any write is performed.
// The message is surfaced verbatim to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validationf builds a ValidationError from a format string
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a record is absent or belongs to another company
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ConflictError blocks a mutation that would violate cross-document rules
// (duplicate bill, delete with dependent records). No partial mutation happens.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func Conflictf(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// PreconditionError rejects a request before business logic runs
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// ErrNoCompany is returned when a tenant-scoped operation runs without a selected company
var ErrNoCompany = &PreconditionError{Message: "Please select a company first"}

// HTTPStatus maps a taxonomy error to its response status code
func HTTPStatus(err error) int {
	var ve *ValidationError
	var nf *NotFoundError
	var ce *ConflictError
	var pe *PreconditionError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &ce):
		return http.StatusConflict
	case errors.As(err, &pe):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
