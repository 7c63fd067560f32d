// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors for better error handling and API responses

package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// SourceUnavailableError represents a single adapter call that failed or
// timed out. Isolated to one adapter/affiliate pair; never fails a job.
type SourceUnavailableError struct {
	Source    string
	Affiliate string
	Err       error
}

// Error implements the error interface
func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source %s unavailable for %s: %v", e.Source, e.Affiliate, e.Err)
}

// Unwrap returns the underlying cause
func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// ReportWriteError represents a report artifact that could not be
// written. Fails the whole job: a job without artifacts is not useful.
type ReportWriteError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *ReportWriteError) Error() string {
	return fmt.Sprintf("failed to write report %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause
func (e *ReportWriteError) Unwrap() error {
	return e.Err
}

// ConflictError represents a request that is valid but cannot be served
// in the resource's current state (e.g. downloading reports for a job
// that has not completed).
type ConflictError struct {
	Resource string
	Message  string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Message)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsSourceUnavailable checks if an error is a SourceUnavailableError
func IsSourceUnavailable(err error) bool {
	var srcErr *SourceUnavailableError
	return errors.As(err, &srcErr)
}

// IsReportWrite checks if an error is a ReportWriteError
func IsReportWrite(err error) bool {
	var writeErr *ReportWriteError
	return errors.As(err, &writeErr)
}

// IsConflict checks if an error is a ConflictError
func IsConflict(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
