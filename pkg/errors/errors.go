// Package errors provides custom error types for the taxsync system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// As is an alias for the standard library errors.As.
var As = errors.As

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// Common sentinel errors for the taxsync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates that the upstream API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstreamUnavailable indicates that the upstream repository is temporarily unavailable
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrUnsupportedFormat indicates that a file's content could not be recognized
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrSchemaInference indicates that required columns could not be located
	ErrSchemaInference = errors.New("schema inference failed")
)

// TransportError represents a failure talking to the upstream repository:
// a non-2xx status, a timeout, or a connection failure.
type TransportError struct {
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("transport error from %s: %s", e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrUpstreamUnavailable
	}
	return false
}

// NewTransportError creates a new TransportError
func NewTransportError(endpoint string, statusCode int, message string) *TransportError {
	return &TransportError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
	}
}

// FormatError represents input text that is neither a recognized delimited
// format nor valid JSON.
type FormatError struct {
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *FormatError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("format error in %s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("format error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// NewFormatError creates a new FormatError
func NewFormatError(file, message string, err error) *FormatError {
	return &FormatError{File: file, Message: message, Err: err}
}

// SchemaInferenceError represents a dataset whose id or label columns could
// not be located among the accepted alias sets.
type SchemaInferenceError struct {
	Field   string
	Columns []string
}

// Error implements the error interface
func (e *SchemaInferenceError) Error() string {
	if len(e.Columns) > 0 {
		return fmt.Sprintf("could not infer %s column from headers %v", e.Field, e.Columns)
	}
	return fmt.Sprintf("could not infer %s column", e.Field)
}

// Is implements errors.Is support
func (e *SchemaInferenceError) Is(target error) bool {
	return target == ErrSchemaInference
}

// NewSchemaInferenceError creates a new SchemaInferenceError
func NewSchemaInferenceError(field string, columns []string) *SchemaInferenceError {
	return &SchemaInferenceError{Field: field, Columns: columns}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// SyncError represents a branch-level failure during a catalog sync run.
type SyncError struct {
	Branch string // "2.x" or "3.x"
	Stage  string // "locate", "download", "parse", "normalize", "persist"
	Err    error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	return fmt.Sprintf("sync error on %s branch during %s: %v", e.Branch, e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError
func NewSyncError(branch, stage string, err error) *SyncError {
	return &SyncError{Branch: branch, Stage: stage, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsUnsupportedFormat checks if an error is a format detection failure
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// IsSchemaInference checks if an error is a schema inference failure
func IsSchemaInference(err error) bool {
	return errors.Is(err, ErrSchemaInference)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapTransport wraps an error as a TransportError
func WrapTransport(endpoint string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}

// WrapSync wraps an error as a SyncError
func WrapSync(branch, stage string, err error) error {
	if err == nil {
		return nil
	}
	return NewSyncError(branch, stage, err)
}
