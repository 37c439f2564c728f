// Package errors provides the error kinds used across sepdpc.
// Every kind supports errors.Is against a sentinel so callers can branch on
// the category without caring about the concrete type.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are the standard library functions, re-exported so callers
// need a single errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Sentinel errors for the sepdpc system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that a repository or input failed validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariant indicates an internal consistency check failed
	ErrInvariant = errors.New("invariant violation")

	// ErrRemote indicates a failed call against the remote catalog
	ErrRemote = errors.New("remote call failed")

	// ErrUnauthorized indicates the remote rejected the credentials
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationKind names the repository invariant a ValidationError violates.
type ValidationKind string

const (
	// KindDuplicateDomain means two domains share a name.
	KindDuplicateDomain ValidationKind = "duplicate_domain"
	// KindMissingDomain means a product references a domain that is not defined.
	KindMissingDomain ValidationKind = "missing_domain"
	// KindDuplicateProduct means two products share a name.
	KindDuplicateProduct ValidationKind = "duplicate_product"
)

// ValidationError represents a repository that breaks one of its invariants.
type ValidationError struct {
	Kind    ValidationKind
	Names   []string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Names) > 0 {
		return fmt.Sprintf("validation failed (%s): %s: %s", e.Kind, e.Message, strings.Join(e.Names, ", "))
	}
	if e.Kind != "" {
		return fmt.Sprintf("validation failed (%s): %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(kind ValidationKind, message string, names ...string) *ValidationError {
	return &ValidationError{Kind: kind, Message: message, Names: names}
}

// InvariantError signals a broken internal assumption. It indicates a bug,
// never a user mistake, and is not recoverable.
type InvariantError struct {
	Component string
	Message   string
}

// Error implements the error interface
func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Component, e.Message)
}

// Is implements errors.Is support
func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

// NewInvariantError creates a new InvariantError
func NewInvariantError(component, message string) *InvariantError {
	return &InvariantError{Component: component, Message: message}
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// AlreadyExistsError represents an error when a resource already exists
type AlreadyExistsError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(resource, id string) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: resource, ID: id}
}

// APIError represents a failed round-trip to the remote catalog
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error on %s %s (status %d): %s", e.Method, e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error on %s %s: %s", e.Method, e.Endpoint, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if target == ErrRemote {
		return true
	}
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 404:
		return target == ErrNotFound
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(method, endpoint string, statusCode int, message string) *APIError {
	return &APIError{
		Method:     method,
		Endpoint:   endpoint,
		StatusCode: statusCode,
		Message:    message,
	}
}

// StepError reports the publish step and entity a remote mutation failed on.
// Steps that completed before it are not rolled back.
type StepError struct {
	Step   string
	Entity string
	Err    error
}

// Error implements the error interface
func (e *StepError) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("publish step %s failed on %s: %v", e.Step, e.Entity, e.Err)
	}
	return fmt.Sprintf("publish step %s failed: %v", e.Step, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StepError) Unwrap() error {
	return e.Err
}

// NewStepError creates a new StepError
func NewStepError(step, entity string, err error) *StepError {
	return &StepError{Step: step, Entity: entity, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	msg := "configuration error: " + e.Message
	if e.Component != "" {
		msg = fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "mkdir", "stat"
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

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvariant checks if an error is an internal invariant violation
func IsInvariant(err error) bool {
	return errors.Is(err, ErrInvariant)
}

// IsRemote checks if an error came from the remote transport
func IsRemote(err error) bool {
	return errors.Is(err, ErrRemote)
}

// IsUnauthorized checks if the remote rejected the credentials
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapAPI wraps a transport failure as an APIError
func WrapAPI(method, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Method:   method,
		Endpoint: endpoint,
		Message:  err.Error(),
		Err:      err,
	}
}
