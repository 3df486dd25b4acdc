package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	// ErrorTypeProvider covers provider denial, timeouts, transport failures
	// and unusable profiles.
	ErrorTypeProvider ErrorType = "provider"
	// ErrorTypeStore covers account and task store failures.
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeAbsentPrincipal means the request carries no usable session.
	// It is a normal outcome, not a fault.
	ErrorTypeAbsentPrincipal ErrorType = "absent_principal"
	ErrorTypeValidation      ErrorType = "validation"
	ErrorTypeInternal        ErrorType = "internal"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError of the same type.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

var (
	ErrAbsentPrincipal = NewDomainError(ErrorTypeAbsentPrincipal, "not authenticated", nil)

	ErrProviderDenied    = NewDomainError(ErrorTypeProvider, "identity provider denied authorization", nil)
	ErrProviderTransport = NewDomainError(ErrorTypeProvider, "identity provider exchange failed", nil)
	ErrInvalidProfile    = NewDomainError(ErrorTypeProvider, "identity provider returned an unusable profile", nil)
	ErrInvalidState      = NewDomainError(ErrorTypeProvider, "invalid oauth state", nil)

	ErrStoreUnavailable = NewDomainError(ErrorTypeStore, "store unavailable", nil)

	ErrInvalidInput = NewDomainError(ErrorTypeValidation, "invalid input", nil)
	ErrInternal     = NewDomainError(ErrorTypeInternal, "internal server error", nil)
)

func hasType(err error, t ErrorType) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type == t
	}
	return false
}

// IsProviderError checks if an error is a provider error
func IsProviderError(err error) bool { return hasType(err, ErrorTypeProvider) }

// IsStoreError checks if an error is a store error
func IsStoreError(err error) bool { return hasType(err, ErrorTypeStore) }

// IsAbsentPrincipal checks if an error means "no authenticated principal"
func IsAbsentPrincipal(err error) bool { return hasType(err, ErrorTypeAbsentPrincipal) }

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool { return hasType(err, ErrorTypeValidation) }

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool { return hasType(err, ErrorTypeInternal) }

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// WrapStore wraps an error as a store error
func WrapStore(message string, err error) error {
	return NewDomainError(ErrorTypeStore, message, err)
}

// WrapProvider wraps an error as a provider error
func WrapProvider(message string, err error) error {
	return NewDomainError(ErrorTypeProvider, message, err)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}
