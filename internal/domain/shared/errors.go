package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes used across the domain
const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeUnavailable      = "UNAVAILABLE"
	CodePersistence      = "PERSISTENCE_ERROR"
	CodeAlreadyExists    = "ALREADY_EXISTS"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeConcurrencyError = "CONCURRENCY_CONFLICT"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden           = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyError, "Resource was modified by another process")
)

// NewValidationError creates a validation error for malformed or
// out-of-range input
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewUnavailableError creates an error for an entity that exists but is
// policy-gated (e.g. a product pending approval)
func NewUnavailableError(message string) *DomainError {
	return NewDomainError(CodeUnavailable, message)
}

// NewPersistenceError wraps a storage-layer failure. The underlying cause is
// kept in the message for logging; callers treat it as opaque.
func NewPersistenceError(err error) *DomainError {
	return NewDomainError(CodePersistence, err.Error())
}
