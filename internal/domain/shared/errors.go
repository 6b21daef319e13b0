package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
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

// NewDomainErrorWithDetails creates a domain error carrying a structured payload,
// e.g. the list of items that could not be fulfilled.
func NewDomainErrorWithDetails(code, message string, details any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// ErrorCode returns the domain error code for err, or empty if err is not a DomainError
func ErrorCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ""
}

// Error codes used across the domain
const (
	CodeNotFound               = "NOT_FOUND"
	CodeAlreadyExists          = "ALREADY_EXISTS"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeInvalidState           = "INVALID_STATE"
	CodeInvalidQuantity        = "INVALID_QUANTITY"
	CodeInvalidDate            = "INVALID_DATE"
	CodeInvalidShippingCost    = "INVALID_SHIPPING_COST"
	CodeInsufficientInventory  = "INSUFFICIENT_INVENTORY"
	CodeValidationAggregate    = "VALIDATION_AGGREGATE"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
)

// Common domain errors
var (
	ErrNotFound               = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists          = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput           = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState           = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrConcurrentModification = NewDomainError(CodeConcurrentModification, "Resource was modified by another process")
)
