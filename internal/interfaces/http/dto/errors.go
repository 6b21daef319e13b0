package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeValidation   = "ERR_VALIDATION"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState          = "ERR_INVALID_STATE"
	ErrCodeInvalidQuantity       = "ERR_INVALID_QUANTITY"
	ErrCodeInvalidDate           = "ERR_INVALID_DATE"
	ErrCodeInvalidShippingCost   = "ERR_INVALID_SHIPPING_COST"
	ErrCodeInsufficientInventory = "ERR_INSUFFICIENT_INVENTORY"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	ErrCodeInvalidState:          http.StatusUnprocessableEntity,
	ErrCodeInvalidQuantity:       http.StatusUnprocessableEntity,
	ErrCodeInvalidDate:           http.StatusUnprocessableEntity,
	ErrCodeInvalidShippingCost:   http.StatusUnprocessableEntity,
	ErrCodeInsufficientInventory: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to API error codes
var domainErrorCodeMapping = map[string]string{
	"NOT_FOUND":               ErrCodeNotFound,
	"ALREADY_EXISTS":          ErrCodeAlreadyExists,
	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_STATE":           ErrCodeInvalidState,
	"INVALID_QUANTITY":        ErrCodeInvalidQuantity,
	"INVALID_DATE":            ErrCodeInvalidDate,
	"INVALID_SHIPPING_COST":   ErrCodeInvalidShippingCost,
	"INSUFFICIENT_INVENTORY":  ErrCodeInsufficientInventory,
	"VALIDATION_AGGREGATE":    ErrCodeValidation,
	"CONCURRENT_MODIFICATION": ErrCodeConflict,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := domainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
