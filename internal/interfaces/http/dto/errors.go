package dto

import "net/http"

// Standard error codes used across all API endpoints
const (
	// General errors
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"

	// Validation errors
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeBadRequest         = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput       = "ERR_INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"

	// Concurrency errors
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	// Business rule errors
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"

	// Sync errors
	ErrCodeSyncInProgress = "ERR_SYNC_IN_PROGRESS"
	ErrCodeFeedFetch      = "ERR_FEED_FETCH"

	// Rate limiting
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeInvalidInput:       http.StatusBadRequest,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeBusinessRule: http.StatusUnprocessableEntity,

	ErrCodeSyncInProgress: http.StatusConflict,
	ErrCodeFeedFetch:      http.StatusBadGateway,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain-level error codes to standard API codes.
// Domain errors carry codes like PRODUCT_NOT_FOUND or SKU_TAKEN; the API
// surface exposes the normalized ERR_* vocabulary while keeping the domain
// message intact.
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"PRODUCT_NOT_FOUND":     ErrCodeNotFound,
	"CATEGORY_NOT_FOUND":    ErrCodeNotFound,
	"IMAGE_NOT_FOUND":       ErrCodeNotFound,
	"OBJECT_NOT_FOUND":      ErrCodeNotFound,
	"BACKUP_NOT_FOUND":      ErrCodeNotFound,
	"SYNC_RUN_NOT_FOUND":    ErrCodeNotFound,
	"NEWS_POST_NOT_FOUND":   ErrCodeNotFound,
	"OPPORTUNITY_NOT_FOUND": ErrCodeNotFound,

	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"SKU_TAKEN":            ErrCodeConflict,
	"SKU_ALREADY_ASSIGNED": ErrCodeConflict,
	"SLUG_TAKEN":           ErrCodeConflict,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"SYNC_IN_PROGRESS":     ErrCodeSyncInProgress,

	"MISSING_SKU":              ErrCodeInvalidState,
	"GALLERY_FULL":             ErrCodeBusinessRule,
	"FILE_TOO_LARGE":           ErrCodeBusinessRule,
	"CONTENT_TYPE_NOT_ALLOWED": ErrCodeInvalidInput,

	"INVALID_NAME":     ErrCodeInvalidInput,
	"INVALID_SKU":      ErrCodeInvalidInput,
	"INVALID_TITLE":    ErrCodeInvalidInput,
	"INVALID_SLUG":     ErrCodeInvalidInput,
	"INVALID_WINDOW":   ErrCodeInvalidInput,
	"INVALID_FEED_URL": ErrCodeInvalidInput,
	"INVALID_LIMIT":    ErrCodeInvalidInput,
	"INVALID_FIELD":    ErrCodeInvalidInput,

	"FEED_FETCH_FAILED": ErrCodeFeedFetch,
	"FEED_PARSE_FAILED": ErrCodeFeedFetch,
}

// NormalizeErrorCode converts a domain error code to a standard API code.
// Codes already in the ERR_* vocabulary pass through unchanged; unknown
// codes fall back to ERR_INTERNAL.
func NormalizeErrorCode(code string) string {
	if _, ok := ErrorCodeHTTPStatus[code]; ok {
		return code
	}
	if mapped, ok := LegacyErrorCodeMapping[code]; ok {
		return mapped
	}
	return ErrCodeInternal
}
