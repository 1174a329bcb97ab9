package errors

import (
	"net/http"

	"billmap/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches errors by business error code, so a copy carrying details still
// matches its predefined value.
func (e *BaseError) Is(target error) bool {
	var other *BaseError
	if !errors.As(target, &other) {
		return false
	}

	return e.errorCode == other.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Ingestion-related errors
	ErrUnsupportedFormat = NewBaseError(
		http.StatusUnsupportedMediaType,
		"UNSUPPORTED_FORMAT",
		"Format fișier neacceptat. Folosește .csv, .xlsx sau .xls.",
		"",
	)

	ErrNoUsableRows = NewBaseError(
		http.StatusUnprocessableEntity,
		"NO_USABLE_ROWS",
		"Nu s-au găsit rânduri cu coordonate sau adresă validă.",
		"",
	)

	// Proximity-related errors
	ErrNoReference = NewBaseError(
		http.StatusConflict,
		"NO_REFERENCE",
		"Nu există o locație de referință activă.",
		"",
	)

	ErrItemNotFound = NewBaseError(
		http.StatusNotFound,
		"ITEM_NOT_FOUND",
		"Panoul cerut nu există în inventar.",
		"",
	)

	ErrRadiusOutOfRange = NewBaseError(
		http.StatusBadRequest,
		"RADIUS_OUT_OF_RANGE",
		"Radius în afara intervalului permis.",
		"",
	)

	// Availability-related errors
	ErrInvalidDateRange = NewBaseError(
		http.StatusBadRequest,
		"INVALID_DATE_RANGE",
		"Interval de date invalid.",
		"",
	)

	// Export-related errors
	ErrNothingToExport = NewBaseError(
		http.StatusConflict,
		"NOTHING_TO_EXPORT",
		"Nu există date de exportat pentru selecția curentă.",
		"",
	)

	ErrNoOriginalWorkbook = NewBaseError(
		http.StatusConflict,
		"NO_ORIGINAL_WORKBOOK",
		"Nu există un fișier Excel importat pentru re-export.",
		"",
	)

	// Search-related errors
	ErrEmptyQuery = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_QUERY",
		"Interogare de căutare goală.",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Datele de intrare nu au trecut validarea.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Eroare internă de sistem.",
		"",
	)
)

// ProviderError represents a mapping provider failure, implementing the
// AppError interface. Provider failures never abort a whole batch; they are
// surfaced as status to the operator.
type ProviderError struct {
	err     error
	details string
}

// NewProviderError creates a mapping-provider-related error
func NewProviderError(err error, details string) AppError {
	return &ProviderError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return errors.Wrap(e.err, "mapping provider request failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *ProviderError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *ProviderError) ErrorCode() string {
	return "PROVIDER_FAILURE"
}

// Message returns the user-friendly error message
func (e *ProviderError) Message() string {
	return "Eroare la furnizorul de hărți. Verifică cheia API."
}

// Details returns detailed error information
func (e *ProviderError) Details() string {
	return e.details
}
