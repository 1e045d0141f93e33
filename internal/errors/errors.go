// Package errors provides custom error types for the Moneta API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Record lookup errors.
var (
	ErrCostNotFound       = &AppError{Code: "COST_NOT_FOUND", Message: "Cost not found", StatusCode: http.StatusNotFound}
	ErrExpenseNotFound    = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrInvestmentNotFound = &AppError{Code: "INVESTMENT_NOT_FOUND", Message: "Investment not found", StatusCode: http.StatusNotFound}
)

// Duplicate-submission errors, raised by the pre-insert duplicate checks.
var (
	ErrDuplicateCost       = &AppError{Code: "DUPLICATE_COST", Message: "A cost with this type and date already exists", StatusCode: http.StatusConflict}
	ErrDuplicateExpense    = &AppError{Code: "DUPLICATE_EXPENSE", Message: "An identical expense already exists", StatusCode: http.StatusConflict}
	ErrDuplicateInvestment = &AppError{Code: "DUPLICATE_INVESTMENT", Message: "This position already exists for the broker", StatusCode: http.StatusConflict}
)

// Update and lifecycle errors.
var (
	ErrNoChange        = &AppError{Code: "NO_CHANGE_DETECTED", Message: "Update is identical to the stored record", StatusCode: http.StatusConflict}
	ErrAlreadyActive   = &AppError{Code: "ALREADY_ACTIVE", Message: "Record is already active", StatusCode: http.StatusConflict}
	ErrAlreadyInactive = &AppError{Code: "ALREADY_INACTIVE", Message: "Record is already inactive", StatusCode: http.StatusConflict}
)
