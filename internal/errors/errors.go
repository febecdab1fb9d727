// Package errors provides the application error taxonomy for the finance API.
// Services return *AppError values so that handlers can render a consistent
// JSON body without leaking persistence details to clients.
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

// Is reports whether target carries the same code, so wrapped copies of a
// sentinel still match it with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

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
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "wrong password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrUnavailable    = &AppError{Code: "SERVICE_UNAVAILABLE", Message: "Service unavailable", StatusCode: http.StatusServiceUnavailable}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "user not found", StatusCode: http.StatusUnauthorized}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "email already in use", StatusCode: http.StatusBadRequest}
)

// Taxonomy errors.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrSubcategoryNotFound = &AppError{Code: "SUBCATEGORY_NOT_FOUND", Message: "Subcategory not found", StatusCode: http.StatusNotFound}
	ErrSubcategoryNotOwned = &AppError{Code: "SUBCATEGORY_NOT_OWNED", Message: "subcategory not found or not owned", StatusCode: http.StatusForbidden}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrInvalidInstallments    = &AppError{Code: "INVALID_INSTALLMENTS", Message: "invalid installment count", StatusCode: http.StatusBadRequest}
	ErrBatchCreateFailed      = &AppError{Code: "BATCH_CREATE_FAILED", Message: "batch creation failed", StatusCode: http.StatusInternalServerError}
	ErrNotRecurring           = &AppError{Code: "NOT_RECURRING", Message: "not a recurring transaction: cannot apply to future", StatusCode: http.StatusBadRequest}
	ErrCutoffDateRequired     = &AppError{Code: "CUTOFF_DATE_REQUIRED", Message: "cutoff date required", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound  = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrDuplicateBudget = &AppError{Code: "DUPLICATE_BUDGET", Message: "a budget already exists for this category and month", StatusCode: http.StatusBadRequest}
)

// Goal errors.
var (
	ErrGoalNotFound = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
)

// Report errors.
var (
	ErrNoTransactionsFound     = &AppError{Code: "NO_TRANSACTIONS_FOUND", Message: "no transactions found for these filters", StatusCode: http.StatusNotFound}
	ErrReportGenerationFailed  = &AppError{Code: "REPORT_GENERATION_FAILED", Message: "failed to generate the PDF report", StatusCode: http.StatusInternalServerError}
	ErrReportDeliveryFailed    = &AppError{Code: "REPORT_DELIVERY_FAILED", Message: "failed to send the report email", StatusCode: http.StatusInternalServerError}
	ErrReportMailNotConfigured = &AppError{Code: "REPORT_DELIVERY_FAILED", Message: "email delivery is not configured", StatusCode: http.StatusInternalServerError}
)
