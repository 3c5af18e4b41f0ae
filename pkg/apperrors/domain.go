package apperrors

import (
	"net/http"
	"strings"
)

/*
Factories and predefined variables for domain errors shared across services.
*/

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a duplicate into a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict builds a generic 409.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrBadRequest builds a 400 with a caller-supplied message, used for
// request-shape problems outside struct validation (uploads, raw bodies).
func ErrBadRequest(message string, err error) *AppError {
	if err != nil {
		return Wrap(err, CodeValidationFailed, "request", message, http.StatusBadRequest)
	}
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

// ErrInvalidOperation builds a 400 for operations the current state forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus builds a 400 for invalid status transitions.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// --- auth and account ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"A user with this email already exists",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters",
	http.StatusBadRequest,
)

var ErrAccountNotApproved = New(
	CodeForbidden,
	"account",
	"Account is pending review",
	http.StatusForbidden,
)

var ErrAccountSuspended = New(
	CodeForbidden,
	"account",
	"Account is suspended",
	http.StatusForbidden,
)

var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- essays and suggestions ---

// ErrStaleSuggestion is returned when the essay content no longer matches the
// span the suggestion was generated against. The essay is left untouched.
var ErrStaleSuggestion = New(
	CodeConflict,
	"suggestion",
	"Suggestion no longer matches the essay content",
	http.StatusConflict,
)

var ErrEssayTooShort = New(
	CodeValidationFailed,
	"analysis",
	"Essay content is too short for analysis",
	http.StatusBadRequest,
)

var ErrAnalysisThrottled = New(
	CodeRateLimited,
	"analysis",
	"Analysis was requested too recently, try again shortly",
	http.StatusTooManyRequests,
)

var ErrAnalysisInProgress = New(
	CodeConflict,
	"analysis",
	"Analysis is already in progress for this essay",
	http.StatusConflict,
)

// --- AI gateway ---

var ErrAIRateLimited = New(
	CodeRateLimited,
	"ai",
	"AI gateway rate limit exceeded",
	http.StatusTooManyRequests,
)

var ErrAICreditsRequired = New(
	CodeCreditsRequired,
	"ai",
	"AI gateway reports insufficient credits",
	http.StatusPaymentRequired,
)

// ErrAIGateway wraps any other AI gateway failure.
func ErrAIGateway(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "ai", "AI gateway request failed", http.StatusBadGateway)
}

// --- database ---

// IsPermissionDenied reports whether a database error looks like a
// row-permission denial so it can be rewritten into an access-denied message
// instead of leaking driver text.
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "row-level security") ||
		strings.Contains(msg, "sqlstate 42501")
}

// ErrDatabase wraps a database failure, rewriting permission denials.
func ErrDatabase(err error) *AppError {
	if IsPermissionDenied(err) {
		return Wrap(err, CodeForbidden, "database", "Access denied", http.StatusForbidden)
	}
	return Wrap(err, CodeDatabaseError, "database", "Database error", http.StatusInternalServerError)
}
