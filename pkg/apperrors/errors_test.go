package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row not found")
	appErr := ErrNotFound(cause)

	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
	assert.ErrorIs(t, appErr, cause)
}

func TestAsExtractsAppError(t *testing.T) {
	var appErr *AppError
	require.True(t, As(ErrStaleSuggestion, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)

	assert.False(t, As(errors.New("plain"), &appErr))
}

func TestDomainErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected int
	}{
		{"stale suggestion", ErrStaleSuggestion, http.StatusConflict},
		{"essay too short", ErrEssayTooShort, http.StatusBadRequest},
		{"analysis throttled", ErrAnalysisThrottled, http.StatusTooManyRequests},
		{"ai rate limited", ErrAIRateLimited, http.StatusTooManyRequests},
		{"ai credits", ErrAICreditsRequired, http.StatusPaymentRequired},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"account not approved", ErrAccountNotApproved, http.StatusForbidden},
		{"cannot modify self", ErrCannotModifySelf, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.HTTPCode)
		})
	}
}

func TestErrAIGatewayWraps(t *testing.T) {
	cause := errors.New("connection refused")
	appErr := ErrAIGateway(cause)

	assert.Equal(t, http.StatusBadGateway, appErr.HTTPCode)
	assert.ErrorIs(t, appErr, cause)
}

func TestIsPermissionDenied(t *testing.T) {
	assert.True(t, IsPermissionDenied(errors.New("ERROR: permission denied for table users")))
	assert.True(t, IsPermissionDenied(errors.New("new row violates row-level security policy")))
	assert.False(t, IsPermissionDenied(errors.New("syntax error")))
	assert.False(t, IsPermissionDenied(nil))
}

func TestErrBadRequest(t *testing.T) {
	appErr := ErrBadRequest("A DOCX file is required", nil)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	assert.Equal(t, "A DOCX file is required", appErr.Message)

	cause := errors.New("multipart: no such file")
	wrapped := ErrBadRequest("bad upload", cause)
	assert.ErrorIs(t, wrapped, cause)
}
