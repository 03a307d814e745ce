package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/profescore/web/internal/apperrors"
	"github.com/profescore/web/internal/profescore"
)

func TestAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    apperrors.ErrorCode
		status  int
		message string
	}{
		{
			name:   "transport failure",
			err:    &profescore.APIError{Method: "GET", Path: "/faculties", Err: errors.New("connection refused")},
			code:   apperrors.CodeNetwork,
			status: http.StatusBadGateway,
		},
		{
			name:    "duplicate rating keeps api message",
			err:     &profescore.APIError{StatusCode: http.StatusBadRequest, Message: "Ya calificaste a este profesor"},
			code:    apperrors.CodeValidationFailed,
			status:  http.StatusBadRequest,
			message: "Ya calificaste a este profesor",
		},
		{
			name:   "forbidden",
			err:    &profescore.APIError{StatusCode: http.StatusForbidden},
			code:   apperrors.CodeUnauthorized,
			status: http.StatusUnauthorized,
		},
		{
			name:   "not found",
			err:    fmt.Errorf("wrapped: %w", &profescore.APIError{StatusCode: http.StatusNotFound}),
			code:   apperrors.CodeNotFound,
			status: http.StatusNotFound,
		},
		{
			name:   "conflict",
			err:    &profescore.APIError{StatusCode: http.StatusConflict},
			code:   apperrors.CodeConflict,
			status: http.StatusConflict,
		},
		{
			name:   "upstream 500",
			err:    &profescore.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"},
			code:   apperrors.CodeNetwork,
			status: http.StatusBadGateway,
		},
		{
			name:   "cancelled",
			err:    context.Canceled,
			code:   apperrors.CodeNetwork,
			status: http.StatusBadGateway,
		},
		{
			name:   "unknown",
			err:    errors.New("boom"),
			code:   apperrors.CodeInternal,
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apiError(tt.err)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.status, got.HTTPCode)
			if tt.message != "" {
				assert.Equal(t, tt.message, got.Message)
			}
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestAPIErrorLeavesSentinelsUntouched(t *testing.T) {
	_ = apiError(&profescore.APIError{StatusCode: http.StatusNotFound, Message: "Profesor no encontrado"})
	assert.Equal(t, "Recurso no encontrado", apperrors.ErrNotFound.Message)
}

func TestConfirmed(t *testing.T) {
	assert.True(t, confirmed("facultad de fisica", "Facultad de Física"))
	assert.True(t, confirmed("INGENIERÍA", "Ingenieria"))
	assert.False(t, confirmed("Facultad", "Facultad de Física"))
	assert.False(t, confirmed("", ""))
}
