package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithErrorCopies(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := ErrNetwork.WithError(cause)

	assert.Nil(t, ErrNetwork.Err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInternal)
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   ErrorCode
	}{
		{"app error", Field("subject", "Por favor selecciona una materia"), http.StatusBadRequest, CodeValidationFailed},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
		{"rate limited", ErrRateLimited, http.StatusTooManyRequests, CodeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tt.err)

			assert.True(t, c.IsAborted())
			require.Equal(t, tt.status, rec.Code)
			var body AppError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestValidationMessages(t *testing.T) {
	type form struct {
		Subject string `json:"subject" binding:"required"`
		General int    `json:"general" binding:"required,min=1,max=5"`
		Other   string `json:"other" binding:"required"`
	}

	err := binding.Validator.ValidateStruct(form{General: 9})
	require.Error(t, err)

	appErr := Validation(err)
	assert.Equal(t, CodeValidationFailed, appErr.Code)
	assert.Equal(t, map[string]string{
		"subject": "Por favor selecciona una materia",
		"general": "El valor debe estar entre 1 y 5",
		"other":   "Campo inválido",
	}, appErr.Details)
}

func TestValidationNonValidatorError(t *testing.T) {
	appErr := Validation(errors.New("unexpected EOF"))
	assert.Equal(t, CodeValidationFailed, appErr.Code)
	assert.Empty(t, appErr.Details)
}
