package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorCode string

const (
	CodeNetwork            ErrorCode = "NETWORK_ERROR"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeIdentityUnresolved ErrorCode = "IDENTITY_UNRESOLVED"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeConflict           ErrorCode = "CONFLICT"
	CodeRateLimited        ErrorCode = "RATE_LIMITED"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// AppError is the error shape every handler responds with.
type AppError struct {
	Code     ErrorCode         `json:"code"`
	Message  string            `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
	Err      error             `json:"-"`
	HTTPCode int               `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, HTTPCode: httpCode}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPCode: httpCode}
}

// WithDetails returns a copy so the shared sentinels stay untouched.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

func (e *AppError) WithError(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// Is matches on code, so wrapped copies compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrNetwork            = New(CodeNetwork, "Error de conexión con el servidor. Intenta nuevamente.", http.StatusBadGateway)
	ErrValidationFailed   = New(CodeValidationFailed, "Revisa los datos del formulario", http.StatusBadRequest)
	ErrIdentityUnresolved = New(CodeIdentityUnresolved, "No se pudo verificar tu identidad. Desactiva bloqueadores e intenta nuevamente.", http.StatusBadRequest)
	ErrUnauthorized       = New(CodeUnauthorized, "No autorizado", http.StatusUnauthorized)
	ErrNotFound           = New(CodeNotFound, "Recurso no encontrado", http.StatusNotFound)
	ErrConflict           = New(CodeConflict, "Ya realizaste esta acción", http.StatusConflict)
	ErrRateLimited        = New(CodeRateLimited, "Demasiadas solicitudes, espera un momento", http.StatusTooManyRequests)
	ErrInternal           = New(CodeInternal, "Un error desconocido ocurrió", http.StatusInternalServerError)
)

// Respond writes err as JSON and aborts the gin chain. Errors that are not
// an *AppError are reported as internal errors.
func Respond(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = ErrInternal.WithError(err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.HTTPCode, appErr)
}
