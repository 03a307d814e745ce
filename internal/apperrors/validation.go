package apperrors

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// fieldMessages holds the inline messages shown next to form fields.
var fieldMessages = map[string]string{
	"subject":     "Por favor selecciona una materia",
	"captcha":     "Por favor completa el CAPTCHA",
	"email":       "Por favor ingresa un correo electrónico válido",
	"password":    "La contraseña debe tener al menos 6 caracteres",
	"name":        "El nombre es obligatorio",
	"reasons":     "Selecciona al menos un motivo",
	"confirmName": "El nombre ingresado no coincide",
	"biography":   "La biografía es obligatoria",
	"subjects":    "Debe seleccionar al menos una materia",
}

// Validation converts a binding error into a VALIDATION_FAILED error with
// one message per offending field.
func Validation(err error) *AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrValidationFailed.WithError(err)
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		if msg, ok := fieldMessages[field]; ok {
			details[field] = msg
			continue
		}
		switch fe.Tag() {
		case "min", "max", "gte", "lte":
			details[field] = "El valor debe estar entre 1 y 5"
		default:
			details[field] = "Campo inválido"
		}
	}
	return ErrValidationFailed.WithDetails(details).WithError(err)
}

// Field builds a VALIDATION_FAILED error for a single field.
func Field(field, message string) *AppError {
	return ErrValidationFailed.WithDetails(map[string]string{field: message})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
