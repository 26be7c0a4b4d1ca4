package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/duynhne/catalog-service/internal/core/domain"
)

// MinPasswordLength is the shortest accepted password, in characters.
const MinPasswordLength = 6

const (
	msgRegisterRequired   = "Todos los campos son requeridos"
	msgCreateUserRequired = "Número, nombre, apellido y contraseña son requeridos"
	msgUserFieldsEmpty    = "Número, nombre y apellido no pueden estar vacíos"
	msgPasswordTooShort   = "La contraseña debe tener al menos 6 caracteres"
	msgPasswordTooLong    = "La contraseña no puede superar los 72 bytes"
	msgLoginRequired      = "Número y contraseña son requeridos"
	msgNameRequired       = "El nombre es requerido"
	msgProductRequired    = "Nombre y precio son requeridos"
	msgCategoryNotFound   = "Categoría no encontrada"
)

// passwordRules mirrors the contrasena tag of domain.RegisterRequest.
const passwordRules = "min=6,maxbytes=72"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// maxbytes bounds the encoded length; bcrypt reads at most 72 bytes.
	if err := v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	}); err != nil {
		panic(err)
	}
	return v
}

// checkRequest validates req against its validate tags. A missing required
// field, or a failure with no message of its own, reports fallbackMsg.
func checkRequest(req any, fallbackMsg string) error {
	return translate(validate.Struct(req), fallbackMsg)
}

func validatePassword(password string) error {
	return translate(validate.Var(password, passwordRules), msgPasswordTooShort)
}

func translate(err error, fallbackMsg string) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate request: %w", err)
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return invalid(fallbackMsg)
		}
	}

	switch fieldErrs[0].Tag() {
	case "maxbytes":
		return invalid(msgPasswordTooLong)
	case "min":
		if field := fieldErrs[0].Field(); field == "" || field == "Contrasena" {
			return invalid(msgPasswordTooShort)
		}
	}
	return invalid(fallbackMsg)
}

// validateNewUser checks a full user record; requiredMsg is reported when any
// field is empty.
func validateNewUser(req domain.RegisterRequest, requiredMsg string) error {
	return checkRequest(req, requiredMsg)
}
