package service

import (
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/fittrack/internal/error_values"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		// Free text rendered on a single report line: printable, no line breaks
		validate.RegisterValidation("single_line", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if strings.ContainsAny(value, "\r\n") {
				return false
			}
			for _, char := range value {
				if !unicode.IsPrint(char) {
					return false
				}
			}
			return true
		})
	})
}

// validateStruct joins every field error under ErrValidation.
func validateStruct(s any) error {
	InitValidator()
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		err = errorvalues.ErrValidation
		for _, fieldErr := range validationErrors {
			err = errors.Join(err, fieldErr)
		}
		return err
	}
	return errors.New("validation unexpected error: " + err.Error())
}
