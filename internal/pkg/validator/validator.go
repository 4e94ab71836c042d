package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	phoneCharsRe = regexp.MustCompile(`^[0-9+\s\-()]+$`)
	nonDigitRe   = regexp.MustCompile(`\D`)
)

const minPhoneDigits = 8

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("mgphone", validatePhone)
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// IsPhone проверяет номер телефона: цифры, пробелы, + - ( ) и минимум 8 цифр
func IsPhone(s string) bool {
	if !phoneCharsRe.MatchString(s) {
		return false
	}
	return len(nonDigitRe.ReplaceAllString(s, "")) >= minPhoneDigits
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}
