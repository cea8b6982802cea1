package customvalidator

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex      = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{5,18}[0-9]$`)
	ticketCodeRegex = regexp.MustCompile(`^[A-Za-z0-9-]{3,32}$`)
)

// RegisterCustomValidations регистрирует правила валидации консоли в v.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("phone", isPhone); err != nil {
		return err
	}
	if err := v.RegisterValidation("ticket_code", isTicketCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

// Поля поиска обрезаются перед использованием, поэтому одни пробелы считаются пустым значением.
func isPhone(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s == "" || phoneRegex.MatchString(s)
}

func isTicketCode(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	return s == "" || ticketCodeRegex.MatchString(s)
}
