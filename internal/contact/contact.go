package contact

import (
	"fmt"
	"regexp"
	"strings"

	types "shopease-main/internal/types/contact"
	myErr "shopease-main/internal/types/errors"
)

// emailPattern: непробельные символы без @ по обе стороны единственной @ и точка в домене
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate обрезает пробелы и проверяет поля формы.
// Возвращает очищенную форму.
func Validate(form types.Form) (types.Form, error) {
	trimmed := types.Form{
		Name:    strings.TrimSpace(form.Name),
		Email:   strings.TrimSpace(form.Email),
		Message: strings.TrimSpace(form.Message),
	}

	if trimmed.Name == "" || trimmed.Email == "" || trimmed.Message == "" {
		return form, myErr.ErrEmptyField
	}

	if !emailPattern.MatchString(trimmed.Email) {
		return form, myErr.ErrInvalidEmail
	}

	return trimmed, nil
}

// Submit проверяет форму и при успехе очищает ее.
// При ошибке форма остается как была.
func Submit(form *types.Form) (string, error) {
	valid, err := Validate(*form)
	if err != nil {
		return "", err
	}

	*form = types.Form{}

	return Confirmation(valid.Name), nil
}

func Confirmation(name string) string {
	return fmt.Sprintf("Thank you, %s! Your message has been received. We will get back to you shortly.", name)
}
