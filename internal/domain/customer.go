package domain

import (
	"regexp"
	"strings"
	"time"
)

// phonePattern принимает два формата телефона:
// "+" и 10–15 цифр либо DDD-DDD-DDDD.
var phonePattern = regexp.MustCompile(`^(\+\d{10,15}|\d{3}-\d{3}-\d{4})$`)

// Customer представляет клиента CRM.
type Customer struct {
	ID    string
	Name  string
	Email string
	// Phone хранится в исходном виде; пустая строка означает, что телефон не указан.
	Phone     string
	CreatedAt time.Time
}

// ValidateInvariants проверяет обязательные поля и формат телефона.
// Уникальность email проверяется writer-ом отдельно, до этой проверки.
func (c *Customer) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, ErrEmailRequired)
	}
	if !ValidPhone(c.Phone) {
		errs = append(errs, ErrInvalidPhoneFormat)
	}

	return errs
}

// ValidPhone сообщает, допустим ли формат телефона. Пустое значение допустимо.
func ValidPhone(phone string) bool {
	return phone == "" || phonePattern.MatchString(phone)
}
