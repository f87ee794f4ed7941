package domain

import (
	"strings"
	"time"
)

// Product представляет товар каталога.
type Product struct {
	ID   string
	Name string
	// PriceMinor — цена в минимальных денежных единицах (например, центы).
	PriceMinor int64
	// Stock — остаток на складе; при создании без значения равен нулю.
	Stock     int32
	CreatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты товара.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if p.PriceMinor <= 0 {
		errs = append(errs, ErrInvalidPrice)
	}
	if p.Stock < 0 {
		errs = append(errs, ErrInvalidStock)
	}

	return errs
}
