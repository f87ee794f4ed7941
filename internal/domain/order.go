package domain

import "time"

// Order агрегирует заказ: ссылку на клиента, набор товаров и итоговую сумму.
// TotalMinor фиксируется один раз при создании и не пересчитывается,
// если цены товаров позже меняются.
type Order struct {
	ID         string
	CustomerID string
	// ProductIDs — идентификаторы товаров заказа (many-to-many, минимум один).
	ProductIDs []string
	// TotalMinor — сумма цен товаров на момент создания, в минимальных единицах.
	TotalMinor int64
	// OrderDate — дата заказа; по умолчанию момент создания.
	OrderDate time.Time
	CreatedAt time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.ProductIDs) == 0 {
		errs = append(errs, ErrProductsRequired)
	}
	if o.TotalMinor < 0 {
		errs = append(errs, ErrTotalNegative)
	}
	if o.OrderDate.IsZero() {
		errs = append(errs, ErrOrderDateRequired)
	}

	return errs
}
