package domain_test

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// helper для создания базового заказа с одним товаром.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:         "order-1",
		CustomerID: "customer-1",
		ProductIDs: []string{"product-1"},
		TotalMinor: 1000,
		OrderDate:  now,
		CreatedAt:  now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
	}{
		{
			name: "no customer",
			mut: func(o *domain.Order) {
				o.CustomerID = ""
			},
		},
		{
			name: "no products",
			mut: func(o *domain.Order) {
				o.ProductIDs = nil
			},
		},
		{
			name: "negative total",
			mut: func(o *domain.Order) {
				o.TotalMinor = -1
			},
		},
		{
			name: "zero order date",
			mut: func(o *domain.Order) {
				o.OrderDate = time.Time{}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)
			if errs := order.ValidateInvariants(); len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
		})
	}
}
