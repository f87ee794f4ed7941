package domain_test

import (
	"testing"
	"time"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

func makeCustomer() domain.Customer {
	return domain.Customer{
		ID:        "customer-1",
		Name:      "Alice",
		Email:     "alice@example.com",
		Phone:     "+14155551234",
		CreatedAt: time.Now().UTC(),
	}
}

func TestCustomerValidateInvariants_Ok(t *testing.T) {
	customer := makeCustomer()
	if errs := customer.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestCustomerValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(c *domain.Customer)
	}{
		{
			name: "no name",
			mut: func(c *domain.Customer) {
				c.Name = "   "
			},
		},
		{
			name: "no email",
			mut: func(c *domain.Customer) {
				c.Email = ""
			},
		},
		{
			name: "bad phone",
			mut: func(c *domain.Customer) {
				c.Phone = "12345"
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			customer := makeCustomer()
			tc.mut(&customer)
			if errs := customer.ValidateInvariants(); len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
		})
	}
}

func TestValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"", true},
		{"+14155551234", true},
		{"+1234567890", true},
		{"+123456789012345", true},
		{"415-555-1234", true},
		{"12345", false},
		{"+123456789", false},          // меньше 10 цифр
		{"+1234567890123456", false},   // больше 15 цифр
		{"415-555-123", false},         // короткий последний блок
		{"(415) 555-1234", false},      // скобки не поддерживаются
		{"415 555 1234", false},        // пробелы не поддерживаются
	}

	for _, tc := range cases {
		if got := domain.ValidPhone(tc.phone); got != tc.valid {
			t.Fatalf("ValidPhone(%q) = %v, expected %v", tc.phone, got, tc.valid)
		}
	}
}
