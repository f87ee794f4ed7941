package domain

import (
	"strings"
	"time"
)

// Фильтры описывают декларативные предикаты read-пути: точное совпадение,
// вхождение подстроки и диапазоны. Нулевое значение поля означает
// отсутствие предиката; пустой фильтр пропускает все записи.

// CustomerFilter — предикаты выборки клиентов.
type CustomerFilter struct {
	Email         string
	NameContains  string
	EmailContains string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// Matches сообщает, проходит ли клиент все заданные предикаты.
func (f CustomerFilter) Matches(c Customer) bool {
	if f.Email != "" && c.Email != f.Email {
		return false
	}
	if f.NameContains != "" && !containsFold(c.Name, f.NameContains) {
		return false
	}
	if f.EmailContains != "" && !containsFold(c.Email, f.EmailContains) {
		return false
	}
	if f.CreatedAfter != nil && !c.CreatedAt.After(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && !c.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}
	return true
}

// ProductFilter — предикаты выборки товаров.
type ProductFilter struct {
	NameContains  string
	PriceMinMinor *int64
	PriceMaxMinor *int64
	StockMin      *int32
	StockMax      *int32
}

// Matches сообщает, проходит ли товар все заданные предикаты.
func (f ProductFilter) Matches(p Product) bool {
	if f.NameContains != "" && !containsFold(p.Name, f.NameContains) {
		return false
	}
	if f.PriceMinMinor != nil && p.PriceMinor < *f.PriceMinMinor {
		return false
	}
	if f.PriceMaxMinor != nil && p.PriceMinor > *f.PriceMaxMinor {
		return false
	}
	if f.StockMin != nil && p.Stock < *f.StockMin {
		return false
	}
	if f.StockMax != nil && p.Stock > *f.StockMax {
		return false
	}
	return true
}

// OrderFilter — предикаты выборки заказов.
type OrderFilter struct {
	CustomerID    string
	ProductID     string
	TotalMinMinor *int64
	TotalMaxMinor *int64
	PlacedAfter   *time.Time
	PlacedBefore  *time.Time
}

// Matches сообщает, проходит ли заказ все заданные предикаты.
func (f OrderFilter) Matches(o Order) bool {
	if f.CustomerID != "" && o.CustomerID != f.CustomerID {
		return false
	}
	if f.ProductID != "" && !containsID(o.ProductIDs, f.ProductID) {
		return false
	}
	if f.TotalMinMinor != nil && o.TotalMinor < *f.TotalMinMinor {
		return false
	}
	if f.TotalMaxMinor != nil && o.TotalMinor > *f.TotalMaxMinor {
		return false
	}
	if f.PlacedAfter != nil && !o.OrderDate.After(*f.PlacedAfter) {
		return false
	}
	if f.PlacedBefore != nil && !o.OrderDate.Before(*f.PlacedBefore) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
