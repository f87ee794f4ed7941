package kafka

import "time"

// EventType определяет тип события о созданной записи.
type EventType string

const (
	EventTypeCustomerCreated EventType = "customer.created"
	EventTypeProductCreated  EventType = "product.created"
	EventTypeOrderCreated    EventType = "order.created"
)

// Topics для Kafka
const (
	TopicCustomerEvents = "crm.customer.events"
	TopicProductEvents  = "crm.product.events"
	TopicOrderEvents    = "crm.order.events"
)

// CustomerEvent представляет событие создания клиента.
type CustomerEvent struct {
	EventType  EventType `json:"event_type"`
	CustomerID string    `json:"customer_id"`
	Email      string    `json:"email"`
	Timestamp  time.Time `json:"timestamp"`
}

// ProductEvent представляет событие создания товара.
type ProductEvent struct {
	EventType  EventType `json:"event_type"`
	ProductID  string    `json:"product_id"`
	PriceMinor int64     `json:"price_minor"`
	Stock      int32     `json:"stock"`
	Timestamp  time.Time `json:"timestamp"`
}

// OrderEvent представляет событие создания заказа.
type OrderEvent struct {
	EventType  EventType `json:"event_type"`
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	ProductIDs []string  `json:"product_ids"`
	TotalMinor int64     `json:"total_minor"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewCustomerEvent создаёт событие создания клиента.
func NewCustomerEvent(customerID, email string) *CustomerEvent {
	return &CustomerEvent{
		EventType:  EventTypeCustomerCreated,
		CustomerID: customerID,
		Email:      email,
		Timestamp:  time.Now().UTC(),
	}
}

// NewProductEvent создаёт событие создания товара.
func NewProductEvent(productID string, priceMinor int64, stock int32) *ProductEvent {
	return &ProductEvent{
		EventType:  EventTypeProductCreated,
		ProductID:  productID,
		PriceMinor: priceMinor,
		Stock:      stock,
		Timestamp:  time.Now().UTC(),
	}
}

// NewOrderEvent создаёт событие создания заказа.
func NewOrderEvent(orderID, customerID string, productIDs []string, totalMinor int64) *OrderEvent {
	return &OrderEvent{
		EventType:  EventTypeOrderCreated,
		OrderID:    orderID,
		CustomerID: customerID,
		ProductIDs: productIDs,
		TotalMinor: totalMinor,
		Timestamp:  time.Now().UTC(),
	}
}
