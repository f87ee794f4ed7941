package crm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
)

// OrderInput описывает входные данные мутации создания заказа.
type OrderInput struct {
	CustomerID string
	ProductIDs []string
	// OrderDate может отсутствовать; nil означает текущее время.
	OrderDate *time.Time
}

// OrderService разрешает ссылки заказа и создаёт агрегат с вычисленной суммой.
type OrderService struct {
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
	publisher domain.EventPublisher
	metrics   *metrics.MutationMetrics
	logger    *log.Entry
}

// NewOrderService конструирует сервис с зависимостями.
func NewOrderService(
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	publisher domain.EventPublisher,
	m *metrics.MutationMetrics,
	logger *log.Entry,
) *OrderService {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &OrderService{
		orders:    orders,
		customers: customers,
		products:  products,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// Create разрешает клиента и товары, вычисляет сумму и сохраняет заказ.
// Частичное разрешение товаров допустимо: несуществующие идентификаторы
// молча пропускаются, ошибкой считается только пустой итоговый набор.
func (s *OrderService) Create(_ context.Context, input OrderInput) (domain.Order, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordMutationDuration(metrics.OpCreateOrder, time.Since(started))
	}()

	customer, err := s.customers.Get(input.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			s.metrics.RecordMutationRejected(metrics.OpCreateOrder)
			return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrInvalidCustomerID, input.CustomerID)
		}
		s.logger.WithError(err).Error("failed to resolve order customer")
		return domain.Order{}, fmt.Errorf("resolve customer: %w", err)
	}

	products, err := s.products.ListByIDs(input.ProductIDs)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve order products")
		return domain.Order{}, fmt.Errorf("resolve products: %w", err)
	}
	if len(products) == 0 {
		s.metrics.RecordMutationRejected(metrics.OpCreateOrder)
		return domain.Order{}, domain.ErrInvalidProductIDs
	}

	// Сумма фиксируется по текущим ценам и дальше не пересчитывается.
	var totalMinor int64
	resolvedIDs := make([]string, 0, len(products))
	for _, product := range products {
		totalMinor += product.PriceMinor
		resolvedIDs = append(resolvedIDs, product.ID)
	}

	now := time.Now().UTC()
	orderDate := now
	if input.OrderDate != nil {
		orderDate = input.OrderDate.UTC()
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		CustomerID: customer.ID,
		ProductIDs: resolvedIDs,
		TotalMinor: totalMinor,
		OrderDate:  orderDate,
		CreatedAt:  now,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, fmt.Errorf("order invariants violated: %v", errs)
	}

	if err := s.orders.Create(order); err != nil {
		s.logger.WithError(err).Error("failed to create order")
		return domain.Order{}, err
	}

	s.metrics.RecordOrderCreated()
	s.publishCreated(order)
	return order, nil
}

// Get возвращает заказ по идентификатору.
func (s *OrderService) Get(_ context.Context, id string) (domain.Order, error) {
	return s.orders.Get(id)
}

// List возвращает заказы по декларативному фильтру.
func (s *OrderService) List(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	orders, err := s.orders.List(filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list orders")
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) publishCreated(order domain.Order) {
	if s.publisher == nil {
		return
	}
	event := kafka.NewOrderEvent(order.ID, order.CustomerID, order.ProductIDs, order.TotalMinor)
	if err := s.publisher.PublishEvent(kafka.TopicOrderEvents, order.ID, event); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order event")
	}
}
