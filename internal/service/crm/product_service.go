package crm

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
)

// ProductInput описывает входные данные мутации создания товара.
type ProductInput struct {
	Name string
	// PriceMinor — цена в минимальных денежных единицах, строго больше нуля.
	PriceMinor int64
	// Stock может отсутствовать; nil трактуется как ноль.
	Stock *int32
}

// ProductService валидирует и создаёт товары поверх доменного хранилища.
type ProductService struct {
	repo      domain.ProductRepository
	publisher domain.EventPublisher
	metrics   *metrics.MutationMetrics
	logger    *log.Entry
}

// NewProductService конструирует сервис с зависимостями.
func NewProductService(
	repo domain.ProductRepository,
	publisher domain.EventPublisher,
	m *metrics.MutationMetrics,
	logger *log.Entry,
) *ProductService {
	if logger == nil {
		logger = log.New().WithField("component", "product-service")
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// Create валидирует и сохраняет новый товар.
// Уникальность имени не требуется.
func (s *ProductService) Create(_ context.Context, input ProductInput) (domain.Product, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordMutationDuration(metrics.OpCreateProduct, time.Since(started))
	}()

	if strings.TrimSpace(input.Name) == "" {
		s.metrics.RecordMutationRejected(metrics.OpCreateProduct)
		return domain.Product{}, domain.ErrNameRequired
	}
	if input.PriceMinor <= 0 {
		s.metrics.RecordMutationRejected(metrics.OpCreateProduct)
		return domain.Product{}, domain.ErrInvalidPrice
	}

	stock := int32(0)
	if input.Stock != nil {
		if *input.Stock < 0 {
			s.metrics.RecordMutationRejected(metrics.OpCreateProduct)
			return domain.Product{}, domain.ErrInvalidStock
		}
		stock = *input.Stock
	}

	product := domain.Product{
		ID:         uuid.NewString(),
		Name:       input.Name,
		PriceMinor: input.PriceMinor,
		Stock:      stock,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(product); err != nil {
		s.logger.WithError(err).Error("failed to create product")
		return domain.Product{}, err
	}

	s.metrics.RecordProductCreated()
	s.publishCreated(product)
	return product, nil
}

// Get возвращает товар по идентификатору.
func (s *ProductService) Get(_ context.Context, id string) (domain.Product, error) {
	return s.repo.Get(id)
}

// ListByIDs возвращает товары с совпавшими идентификаторами.
func (s *ProductService) ListByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	return s.repo.ListByIDs(ids)
}

// List возвращает товары по декларативному фильтру.
func (s *ProductService) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.repo.List(filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list products")
		return nil, err
	}
	return products, nil
}

func (s *ProductService) publishCreated(product domain.Product) {
	if s.publisher == nil {
		return
	}
	event := kafka.NewProductEvent(product.ID, product.PriceMinor, product.Stock)
	if err := s.publisher.PublishEvent(kafka.TopicProductEvents, product.ID, event); err != nil {
		s.logger.WithError(err).WithField("product_id", product.ID).Warn("failed to publish product event")
	}
}
