package crm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
)

// MessageCustomerCreated — подтверждение успешного создания клиента.
const MessageCustomerCreated = "Customer created successfully"

// CustomerInput описывает входные данные мутации создания клиента.
type CustomerInput struct {
	Name  string
	Email string
	// Phone не обязателен; пустая строка означает отсутствие значения.
	Phone string
}

// CustomerService валидирует и создаёт клиентов поверх доменного хранилища.
type CustomerService struct {
	repo      domain.CustomerRepository
	uow       domain.CustomerUnitOfWork
	publisher domain.EventPublisher
	metrics   *metrics.MutationMetrics
	logger    *log.Entry
}

// NewCustomerService конструирует сервис с зависимостями.
// publisher и metrics опциональны (nil выключает публикацию/метрики).
func NewCustomerService(
	repo domain.CustomerRepository,
	uow domain.CustomerUnitOfWork,
	publisher domain.EventPublisher,
	m *metrics.MutationMetrics,
	logger *log.Entry,
) *CustomerService {
	if logger == nil {
		logger = log.New().WithField("component", "customer-service")
	}
	return &CustomerService{
		repo:      repo,
		uow:       uow,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// Create валидирует и сохраняет одного клиента.
// Порядок проверок: занятость email, затем формат телефона.
func (s *CustomerService) Create(_ context.Context, input CustomerInput) (domain.Customer, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordMutationDuration(metrics.OpCreateCustomer, time.Since(started))
	}()

	customer, err := s.createOne(s.repo, input, time.Now().UTC())
	if err != nil {
		if domain.IsValidation(err) {
			s.metrics.RecordMutationRejected(metrics.OpCreateCustomer)
		} else {
			s.logger.WithError(err).Error("failed to create customer")
		}
		return domain.Customer{}, err
	}

	s.metrics.RecordCustomerCreated()
	s.publishCreated(customer)
	return customer, nil
}

// BulkCreate обрабатывает записи по порядку внутри одной scoped-транзакции.
// Ошибки валидации отдельных записей накапливаются строками и пакет не
// прерывают; транзакция фиксирует успешно созданное подмножество. Любая
// другая ошибка прерывает пакет целиком и откатывает транзакцию.
func (s *CustomerService) BulkCreate(_ context.Context, inputs []CustomerInput) ([]domain.Customer, []string, error) {
	started := time.Now()
	defer func() {
		s.metrics.RecordMutationDuration(metrics.OpBulkCreateCustomers, time.Since(started))
	}()

	created := make([]domain.Customer, 0, len(inputs))
	failures := make([]string, 0)
	now := time.Now().UTC()

	err := s.uow.WithinTx(func(repo domain.CustomerRepository) error {
		for _, input := range inputs {
			customer, err := s.createOne(repo, input, now)
			if err != nil {
				if domain.IsValidation(err) {
					failures = append(failures, err.Error())
					s.metrics.RecordBulkEntryFailed()
					continue
				}
				// Фатальная ошибка: прерываем пакет, транзакция откатится
				// вместе со всеми записями, созданными в её границе.
				return err
			}
			created = append(created, customer)
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).Error("bulk create customers aborted")
		return nil, nil, err
	}

	for _, customer := range created {
		s.metrics.RecordCustomerCreated()
		s.publishCreated(customer)
	}
	return created, failures, nil
}

// createOne — общий путь одиночного создания: обязательные поля,
// pre-check уникальности email, формат телефона, запись в хранилище.
// Между pre-check и Create остаётся окно гонки для конкурентных вызовов;
// его закрывает только уникальный constraint хранилища.
func (s *CustomerService) createOne(repo domain.CustomerRepository, input CustomerInput, now time.Time) (domain.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return domain.Customer{}, domain.ErrNameRequired
	}
	if strings.TrimSpace(input.Email) == "" {
		return domain.Customer{}, domain.ErrEmailRequired
	}

	exists, err := repo.ExistsByEmail(input.Email)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("check email uniqueness: %w", err)
	}
	if exists {
		return domain.Customer{}, fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, input.Email)
	}

	if !domain.ValidPhone(input.Phone) {
		return domain.Customer{}, fmt.Errorf("%w: %s", domain.ErrInvalidPhoneFormat, input.Name)
	}

	customer := domain.Customer{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: now,
	}
	if err := repo.Create(customer); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}

// Get возвращает клиента по идентификатору.
func (s *CustomerService) Get(_ context.Context, id string) (domain.Customer, error) {
	return s.repo.Get(id)
}

// List возвращает клиентов по декларативному фильтру.
func (s *CustomerService) List(_ context.Context, filter domain.CustomerFilter) ([]domain.Customer, error) {
	customers, err := s.repo.List(filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list customers")
		return nil, err
	}
	return customers, nil
}

// publishCreated отправляет событие о созданном клиенте; сбой публикации
// мутацию не отменяет.
func (s *CustomerService) publishCreated(customer domain.Customer) {
	if s.publisher == nil {
		return
	}
	event := kafka.NewCustomerEvent(customer.ID, customer.Email)
	if err := s.publisher.PublishEvent(kafka.TopicCustomerEvents, customer.ID, event); err != nil {
		s.logger.WithError(err).WithField("customer_id", customer.ID).Warn("failed to publish customer event")
	}
}
