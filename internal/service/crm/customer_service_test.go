package crm_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/crm/internal/service/crm"
	"github.com/vladislavdragonenkov/crm/internal/storage/memory"
)

func newCustomerService(publisher domain.EventPublisher) (*crm.CustomerService, domain.CustomerRepository) {
	repo := memory.NewCustomerRepository()
	uow := memory.NewCustomerUnitOfWork(repo)
	service := crm.NewCustomerService(repo, uow, publisher, nil, loggerForTests())
	return service, repo
}

func TestCustomerService_Create(t *testing.T) {
	service, repo := newCustomerService(nil)

	customer, err := service.Create(context.Background(), crm.CustomerInput{
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: "+14155551234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, customer.ID)
	require.Equal(t, "Alice", customer.Name)
	require.Equal(t, "alice@example.com", customer.Email)
	require.Equal(t, "+14155551234", customer.Phone)
	require.False(t, customer.CreatedAt.IsZero())

	stored, err := repo.Get(customer.ID)
	require.NoError(t, err)
	require.Equal(t, customer, stored)
}

func TestCustomerService_Create_PhoneOptional(t *testing.T) {
	service, _ := newCustomerService(nil)

	customer, err := service.Create(context.Background(), crm.CustomerInput{
		Name:  "Bob",
		Email: "bob@example.com",
	})
	require.NoError(t, err)
	require.Empty(t, customer.Phone)
}

func TestCustomerService_Create_DuplicateEmail(t *testing.T) {
	service, repo := newCustomerService(nil)

	_, err := service.Create(context.Background(), crm.CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), crm.CustomerInput{Name: "Another Alice", Email: "alice@example.com"})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	require.Contains(t, err.Error(), "alice@example.com")

	// Новая запись не сохранилась.
	all, err := repo.List(domain.CustomerFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCustomerService_Create_PhoneFormats(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"+14155551234", true},
		{"415-555-1234", true},
		{"12345", false},
	}

	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			service, _ := newCustomerService(nil)
			_, err := service.Create(context.Background(), crm.CustomerInput{
				Name:  "Carol",
				Email: "carol@example.com",
				Phone: tc.phone,
			})
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, domain.ErrInvalidPhoneFormat)
				require.Contains(t, err.Error(), "Carol")
			}
		})
	}
}

func TestCustomerService_Create_RequiredFields(t *testing.T) {
	service, _ := newCustomerService(nil)

	_, err := service.Create(context.Background(), crm.CustomerInput{Email: "x@example.com"})
	require.ErrorIs(t, err, domain.ErrNameRequired)

	_, err = service.Create(context.Background(), crm.CustomerInput{Name: "X"})
	require.ErrorIs(t, err, domain.ErrEmailRequired)
}

func TestCustomerService_Create_PublishesEvent(t *testing.T) {
	publisher := &stubPublisher{}
	service, _ := newCustomerService(publisher)

	customer, err := service.Create(context.Background(), crm.CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	events := publisher.published()
	require.Len(t, events, 1)
	require.Equal(t, kafka.TopicCustomerEvents, events[0].topic)
	require.Equal(t, customer.ID, events[0].key)
}

func TestCustomerService_Create_PublishFailureIsNotFatal(t *testing.T) {
	publisher := &stubPublisher{err: errors.New("broker down")}
	service, _ := newCustomerService(publisher)

	_, err := service.Create(context.Background(), crm.CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
}

func TestCustomerService_BulkCreate_PartialFailure(t *testing.T) {
	service, repo := newCustomerService(nil)

	_, err := service.Create(context.Background(), crm.CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	created, failures, err := service.BulkCreate(context.Background(), []crm.CustomerInput{
		{Name: "Bob", Email: "bob@example.com"},
		{Name: "Duplicate", Email: "alice@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, "Bob", created[0].Name)
	require.Len(t, failures, 1)
	require.Contains(t, failures[0], "alice@example.com")

	// Валидная запись зафиксирована, дубликат — нет.
	all, listErr := repo.List(domain.CustomerFilter{})
	require.NoError(t, listErr)
	require.Len(t, all, 2)
}

func TestCustomerService_BulkCreate_OrderPreservedAndContinues(t *testing.T) {
	service, _ := newCustomerService(nil)

	created, failures, err := service.BulkCreate(context.Background(), []crm.CustomerInput{
		{Name: "First", Email: "first@example.com"},
		{Name: "Bad Phone", Email: "bad@example.com", Phone: "12345"},
		{Name: "Last", Email: "last@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Equal(t, "First", created[0].Name)
	require.Equal(t, "Last", created[1].Name)
	require.Len(t, failures, 1)
	require.Contains(t, failures[0], "Bad Phone")
}

func TestCustomerService_BulkCreate_EmptyErrorsMeansFullSuccess(t *testing.T) {
	service, _ := newCustomerService(nil)

	created, failures, err := service.BulkCreate(context.Background(), []crm.CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Empty(t, failures)
}

// errorOnEmailRepo оборачивает репозиторий и падает фатально на заданном email.
type errorOnEmailRepo struct {
	domain.CustomerRepository
	failEmail string
}

func (r *errorOnEmailRepo) Create(customer domain.Customer) error {
	if customer.Email == r.failEmail {
		return errors.New("storage gone")
	}
	return r.CustomerRepository.Create(customer)
}

func TestCustomerService_BulkCreate_FatalErrorAbortsBatch(t *testing.T) {
	repo := memory.NewCustomerRepository()
	uow := memory.NewCustomerUnitOfWork(repo)
	failing := &errorOnEmailRepo{CustomerRepository: repo, failEmail: "boom@example.com"}

	// fn получает репозиторий из unit of work, поэтому оборачиваем границу.
	wrapped := wrappedUnitOfWork{inner: uow, wrap: func(inner domain.CustomerRepository) domain.CustomerRepository {
		failing.CustomerRepository = inner
		return failing
	}}
	service := crm.NewCustomerService(repo, wrapped, nil, nil, loggerForTests())

	created, failures, err := service.BulkCreate(context.Background(), []crm.CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Boom", Email: "boom@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	})
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "storage gone"))
	require.Nil(t, created)
	require.Nil(t, failures)

	// Откат: записи до фатальной ошибки не зафиксированы.
	all, listErr := repo.List(domain.CustomerFilter{})
	require.NoError(t, listErr)
	require.Empty(t, all)
}

type wrappedUnitOfWork struct {
	inner domain.CustomerUnitOfWork
	wrap  func(domain.CustomerRepository) domain.CustomerRepository
}

func (w wrappedUnitOfWork) WithinTx(fn func(repo domain.CustomerRepository) error) error {
	return w.inner.WithinTx(func(repo domain.CustomerRepository) error {
		return fn(w.wrap(repo))
	})
}
