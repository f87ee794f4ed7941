package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Customer
	// byEmail дублирует уникальный индекс email -> id, как constraint в Postgres.
	byEmail map[string]string
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return newCustomerRepository()
}

func newCustomerRepository() *customerRepositoryInMemory {
	return &customerRepositoryInMemory{
		items:   make(map[string]domain.Customer),
		byEmail: make(map[string]string),
	}
}

// Create сохраняет нового клиента, если ID свободен и email не занят.
func (r *customerRepositoryInMemory) Create(customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[customer.ID]; exists {
		return domain.ErrAlreadyExists
	}
	if _, taken := r.byEmail[customer.Email]; taken {
		return domain.ErrDuplicateEmail
	}

	r.items[customer.ID] = customer
	r.byEmail[customer.Email] = customer.ID
	return nil
}

// Get возвращает клиента или ErrCustomerNotFound.
func (r *customerRepositoryInMemory) Get(id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// ExistsByEmail сообщает, занят ли email.
func (r *customerRepositoryInMemory) ExistsByEmail(email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, taken := r.byEmail[email]
	return taken, nil
}

// List возвращает клиентов, проходящих фильтр, в стабильном порядке.
func (r *customerRepositoryInMemory) List(filter domain.CustomerFilter) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Customer, 0, len(r.items))
	for _, customer := range r.items {
		if filter.Matches(customer) {
			result = append(result, customer)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
