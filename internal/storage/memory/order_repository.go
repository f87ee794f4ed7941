package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// Create сохраняет новый заказ, если ID ещё не занят.
func (r *orderRepositoryInMemory) Create(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrAlreadyExists
	}
	// Сохраняем копию списка товаров, чтобы избежать мутаций извне.
	ids := make([]string, len(order.ProductIDs))
	copy(ids, order.ProductIDs)
	order.ProductIDs = ids
	r.items[order.ID] = order
	return nil
}

// Get возвращает заказ или ErrOrderNotFound.
func (r *orderRepositoryInMemory) Get(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// List возвращает заказы, проходящие фильтр, в стабильном порядке.
func (r *orderRepositoryInMemory) List(filter domain.OrderFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if filter.Matches(order) {
			result = append(result, order)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].OrderDate.Equal(result[j].OrderDate) {
			return result[i].ID < result[j].ID
		}
		return result[i].OrderDate.Before(result[j].OrderDate)
	})
	return result, nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
