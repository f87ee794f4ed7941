package memory

import "github.com/vladislavdragonenkov/crm/internal/domain"

// customerUnitOfWork эмулирует scoped-транзакцию поверх in-memory репозитория:
// состояние снимается до запуска fn и восстанавливается при ошибке.
// От конкурентных писателей граница не защищает — это dev/test-коллаборатор.
type customerUnitOfWork struct {
	repo *customerRepositoryInMemory
}

// NewCustomerUnitOfWork возвращает транзакционную границу поверх репозитория,
// созданного NewCustomerRepository.
func NewCustomerUnitOfWork(repo domain.CustomerRepository) domain.CustomerUnitOfWork {
	inMemory, ok := repo.(*customerRepositoryInMemory)
	if !ok {
		// Чужая реализация: границу эмулировать нечем, выполняем fn как есть.
		return passthroughUnitOfWork{repo: repo}
	}
	return &customerUnitOfWork{repo: inMemory}
}

// WithinTx выполняет fn и откатывает созданные записи, если fn вернула ошибку.
func (u *customerUnitOfWork) WithinTx(fn func(repo domain.CustomerRepository) error) error {
	u.repo.mu.Lock()
	items := make(map[string]domain.Customer, len(u.repo.items))
	for id, customer := range u.repo.items {
		items[id] = customer
	}
	byEmail := make(map[string]string, len(u.repo.byEmail))
	for email, id := range u.repo.byEmail {
		byEmail[email] = id
	}
	u.repo.mu.Unlock()

	if err := fn(u.repo); err != nil {
		u.repo.mu.Lock()
		u.repo.items = items
		u.repo.byEmail = byEmail
		u.repo.mu.Unlock()
		return err
	}
	return nil
}

type passthroughUnitOfWork struct {
	repo domain.CustomerRepository
}

func (u passthroughUnitOfWork) WithinTx(fn func(repo domain.CustomerRepository) error) error {
	return fn(u.repo)
}

var _ domain.CustomerUnitOfWork = (*customerUnitOfWork)(nil)
