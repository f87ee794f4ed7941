package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// customerUnitOfWork — scoped-транзакция пакетного создания клиентов:
// fn получает репозиторий, привязанный к одной *sql.Tx; nil от fn
// фиксирует транзакцию, ошибка — откатывает её целиком.
type customerUnitOfWork struct {
	db *sql.DB
}

// NewCustomerUnitOfWork создаёт транзакционную границу поверх стора.
func NewCustomerUnitOfWork(store *Store) domain.CustomerUnitOfWork {
	return &customerUnitOfWork{db: store.DB()}
}

func (u *customerUnitOfWork) WithinTx(fn func(repo domain.CustomerRepository) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), bulkTimeout)
	defer cancel()

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk tx: %w", err)
	}

	if err := fn(&customerRepository{db: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk tx: %w", err)
	}
	return nil
}

var _ domain.CustomerUnitOfWork = (*customerUnitOfWork)(nil)
