package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

const (
	opTimeout   = 5 * time.Second
	bulkTimeout = 30 * time.Second
)

// queryer покрывает общие методы *sql.DB и *sql.Tx: репозиторий работает
// и напрямую, и внутри транзакционной границы unit of work.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type customerRepository struct {
	db queryer
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Create(customer domain.Customer) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, customer.Email)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *customerRepository) Get(id string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var customer domain.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}
	return customer, nil
}

func (r *customerRepository) ExistsByEmail(email string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM customers WHERE email = $1`, email).Scan(&id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check customer email: %w", err)
}

func (r *customerRepository) List(filter domain.CustomerFilter) ([]domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `
		SELECT id, name, email, phone, created_at
		FROM customers
	`
	where, args := customerWhere(filter)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

// customerWhere переводит декларативный фильтр в условия WHERE.
func customerWhere(filter domain.CustomerFilter) (string, []any) {
	clauses := make([]string, 0, 5)
	args := make([]any, 0, 5)

	if filter.Email != "" {
		args = append(args, filter.Email)
		clauses = append(clauses, fmt.Sprintf("email = $%d", len(args)))
	}
	if filter.NameContains != "" {
		args = append(args, filter.NameContains)
		clauses = append(clauses, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.EmailContains != "" {
		args = append(args, filter.EmailContains)
		clauses = append(clauses, fmt.Sprintf("email ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		clauses = append(clauses, fmt.Sprintf("created_at > $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		clauses = append(clauses, fmt.Sprintf("created_at < $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
