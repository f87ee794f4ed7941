package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// Create сохраняет заказ и связи заказ-товар в одной транзакции.
func (r *orderRepository) Create(order domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, total_minor, order_date, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		order.ID, order.CustomerID, order.TotalMinor, order.OrderDate, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for _, productID := range order.ProductIDs {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id)
			VALUES ($1,$2)
		`, order.ID, productID); err != nil {
			return fmt.Errorf("insert order product link: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}

	return nil
}

func (r *orderRepository) Get(id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, total_minor, order_date, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerID, &order.TotalMinor, &order.OrderDate, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	productIDs, err := r.loadProductIDs(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.ProductIDs = productIDs

	return order, nil
}

func (r *orderRepository) List(filter domain.OrderFilter) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `
		SELECT id, customer_id, total_minor, order_date, created_at
		FROM orders
	`
	where, args := orderWhere(filter)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY order_date ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.TotalMinor, &order.OrderDate, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		productIDs, err := r.loadProductIDs(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].ProductIDs = productIDs
	}

	return orders, nil
}

func (r *orderRepository) loadProductIDs(ctx context.Context, orderID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id
		FROM order_products
		WHERE order_id = $1
		ORDER BY product_id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order products: %w", err)
	}
	defer rows.Close()

	productIDs := make([]string, 0)
	for rows.Next() {
		var productID string
		if err := rows.Scan(&productID); err != nil {
			return nil, fmt.Errorf("scan order product link: %w", err)
		}
		productIDs = append(productIDs, productID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order products: %w", err)
	}
	return productIDs, nil
}

// orderWhere переводит декларативный фильтр в условия WHERE.
func orderWhere(filter domain.OrderFilter) (string, []any) {
	clauses := make([]string, 0, 6)
	args := make([]any, 0, 6)

	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		clauses = append(clauses, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		clauses = append(clauses, fmt.Sprintf(
			"id IN (SELECT order_id FROM order_products WHERE product_id = $%d)", len(args)))
	}
	if filter.TotalMinMinor != nil {
		args = append(args, *filter.TotalMinMinor)
		clauses = append(clauses, fmt.Sprintf("total_minor >= $%d", len(args)))
	}
	if filter.TotalMaxMinor != nil {
		args = append(args, *filter.TotalMaxMinor)
		clauses = append(clauses, fmt.Sprintf("total_minor <= $%d", len(args)))
	}
	if filter.PlacedAfter != nil {
		args = append(args, *filter.PlacedAfter)
		clauses = append(clauses, fmt.Sprintf("order_date > $%d", len(args)))
	}
	if filter.PlacedBefore != nil {
		args = append(args, *filter.PlacedBefore)
		clauses = append(clauses, fmt.Sprintf("order_date < $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

var _ domain.OrderRepository = (*orderRepository)(nil)
