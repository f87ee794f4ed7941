package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

type productRepository struct {
	db queryer
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) Create(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price_minor, stock, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		product.ID, product.Name, product.PriceMinor, product.Stock, product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *productRepository) Get(id string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var product domain.Product
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, price_minor, stock, created_at
		FROM products
		WHERE id = $1
	`, id).Scan(&product.ID, &product.Name, &product.PriceMinor, &product.Stock, &product.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return product, nil
}

func (r *productRepository) ListByIDs(ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	placeholders := make([]string, 0, len(ids))
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, price_minor, stock, created_at
		FROM products
		WHERE id IN (%s)
		ORDER BY created_at ASC, id ASC
	`, strings.Join(placeholders, ",")), args...)
	if err != nil {
		return nil, fmt.Errorf("list products by ids: %w", err)
	}
	return scanProducts(rows)
}

func (r *productRepository) List(filter domain.ProductFilter) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `
		SELECT id, name, price_minor, stock, created_at
		FROM products
	`
	where, args := productWhere(filter)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return scanProducts(rows)
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.PriceMinor, &product.Stock, &product.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

// productWhere переводит декларативный фильтр в условия WHERE.
func productWhere(filter domain.ProductFilter) (string, []any) {
	clauses := make([]string, 0, 5)
	args := make([]any, 0, 5)

	if filter.NameContains != "" {
		args = append(args, filter.NameContains)
		clauses = append(clauses, fmt.Sprintf("name ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.PriceMinMinor != nil {
		args = append(args, *filter.PriceMinMinor)
		clauses = append(clauses, fmt.Sprintf("price_minor >= $%d", len(args)))
	}
	if filter.PriceMaxMinor != nil {
		args = append(args, *filter.PriceMaxMinor)
		clauses = append(clauses, fmt.Sprintf("price_minor <= $%d", len(args)))
	}
	if filter.StockMin != nil {
		args = append(args, *filter.StockMin)
		clauses = append(clauses, fmt.Sprintf("stock >= $%d", len(args)))
	}
	if filter.StockMax != nil {
		args = append(args, *filter.StockMax)
		clauses = append(clauses, fmt.Sprintf("stock <= $%d", len(args)))
	}

	return strings.Join(clauses, " AND "), args
}

var _ domain.ProductRepository = (*productRepository)(nil)
