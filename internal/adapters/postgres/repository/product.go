package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/NaMinhyeok/order-practice/internal/adapters/postgres"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

const productColumns = `product_id, product_name, category, price, description, created_at, updated_at`

type productRow struct {
	ID          int64     `db:"product_id"`
	Name        string    `db:"product_name"`
	Category    string    `db:"category"`
	Price       int64     `db:"price"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r productRow) toDomain() *domain.Product {
	return &domain.Product{
		ID:          domain.ID(r.ID),
		Name:        r.Name,
		Category:    r.Category,
		Price:       domain.Amount(r.Price),
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type ProductRepository struct {
	router *postgres.Router
}

func NewProductRepository(router *postgres.Router) port.ProductPort {
	return &ProductRepository{router: router}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID != 0 {
		return errors.New("cannot create product with existing ID")
	}

	err := r.router.Querier(ctx).QueryRow(ctx,
		`INSERT INTO products (product_name, category, price, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING product_id, created_at, updated_at`,
		product.Name, product.Category, int64(product.Price), product.Description,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	return postgres.ParseError(err)
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	rows, err := r.router.Querier(ctx).Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_id = $1`, int64(id))
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, postgres.ParseError(err)
	}
	return row.toDomain(), nil
}

// GetByIDs returns the products that exist among ids, ordered by id. Missing
// ids are silently absent from the result.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []domain.ID) ([]*domain.Product, error) {
	if len(ids) == 0 {
		return []*domain.Product{}, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	return r.list(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_id = ANY($1) ORDER BY product_id`, raw)
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY product_id`)
}

func (r *ProductRepository) list(ctx context.Context, sql string, args ...any) ([]*domain.Product, error) {
	rows, err := r.router.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	products := make([]*domain.Product, len(found))
	for i, row := range found {
		products[i] = row.toDomain()
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	err := r.router.Querier(ctx).QueryRow(ctx,
		`UPDATE products
		 SET product_name = $2, category = $3, price = $4, description = $5, updated_at = now()
		 WHERE product_id = $1
		 RETURNING updated_at`,
		int64(product.ID), product.Name, product.Category, int64(product.Price), product.Description,
	).Scan(&product.UpdatedAt)
	return postgres.ParseError(err)
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ID) error {
	tag, err := r.router.Querier(ctx).Exec(ctx, `DELETE FROM products WHERE product_id = $1`, int64(id))
	if err != nil {
		return postgres.ParseError(err)
	}
	if tag.RowsAffected() == 0 {
		return serviceerrors.NewNotFoundError("entity not found")
	}
	return nil
}
