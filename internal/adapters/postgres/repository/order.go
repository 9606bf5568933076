package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/NaMinhyeok/order-practice/internal/adapters/postgres"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
)

const orderColumns = `order_id, email, address, postcode, order_status, created_at, updated_at`

type orderRow struct {
	ID        int64     `db:"order_id"`
	Email     string    `db:"email"`
	Address   string    `db:"address"`
	Postcode  string    `db:"postcode"`
	Status    string    `db:"order_status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r orderRow) toDomain() *domain.Order {
	return &domain.Order{
		ID:        domain.ID(r.ID),
		Email:     r.Email,
		Address:   domain.Address{Street: r.Address, Postcode: r.Postcode},
		Status:    domain.OrderStatus(r.Status),
		Items:     []*domain.OrderProduct{},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type orderItemRow struct {
	ID            int64     `db:"order_item_id"`
	OrderID       int64     `db:"order_id"`
	Quantity      int       `db:"quantity"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	ProductID     int64     `db:"product_id"`
	ProductName   string    `db:"product_name"`
	Category      string    `db:"category"`
	Price         int64     `db:"price"`
	Description   string    `db:"description"`
	ProductCreate time.Time `db:"product_created_at"`
	ProductUpdate time.Time `db:"product_updated_at"`
}

func (r orderItemRow) toDomain() *domain.OrderProduct {
	return &domain.OrderProduct{
		ID: domain.ID(r.ID),
		Product: &domain.Product{
			ID:          domain.ID(r.ProductID),
			Name:        r.ProductName,
			Category:    r.Category,
			Price:       domain.Amount(r.Price),
			Description: r.Description,
			CreatedAt:   r.ProductCreate,
			UpdatedAt:   r.ProductUpdate,
		},
		Quantity:  r.Quantity,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type OrderRepository struct {
	router *postgres.Router
}

func NewOrderRepository(router *postgres.Router) port.OrderPort {
	return &OrderRepository{router: router}
}

// Create inserts the order row only. Line items are written by CreateItems
// once the order has an ID.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID != 0 {
		return errors.New("cannot create order with existing ID")
	}

	err := r.router.Querier(ctx).QueryRow(ctx,
		`INSERT INTO orders (email, address, postcode, order_status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING order_id, created_at, updated_at`,
		order.Email, order.Address.Street, order.Address.Postcode, string(order.Status),
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	return postgres.ParseError(err)
}

// CreateItems inserts every unsaved line item of order in a single batch.
func (r *OrderRepository) CreateItems(ctx context.Context, order *domain.Order) error {
	if order.ID == 0 {
		return errors.New("cannot create items for an unsaved order")
	}

	batch := &pgx.Batch{}
	for _, item := range order.Items {
		if item.ID != 0 {
			continue
		}
		batch.Queue(
			`INSERT INTO order_items (order_id, product_id, quantity)
			 VALUES ($1, $2, $3)
			 RETURNING order_item_id, created_at, updated_at`,
			int64(order.ID), int64(item.Product.ID), item.Quantity,
		).QueryRow(func(row pgx.Row) error {
			return row.Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
		})
	}
	if batch.Len() == 0 {
		return nil
	}

	return postgres.ParseError(r.router.Querier(ctx).SendBatch(ctx, batch).Close())
}

func (r *OrderRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Order, error) {
	rows, err := r.router.Querier(ctx).Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_id = $1`, int64(id))
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	orders := []*domain.Order{row.toDomain()}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *OrderRepository) GetByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE email = $1 ORDER BY order_id`, email)
}

// GetByStatus locks the matching rows until the surrounding transaction ends.
func (r *OrderRepository) GetByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_status = $1 ORDER BY order_id FOR UPDATE`, string(status))
}

func (r *OrderRepository) list(ctx context.Context, sql string, args ...any) ([]*domain.Order, error) {
	rows, err := r.router.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	orders := make([]*domain.Order, len(found))
	for i, row := range found {
		orders[i] = row.toDomain()
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Order, len(orders))
	ids := make([]int64, len(orders))
	for i, order := range orders {
		ids[i] = int64(order.ID)
		byID[int64(order.ID)] = order
	}

	rows, err := r.router.Querier(ctx).Query(ctx,
		`SELECT oi.order_item_id, oi.order_id, oi.quantity, oi.created_at, oi.updated_at,
		        p.product_id, p.product_name, p.category, p.price, p.description,
		        p.created_at AS product_created_at, p.updated_at AS product_updated_at
		 FROM order_items oi
		 JOIN products p ON p.product_id = oi.product_id
		 WHERE oi.order_id = ANY($1)
		 ORDER BY oi.order_item_id`, ids)
	if err != nil {
		return postgres.ParseError(err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[orderItemRow])
	if err != nil {
		return postgres.ParseError(err)
	}

	for _, item := range items {
		order := byID[item.OrderID]
		order.Items = append(order.Items, item.toDomain())
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	err := r.router.Querier(ctx).QueryRow(ctx,
		`UPDATE orders SET order_status = $2, updated_at = now()
		 WHERE order_id = $1
		 RETURNING updated_at`,
		int64(order.ID), string(order.Status),
	).Scan(&order.UpdatedAt)
	return postgres.ParseError(err)
}
