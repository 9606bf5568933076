package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/NaMinhyeok/order-practice/internal/adapters/postgres"
	"github.com/NaMinhyeok/order-practice/internal/adapters/postgres/repository"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/dto"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
	"github.com/NaMinhyeok/order-practice/internal/core/service"
	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

type services struct {
	products *service.ProductService
	orders   *service.OrderService
	outbox   *repository.OutboxRepository
}

func newServices() services {
	tm := postgres.NewTransactionManager(testRouter)
	outbox := repository.NewOutboxRepository(testRouter)
	products := service.NewProductService(repository.NewProductRepository(testRouter), tm)
	// An empty idempotency key never reaches the cache.
	idempotency := service.NewIdempotencyService[domain.Order](nil, time.Minute, time.Millisecond, time.Second)
	orders := service.NewOrderService(repository.NewOrderRepository(testRouter), products, outbox, idempotency, tm)
	return services{products: products, orders: orders, outbox: outbox}
}

func countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	err := testRouter.Querier(context.Background()).QueryRow(context.Background(), `SELECT count(*) FROM `+table).Scan(&n)
	if err != nil {
		t.Fatalf("count %s failed: %v", table, err)
	}
	return n
}

func TestOrderService_CreateOrderIsAtomic(t *testing.T) {
	resetTables(t)
	svc := newServices()
	ctx := context.Background()

	product := createTestProduct(t, "Columbia", 5000)

	t.Run("persists order, items and event together", func(t *testing.T) {
		order, err := svc.orders.CreateOrder(ctx, "", &dto.CreateOrderRequest{
			Email:    "buyer@example.com",
			Address:  "1 Main St",
			Postcode: "12345",
			OrderProductsQuantity: []dto.OrderProductQuantity{
				{ProductID: product.ID, Quantity: 3},
			},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if order.TotalAmount() != 15000 {
			t.Fatalf("expected total 15000, got %d", order.TotalAmount())
		}
		if got := countRows(t, "order_items"); got != 1 {
			t.Fatalf("expected 1 item row, got %d", got)
		}
		if got := countRows(t, "outbox"); got != 1 {
			t.Fatalf("expected 1 outbox row, got %d", got)
		}
	})

	t.Run("unknown product leaves nothing behind", func(t *testing.T) {
		ordersBefore := countRows(t, "orders")
		outboxBefore := countRows(t, "outbox")

		_, err := svc.orders.CreateOrder(ctx, "", &dto.CreateOrderRequest{
			Email:    "buyer@example.com",
			Address:  "1 Main St",
			Postcode: "12345",
			OrderProductsQuantity: []dto.OrderProductQuantity{
				{ProductID: product.ID, Quantity: 1},
				{ProductID: 999999, Quantity: 1},
			},
		})
		if !serviceerrors.IsOfKind(err, serviceerrors.KindInvalidRequest) {
			t.Fatalf("expected KindInvalidRequest, got %v", err)
		}
		if got := countRows(t, "orders"); got != ordersBefore {
			t.Fatalf("expected %d orders, got %d", ordersBefore, got)
		}
		if got := countRows(t, "outbox"); got != outboxBefore {
			t.Fatalf("expected %d outbox rows, got %d", outboxBefore, got)
		}
	})
}

func TestOrderService_SendOrders(t *testing.T) {
	resetTables(t)
	svc := newServices()
	ctx := context.Background()

	product := createTestProduct(t, "Columbia", 5000)
	createTestOrder(t, "a@example.com", product)
	createTestOrder(t, "b@example.com", product)

	t.Run("promotes every ordered order", func(t *testing.T) {
		sent, err := svc.orders.SendOrders(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sent != 2 {
			t.Fatalf("expected 2 orders sent, got %d", sent)
		}

		orders, _ := svc.orders.GetOrdersByEmail(ctx, "a@example.com")
		if len(orders) != 1 || orders[0].Status != domain.OrderStatusDelivering {
			t.Fatalf("expected a@example.com order to be DELIVERING, got %+v", orders)
		}
		if got := countRows(t, "outbox"); got != 2 {
			t.Fatalf("expected 2 status events, got %d", got)
		}
	})

	t.Run("second run finds nothing to send", func(t *testing.T) {
		sent, err := svc.orders.SendOrders(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sent != 0 {
			t.Fatalf("expected 0 orders sent, got %d", sent)
		}
	})
}

func TestProductService_ReadsRunReadOnly(t *testing.T) {
	resetTables(t)
	svc := newServices()
	ctx := context.Background()

	created, err := svc.products.CreateProduct(ctx, &dto.CreateProductRequest{
		Name: "Columbia", Category: "coffee", Price: 5000, Description: "single origin",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tm := postgres.NewTransactionManager(testRouter)
	err = tm.WithTransaction(ctx, port.IntentQuery, func(txCtx context.Context) error {
		_, err := testRouter.Querier(txCtx).Exec(txCtx, `DELETE FROM products WHERE product_id = $1`, int64(created.ID))
		return err
	})
	if err == nil {
		t.Fatal("expected write inside a query transaction to fail")
	}

	found, err := svc.products.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("expected product to survive, got %v", err)
	}
	if found.Name != "Columbia" {
		t.Fatalf("expected Columbia, got %s", found.Name)
	}
}
