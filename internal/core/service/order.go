package service

import (
	"context"

	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/dto"
	"github.com/NaMinhyeok/order-practice/internal/core/logger"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
)

type OrderService struct {
	orderRepository port.OrderPort
	productService  *ProductService
	outbox          port.EventOutboxPort
	idempotency     *IdempotencyService[domain.Order]
	txManager       port.TransactionManager
}

func NewOrderService(
	orderRepository port.OrderPort,
	productService *ProductService,
	outbox port.EventOutboxPort,
	idempotency *IdempotencyService[domain.Order],
	txManager port.TransactionManager,
) *OrderService {
	return &OrderService{
		orderRepository: orderRepository,
		productService:  productService,
		outbox:          outbox,
		idempotency:     idempotency,
		txManager:       txManager,
	}
}

func missingProductIDs(ids []domain.ID, products []*domain.Product) []domain.ID {
	found := make(map[domain.ID]struct{}, len(products))
	for _, p := range products {
		found[p.ID] = struct{}{}
	}
	missing := make([]domain.ID, 0)
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// processOrder writes the order, its line items and the created event in one
// transaction. Nothing is persisted if any requested product is missing.
func (s *OrderService) processOrder(ctx context.Context, request *dto.CreateOrderRequest) (*domain.Order, error) {
	ids, quantities := request.ProductQuantities()
	order := domain.NewOrder(request.Email, request.Address, request.Postcode)

	err := s.txManager.WithTransaction(ctx, port.IntentCommand, func(txCtx context.Context) error {
		if err := s.orderRepository.Create(txCtx, order); err != nil {
			return err
		}

		products, err := s.productService.GetByIDs(txCtx, ids)
		if err != nil {
			return err
		}
		if len(products) != len(ids) {
			logger.Warn(ctx, "order: unknown products requested", map[string]any{
				"missing_product_ids": missingProductIDs(ids, products),
			})
			return serviceerrors.NewInvalidRequestError("one or more ordered product ids do not exist")
		}

		for _, product := range products {
			order.AddItem(product, quantities[product.ID])
		}
		if err := s.orderRepository.CreateItems(txCtx, order); err != nil {
			return err
		}

		return s.outbox.Enqueue(txCtx, domain.NewOrderCreatedEvent(order))
	})
	if err != nil {
		logger.Error(ctx, "transaction: create order failed", err, map[string]any{
			"email": request.Email,
		})
		return nil, err
	}

	logger.Info(ctx, "Order created successfully", map[string]any{
		"order_id": order.ID,
		"items":    len(order.Items),
	})
	return order, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, idempotencyKey string, request *dto.CreateOrderRequest) (*domain.Order, error) {
	return s.idempotency.Run(ctx, idempotencyKey, request, func(ctx context.Context) (*domain.Order, error) {
		return s.processOrder(ctx, request)
	})
}

func (s *OrderService) GetOrder(ctx context.Context, id domain.ID) (*domain.Order, error) {
	var order *domain.Order
	err := s.txManager.WithTransaction(ctx, port.IntentQuery, func(txCtx context.Context) error {
		found, err := s.orderRepository.GetByID(txCtx, id)
		if err != nil {
			if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
				return serviceerrors.NewNotFoundError("order with id %d not found", id)
			}
			return err
		}
		order = found
		return nil
	})
	return order, err
}

func (s *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := s.txManager.WithTransaction(ctx, port.IntentQuery, func(txCtx context.Context) error {
		found, err := s.orderRepository.GetByEmail(txCtx, email)
		orders = found
		return err
	})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

// SendOrders moves every ORDERED order to DELIVERING. The whole batch commits
// or rolls back together. It returns how many orders were promoted.
func (s *OrderService) SendOrders(ctx context.Context) (int, error) {
	sent := 0
	err := s.txManager.WithTransaction(ctx, port.IntentCommand, func(txCtx context.Context) error {
		sent = 0
		orders, err := s.orderRepository.GetByStatus(txCtx, domain.OrderStatusOrdered)
		if err != nil {
			return err
		}

		for _, order := range orders {
			oldStatus := order.UpdateStatus(domain.OrderStatusDelivering)
			if err := s.orderRepository.UpdateStatus(txCtx, order); err != nil {
				return err
			}
			event := domain.NewOrderUpdateStatusEvent(order.ID, order.Status, oldStatus, order.UpdatedAt, order.Email)
			if err := s.outbox.Enqueue(txCtx, event); err != nil {
				return err
			}
			sent++
		}
		return nil
	})
	if err != nil {
		logger.Error(ctx, "order: send orders failed", err, nil)
		return 0, err
	}

	logger.Info(ctx, "Orders moved to delivering", map[string]any{"count": sent})
	return sent, nil
}
