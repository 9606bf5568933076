package port

import (
	"context"

	"github.com/NaMinhyeok/order-practice/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type OrderPort interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateItems(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Order, error)
	GetByEmail(ctx context.Context, email string) ([]*domain.Order, error)
	GetByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, order *domain.Order) error
}
