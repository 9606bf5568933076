package port

import (
	"context"

	"github.com/NaMinhyeok/order-practice/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// EventOutboxPort records events in the same transaction as the state change
// that produced them. A relay publishes them later.
type EventOutboxPort interface {
	Enqueue(ctx context.Context, event domain.Event) error
}
