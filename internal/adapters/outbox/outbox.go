package outbox

import (
	"context"
	"time"
)

// Entry is an event recorded by the order service and not yet published.
// EventID is stable across retries and becomes the broker message id.
type Entry struct {
	ID         int64
	EventID    string
	EventName  string
	EntityName string
	EventData  []byte
	CreatedAt  time.Time
}

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
type Repository interface {
	FetchPending(ctx context.Context, limit int) ([]Entry, error)
	Delete(ctx context.Context, id int64) error
}
