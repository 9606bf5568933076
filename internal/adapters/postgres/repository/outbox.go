package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/NaMinhyeok/order-practice/internal/adapters/outbox"
	"github.com/NaMinhyeok/order-practice/internal/adapters/postgres"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
)

type outboxRow struct {
	ID         int64     `db:"outbox_id"`
	EventID    string    `db:"event_id"`
	EventName  string    `db:"event_name"`
	EntityName string    `db:"entity_name"`
	EventData  []byte    `db:"event_data"`
	CreatedAt  time.Time `db:"created_at"`
}

// OutboxRepository is written by services through Enqueue, inside their own
// transaction, and drained by the outbox relay.
type OutboxRepository struct {
	router *postgres.Router
}

func NewOutboxRepository(router *postgres.Router) *OutboxRepository {
	return &OutboxRepository{router: router}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.GetName(), err)
	}

	_, err = r.router.Querier(ctx).Exec(ctx,
		`INSERT INTO outbox (event_id, event_name, entity_name, event_data)
		 VALUES ($1, $2, $3, $4)`,
		uuid.NewString(), event.GetName(), event.GetEntityName(), string(data),
	)
	return postgres.ParseError(err)
}

func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	rows, err := r.router.Querier(ctx).Query(ctx,
		`SELECT outbox_id, event_id, event_name, entity_name, event_data, created_at
		 FROM outbox ORDER BY outbox_id LIMIT $1`, limit)
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[outboxRow])
	if err != nil {
		return nil, postgres.ParseError(err)
	}

	entries := make([]outbox.Entry, len(found))
	for i, row := range found {
		entries[i] = outbox.Entry{
			ID:         row.ID,
			EventID:    row.EventID,
			EventName:  row.EventName,
			EntityName: row.EntityName,
			EventData:  row.EventData,
			CreatedAt:  row.CreatedAt,
		}
	}
	return entries, nil
}

func (r *OutboxRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.router.Querier(ctx).Exec(ctx, `DELETE FROM outbox WHERE outbox_id = $1`, id)
	return postgres.ParseError(err)
}
