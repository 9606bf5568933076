package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/core/logger"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
)

const relayJob = "outbox-relay"

type Observer interface {
	ObserveJob(job string, processed int, err error, finishedAt time.Time)
}

// Handler relays outbox entries to the broker in insertion order. Delivery is
// at least once: an entry whose delete fails is published again later.
type Handler struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
	observer Observer
}

func NewHandler(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Handler {
	batch := config.BatchSize
	if batch <= 0 {
		batch = 100
	}
	return &Handler{
		outbox:   outbox,
		broker:   broker,
		interval: config.Interval,
		batch:    batch,
	}
}

func (h *Handler) WithObserver(observer Observer) *Handler {
	h.observer = observer
	return h
}

// Start relays on every tick until ctx is done. A tick keeps draining while
// full batches come back.
func (h *Handler) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.drain(ctx)
		}
	}
}

func (h *Handler) drain(ctx context.Context) {
	total := 0
	for ctx.Err() == nil {
		n, err := h.RelayOnce(ctx)
		total += n
		if err != nil || n < h.batch {
			break
		}
	}
	if total > 0 {
		logger.Info(ctx, "outbox: relayed events", map[string]any{"count": total})
	}
}

// RelayOnce publishes one batch. It stops at the first publish failure so a
// later event for the same order never overtakes an earlier one.
func (h *Handler) RelayOnce(ctx context.Context) (published int, err error) {
	defer func() {
		if h.observer != nil && (published > 0 || err != nil) {
			h.observer.ObserveJob(relayJob, published, err, time.Now())
		}
	}()

	entries, err := h.outbox.FetchPending(ctx, h.batch)
	if err != nil {
		logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
			"batch": h.batch,
		})
		return 0, fmt.Errorf("fetch pending: %w", err)
	}

	for _, entry := range entries {
		attrs := map[string]any{
			"outbox_id":   entry.ID,
			"event_id":    entry.EventID,
			"event_name":  entry.EventName,
			"entity_name": entry.EntityName,
		}
		if err := h.broker.PublishRaw(ctx, entry.EventID, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			logger.Error(ctx, "outbox: publish failed, holding remaining events", err, attrs)
			return published, fmt.Errorf("publish outbox entry %d: %w", entry.ID, err)
		}

		published++
		logger.Debug(ctx, "outbox: event published", attrs)

		if err := h.outbox.Delete(ctx, entry.ID); err != nil {
			logger.Error(ctx, "outbox: failed to delete event after publish", err, attrs)
		}
	}
	return published, nil
}
