package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
	"github.com/NaMinhyeok/order-practice/internal/core/logger"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
)

var (
	ErrNotConnected = errors.New("rabbitmq: not connected")
	ErrNacked       = errors.New("rabbitmq: broker refused the message")
)

// Publisher sends events to "exchange.<entity>" with the event name as the
// routing key. The channel runs in confirm mode, so a nil error from a publish
// means the broker has taken responsibility for the message.
type Publisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	config  config.RabbitMQConfig
}

var _ port.BrokerPort = (*Publisher)(nil)

func NewPublisher(cfg config.RabbitMQConfig) (*Publisher, error) {
	p := &Publisher{config: cfg}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connect(); err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	return p, nil
}

func ExchangeFor(entityName string) string {
	return "exchange." + entityName
}

// connect must be called with mu held.
func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.config.URL)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return fmt.Errorf("enable publisher confirms: %w", err)
	}

	for _, ec := range p.config.ExchangeConfigs {
		if err := ch.ExchangeDeclare(ec.Name, ec.Type, ec.Durable, ec.AutoDelete, false, false, nil); err != nil {
			_ = conn.Close()
			return fmt.Errorf("declare exchange %s: %w", ec.Name, err)
		}
	}

	p.conn = conn
	p.channel = ch
	return nil
}

// dropConnection must be called with mu held.
func (p *Publisher) dropConnection() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Publish sends event directly, outside the outbox, under a fresh message id.
func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", event.GetName(), err)
	}
	return p.publish(ctx, uuid.NewString(), event.GetName(), event.GetEntityName(), body)
}

// PublishRaw sends an already encoded event. messageID lets consumers drop
// redeliveries of the same outbox entry.
func (p *Publisher) PublishRaw(ctx context.Context, messageID, eventName, entityName string, data []byte) error {
	return p.publish(ctx, messageID, eventName, entityName, data)
}

func (p *Publisher) publish(ctx context.Context, messageID, eventName, entityName string, body []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    messageID,
		Type:         eventName,
		AppId:        p.config.AppID,
	}
	exchange := ExchangeFor(entityName)

	var lastErr error
	for attempt := 0; attempt <= p.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.config.RetryDelay * time.Duration(attempt)):
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = p.publishOnce(ctx, exchange, eventName, msg)
		if lastErr == nil {
			return nil
		}
		logger.Warn(ctx, "rabbitmq: publish attempt failed", map[string]any{
			"attempt":    attempt + 1,
			"message_id": messageID,
			"exchange":   exchange,
			"error":      lastErr.Error(),
		})
	}

	return fmt.Errorf("publish %s after %d attempts: %w", eventName, p.config.MaxRetries+1, lastErr)
}

func (p *Publisher) publishOnce(ctx context.Context, exchange, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		p.dropConnection()
		if err := p.connect(); err != nil {
			return fmt.Errorf("reconnect: %w", err)
		}
	}

	confirm, err := p.channel.PublishWithDeferredConfirmWithContext(ctx, exchange, routingKey, false, false, msg)
	if err != nil {
		p.dropConnection()
		return err
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return ErrNacked
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
		p.channel = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
		p.conn = nil
	}
	return errors.Join(errs...)
}

func (p *Publisher) Ping(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() || p.channel == nil || p.channel.IsClosed() {
		return ErrNotConnected
	}
	return nil
}
