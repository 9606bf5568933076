package rabbitmq_test

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	tcrabbit "github.com/testcontainers/testcontainers-go/modules/rabbitmq"

	"github.com/NaMinhyeok/order-practice/internal/adapters/config"
	"github.com/NaMinhyeok/order-practice/internal/adapters/rabbitmq"
	"github.com/NaMinhyeok/order-practice/internal/core/domain"
)

var (
	testPublisher    *rabbitmq.Publisher
	testAmqpEndpoint string
)

func publisherConfig(retries int) config.RabbitMQConfig {
	return config.RabbitMQConfig{
		URL:        testAmqpEndpoint,
		AppID:      "order-practice-test",
		MaxRetries: retries,
		RetryDelay: 50 * time.Millisecond,
		ExchangeConfigs: []config.ExchangeConfig{
			{Name: "exchange.order", Type: "direct", Durable: true},
		},
	}
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcrabbit.Run(ctx, "rabbitmq:3-management-alpine")
	if err != nil {
		log.Fatalf("failed to start rabbitmq container: %v", err)
	}

	testAmqpEndpoint, err = container.AmqpURL(ctx)
	if err != nil {
		log.Fatalf("failed to get amqp url: %v", err)
	}

	testPublisher, err = rabbitmq.NewPublisher(publisherConfig(2))
	if err != nil {
		log.Fatalf("failed to create publisher: %v", err)
	}

	code := m.Run()

	_ = testPublisher.Close()
	_ = container.Terminate(ctx)

	os.Exit(code)
}

func bindQueue(t *testing.T, routingKey string) <-chan amqp.Delivery {
	t.Helper()

	conn, err := amqp.Dial(testAmqpEndpoint)
	if err != nil {
		t.Fatalf("consumer dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("consumer channel: %v", err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		t.Fatalf("queue declare: %v", err)
	}
	if err := ch.QueueBind(q.Name, routingKey, rabbitmq.ExchangeFor("order"), false, nil); err != nil {
		t.Fatalf("queue bind: %v", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	return msgs
}

func receive(t *testing.T, msgs <-chan amqp.Delivery) amqp.Delivery {
	t.Helper()
	select {
	case msg := <-msgs:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
		return amqp.Delivery{}
	}
}

func TestExchangeFor(t *testing.T) {
	if got := rabbitmq.ExchangeFor("order"); got != "exchange.order" {
		t.Fatalf("unexpected exchange %q", got)
	}
}

func TestPublisher_Ping(t *testing.T) {
	if err := testPublisher.Ping(context.Background()); err != nil {
		t.Fatalf("expected healthy publisher, got %v", err)
	}
}

func TestPublisher_PublishRawCarriesOutboxIdentity(t *testing.T) {
	msgs := bindQueue(t, "order.update_status")

	body := []byte(`{"order_id":9,"status":"DELIVERING","old_status":"ORDERED"}`)
	if err := testPublisher.PublishRaw(context.Background(), "evt-9", "order.update_status", "order", body); err != nil {
		t.Fatalf("publish: %v", err)
	}

	msg := receive(t, msgs)
	if msg.MessageId != "evt-9" {
		t.Fatalf("expected message id evt-9, got %q", msg.MessageId)
	}
	if msg.Type != "order.update_status" || msg.AppId != "order-practice-test" {
		t.Fatalf("unexpected type/app id %q/%q", msg.Type, msg.AppId)
	}
	if msg.ContentType != "application/json" || msg.DeliveryMode != amqp.Persistent {
		t.Fatalf("unexpected content type %q or delivery mode %d", msg.ContentType, msg.DeliveryMode)
	}
	if string(msg.Body) != string(body) {
		t.Fatalf("body changed in transit: %s", msg.Body)
	}
}

func TestPublisher_PublishDomainEvent(t *testing.T) {
	msgs := bindQueue(t, "order.created")

	order := domain.NewOrder("buyer@example.com", "1 Main St", "12345")
	order.ID = 21
	order.AddItem(&domain.Product{ID: 1, Price: 4500}, 2)

	if err := testPublisher.Publish(context.Background(), domain.NewOrderCreatedEvent(order)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	msg := receive(t, msgs)
	var event domain.OrderCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.OrderID != 21 || event.TotalAmount != 9000 || event.ItemCount != 1 {
		t.Fatalf("unexpected event %+v", event)
	}
	if msg.MessageId == "" {
		t.Fatal("expected a generated message id")
	}
}

func TestPublisher_ReconnectsAfterClose(t *testing.T) {
	publisher, err := rabbitmq.NewPublisher(publisherConfig(1))
	if err != nil {
		t.Fatalf("create publisher: %v", err)
	}
	defer publisher.Close()

	if err := publisher.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := publisher.Ping(context.Background()); !errors.Is(err, rabbitmq.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected after close, got %v", err)
	}

	if err := publisher.PublishRaw(context.Background(), "evt-r", "order.created", "order", []byte(`{}`)); err != nil {
		t.Fatalf("expected publish to reconnect, got %v", err)
	}
	if err := publisher.Ping(context.Background()); err != nil {
		t.Fatalf("expected healthy after reconnect, got %v", err)
	}
}

func TestPublisher_UnknownExchangeFails(t *testing.T) {
	publisher, err := rabbitmq.NewPublisher(publisherConfig(0))
	if err != nil {
		t.Fatalf("create publisher: %v", err)
	}
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := publisher.PublishRaw(ctx, "evt-x", "ghost.created", "ghost", []byte(`{}`)); err == nil {
		t.Fatal("expected publishing to an undeclared exchange to fail")
	}
}

func TestPublisher_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testPublisher.PublishRaw(ctx, "evt-c", "order.created", "order", []byte(`{}`))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
