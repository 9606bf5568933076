package port

import "context"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// BrokerPort publishes events already serialized into the outbox.
type BrokerPort interface {
	PublishRaw(ctx context.Context, messageID, eventName, entityName string, data []byte) error
	Close() error
}
