package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NaMinhyeok/order-practice/internal/core/port"
)

// Cache stores JSON encoded values under "<client prefix>:<namespace>:<key>".
type Cache[T any] struct {
	client    *Client
	namespace string
}

func NewCache[T any](client *Client, namespace string) port.CachePort[T] {
	return &Cache[T]{client: client, namespace: namespace}
}

func (c *Cache[T]) key(id string) string {
	return c.client.Key(c.namespace, id)
}

func (c *Cache[T]) Get(ctx context.Context, id string) (*T, error) {
	data, found, err := c.client.Get(ctx, c.key(id))
	if err != nil || !found {
		return nil, err
	}

	var value T
	if err := json.Unmarshal([]byte(data), &value); err != nil {
		return nil, fmt.Errorf("decode cached %s: %w", c.key(id), err)
	}
	return &value, nil
}

func (c *Cache[T]) encode(value *T) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s entry: %w", c.namespace, err)
	}
	return data, nil
}

func (c *Cache[T]) Set(ctx context.Context, id string, value *T, ttl time.Duration) error {
	data, err := c.encode(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(id), data, ttl)
}

// SetNX writes only when the key is absent and reports whether it did.
func (c *Cache[T]) SetNX(ctx context.Context, id string, value *T, ttl time.Duration) (bool, error) {
	data, err := c.encode(value)
	if err != nil {
		return false, err
	}
	return c.client.SetNX(ctx, c.key(id), data, ttl)
}

func (c *Cache[T]) Del(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id))
}
