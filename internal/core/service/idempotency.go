package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NaMinhyeok/order-practice/internal/core/logger"
	"github.com/NaMinhyeok/order-practice/internal/core/port"
	"github.com/NaMinhyeok/order-practice/internal/core/serviceerrors"
	"github.com/NaMinhyeok/order-practice/internal/core/utils"
)

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

// IdempotencyEntry is what the cache holds per key. Result is set only once
// the entry is completed.
type IdempotencyEntry[T any] struct {
	Status      IdempotencyStatus `json:"status"`
	PayloadHash string            `json:"payload_hash"`
	Result      *T                `json:"result,omitempty"`
}

type IdempotencyService[T any] struct {
	cache        port.CachePort[IdempotencyEntry[T]]
	ttl          time.Duration
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func NewIdempotencyService[T any](
	cache port.CachePort[IdempotencyEntry[T]],
	ttl time.Duration,
	pollInterval time.Duration,
	pollTimeout time.Duration,
) *IdempotencyService[T] {
	return &IdempotencyService[T]{
		cache:        cache,
		ttl:          ttl,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
	}
}

// Run executes fn at most once per key and replays its result to duplicates
// carrying the same payload. A failed fn frees the key for a retry. An empty
// key disables deduplication.
func (s *IdempotencyService[T]) Run(ctx context.Context, key string, payload any, fn func(ctx context.Context) (*T, error)) (*T, error) {
	if key == "" {
		return fn(ctx)
	}

	payloadHash, err := utils.HashPayload(payload)
	if err != nil {
		return nil, err
	}

	stored, owned, err := s.claim(ctx, key, payloadHash)
	if err != nil {
		logger.Warn(ctx, "idempotency: request not admitted", map[string]any{
			"idempotency_key": key,
			"error":           err.Error(),
		})
		return nil, err
	}
	if !owned {
		logger.Info(ctx, "idempotency: replaying stored result", map[string]any{
			"idempotency_key": key,
		})
		return stored, nil
	}

	result, err := fn(ctx)
	if err != nil {
		s.release(ctx, key)
		return nil, err
	}

	s.complete(ctx, key, payloadHash, result)
	return result, nil
}

// claim reports owned when this caller won the key. Otherwise it waits for the
// owner and returns the stored result.
func (s *IdempotencyService[T]) claim(ctx context.Context, key, payloadHash string) (stored *T, owned bool, err error) {
	won, err := s.cache.SetNX(ctx, key, &IdempotencyEntry[T]{
		Status:      IdempotencyProcessing,
		PayloadHash: payloadHash,
	}, s.ttl)
	if err != nil {
		return nil, false, fmt.Errorf("idempotency claim: %w", err)
	}
	if won {
		return nil, true, nil
	}

	stored, err = s.await(ctx, key, payloadHash)
	return stored, false, err
}

// complete and release outlive the request context; a cancelled client must
// not leave the key stuck in processing.
func (s *IdempotencyService[T]) complete(ctx context.Context, key, payloadHash string, result *T) {
	err := s.cache.Set(context.WithoutCancel(ctx), key, &IdempotencyEntry[T]{
		Status:      IdempotencyCompleted,
		PayloadHash: payloadHash,
		Result:      result,
	}, s.ttl)
	if err != nil {
		logger.Error(ctx, "idempotency: failed to store result", err, map[string]any{
			"idempotency_key": key,
		})
	}
}

func (s *IdempotencyService[T]) release(ctx context.Context, key string) {
	if err := s.cache.Del(context.WithoutCancel(ctx), key); err != nil {
		logger.Error(ctx, "idempotency: failed to release key", err, map[string]any{
			"idempotency_key": key,
		})
	}
}

// inspect returns the stored result of a completed entry, or nil while the
// owner is still processing.
func (s *IdempotencyService[T]) inspect(ctx context.Context, key, payloadHash string) (*T, error) {
	entry, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("idempotency lookup: %w", err)
	}

	switch {
	case entry == nil:
		return nil, serviceerrors.NewConflictError("previous request with this idempotency key failed, retry")
	case entry.PayloadHash != payloadHash:
		return nil, serviceerrors.NewUnprocessableEntityError("idempotency key already used with a different payload")
	case entry.Status == IdempotencyCompleted:
		return entry.Result, nil
	default:
		return nil, nil
	}
}

func (s *IdempotencyService[T]) await(ctx context.Context, key, payloadHash string) (*T, error) {
	if result, err := s.inspect(ctx, key, payloadHash); result != nil || err != nil {
		return result, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, s.pollTimeout)
	defer cancel()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
				return nil, serviceerrors.NewConflictError("idempotency key still being processed, timed out")
			}
			return nil, waitCtx.Err()
		case <-ticker.C:
			if result, err := s.inspect(waitCtx, key, payloadHash); result != nil || err != nil {
				return result, err
			}
		}
	}
}
