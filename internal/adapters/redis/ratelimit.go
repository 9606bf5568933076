package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/NaMinhyeok/order-practice/internal/adapters/http/middleware"
)

// Fixed window counter. Returns the count after this hit and the window's
// remaining lifetime in milliseconds.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('PTTL', KEYS[1])}
`)

type RateLimiter struct {
	client *Client
}

func NewRateLimiter(client *Client) middleware.RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (middleware.RateLimitResult, error) {
	redisKey := r.client.Key("ratelimit", key)
	values, err := r.client.runScript(ctx, rateLimitScript, []string{redisKey}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return middleware.RateLimitResult{}, err
	}
	if len(values) != 2 {
		return middleware.RateLimitResult{}, fmt.Errorf("unexpected rate limit reply: %v", values)
	}

	count, ttl := int(values[0]), time.Duration(values[1])*time.Millisecond
	if ttl < 0 {
		ttl = window
	}

	result := middleware.RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: max(limit-count, 0),
	}
	if !result.Allowed {
		result.RetryAfter = ttl
	}
	return result, nil
}
