package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

// Circuit breaker settings for Redis calls. After breakerTrips consecutive
// failures, calls fail fast with gobreaker.ErrOpenState until breakerCooldown
// has passed and a trial request succeeds.
const (
	breakerTrips    = 3
	breakerCooldown = 30 * time.Second
)

// RedisConfig holds connection settings for [NewRedisCache].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// DialTimeout bounds the initial connection. Zero uses the client default.
	DialTimeout time.Duration
	// OnBreakerChange is called when the circuit breaker changes state.
	OnBreakerChange func(from, to string)
}

// RedisCache stores entries in Redis. Expiry is handled by Redis itself.
// Calls go through a circuit breaker so a Redis outage mid-session costs
// a few failed calls instead of one timeout per lookup.
type RedisCache struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
}

// NewRedisCache connects to Redis and verifies the connection with PING.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}
	return newRedisCache(client, cfg.OnBreakerChange), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return newRedisCache(client, nil)
}

func newRedisCache(client *redis.Client, onChange func(from, to string)) *RedisCache {
	settings := gobreaker.Settings{
		Name:        "redis",
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTrips
		},
	}
	if onChange != nil {
		settings.OnStateChange = func(_ string, from, to gobreaker.State) {
			onChange(from.String(), to.String())
		}
	}
	return &RedisCache{client: client, breaker: gobreaker.NewCircuitBreaker(settings)}
}

// Get retrieves a value from Redis. A missing key is not a failure.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	res, err := c.breaker.Execute(func() (any, error) {
		data, err := c.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return []byte(nil), nil
		}
		return data, err
	})
	if err != nil {
		return nil, false, err
	}
	data := res.([]byte)
	return data, data != nil, nil
}

// Set stores a value in Redis.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.client.Set(ctx, key, data, ttl).Err()
	})
	return err
}

// Delete removes a key from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.client.Del(ctx, key).Err()
	})
	return err
}

// BreakerState reports the circuit breaker state: "closed", "open" or
// "half-open".
func (c *RedisCache) BreakerState() string {
	return c.breaker.State().String()
}

// Clear removes every key matching pattern, e.g. "wbsview:*".
func (c *RedisCache) Clear(ctx context.Context, pattern string) (int, error) {
	var removed int
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, iter.Err()
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
