// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sony/gobreaker"

	"github.com/katalvlaran/lvdecomp/config"
	"github.com/katalvlaran/lvdecomp/render"
)

// ErrUnavailable wraps failures of the backing redis, including calls
// rejected while the breaker is open.
var ErrUnavailable = errors.New("cache: unavailable")

// Redis is a Store backed by go-redis. Every call runs through a circuit
// breaker; a miss (redis.Nil) does not count as a failure.
type Redis struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	prefix  string
	ttl     time.Duration
	timeout time.Duration
}

// NewRedis wraps an existing client with the settings of cfg.
func NewRedis(client *redis.Client, cfg config.CacheConfig) *Redis {
	st := gobreaker.Settings{Name: "redis-cache"}
	st.Interval = cfg.Breaker.Interval
	st.Timeout = cfg.Breaker.OpenTimeout
	threshold := cfg.Breaker.ConsecutiveFailures
	if threshold == 0 {
		threshold = 1
	}
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		return counts.ConsecutiveFailures >= threshold
	}

	return &Redis{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker(st),
		prefix:  cfg.Prefix,
		ttl:     cfg.TTL,
		timeout: cfg.Timeout,
	}
}

// Dial connects to the redis described by cfg. The connection is lazy; the
// first command reports an unreachable server.
func Dial(cfg config.CacheConfig) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return NewRedis(client, cfg)
}

// State exposes the breaker state for health reporting.
func (r *Redis) State() gobreaker.State { return r.breaker.State() }

func (r *Redis) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, r.timeout)
}

// Get loads the document stored under key.
func (r *Redis) Get(ctx context.Context, key string) (*render.Document, bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	out, err := r.breaker.Execute(func() (any, error) {
		b, err := r.client.Get(ctx, r.prefix+key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return b, err
	})
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w: %v", ErrUnavailable, err)
	}
	b, _ := out.([]byte)
	if b == nil {
		return nil, false, nil
	}

	var doc render.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, false, fmt.Errorf("cache get: decode: %w", err)
	}

	return &doc, true, nil
}

// Set stores doc under key for the configured TTL.
func (r *Redis) Set(ctx context.Context, key string, doc *render.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cache set: encode: %w", err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err = r.breaker.Execute(func() (any, error) {
		return nil, r.client.Set(ctx, r.prefix+key, payload, r.ttl).Err()
	})
	if err != nil {
		return fmt.Errorf("cache set: %w: %v", ErrUnavailable, err)
	}

	return nil
}

// Close releases the client.
func (r *Redis) Close() error { return r.client.Close() }

// Open returns the Store cfg asks for: Noop without an address.
func Open(cfg config.CacheConfig) Store {
	if cfg.Addr == "" {
		return Noop{}
	}

	return Dial(cfg)
}
