// Package cache provides the in-process result cache. One instance is built
// at process start and injected into the services that need it; nothing is
// persisted across restarts. Entries expire by wall clock per TTL class and
// are recomputed lazily on the next access. Concurrent requests for the same
// key share a single in-flight computation.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// TTLClass names an expiry policy bucket.
type TTLClass string

const (
	TTLPrediction TTLClass = "prediction"
	TTLFeatures   TTLClass = "features"
	TTLLightcurve TTLClass = "lightcurve"
)

// Config holds the per-class TTLs.
type Config struct {
	PredictionTTL time.Duration
	FeaturesTTL   time.Duration
	LightcurveTTL time.Duration
}

// Cache is a TTL cache with per-key single-flight computation.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	calls   map[string]*call
	ttls    map[TTLClass]time.Duration

	// now is swappable for expiry tests.
	now func() time.Time
}

type entry struct {
	value     any
	expiresAt time.Time
}

type call struct {
	done chan struct{}
	val  any
	err  error
}

// New creates a cache with the given TTL policy.
func New(cfg Config) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		calls:   make(map[string]*call),
		ttls: map[TTLClass]time.Duration{
			TTLPrediction: cfg.PredictionTTL,
			TTLFeatures:   cfg.FeaturesTTL,
			TTLLightcurve: cfg.LightcurveTTL,
		},
		now: time.Now,
	}
}

// Key builds a cache key from the operation kind and its parameters.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// GetOrCompute returns the cached value for key when fresh, otherwise runs
// compute and caches its result. At most one compute runs per key at a time;
// concurrent callers for the same key wait for the in-flight computation and
// receive its value. Errors are returned to every waiter and never cached.
func (c *Cache) GetOrCompute(ctx context.Context, key string, class TTLClass, compute func(ctx context.Context) (any, error)) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.value, nil
	}

	if inflight, ok := c.calls[key]; ok {
		c.mu.Unlock()
		select {
		case <-inflight.done:
			return inflight.val, inflight.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	cl := &call{done: make(chan struct{})}
	c.calls[key] = cl
	c.mu.Unlock()

	cl.val, cl.err = compute(ctx)

	c.mu.Lock()
	if cl.err == nil {
		c.entries[key] = &entry{value: cl.val, expiresAt: c.now().Add(c.ttls[class])}
	}
	delete(c.calls, key)
	c.mu.Unlock()
	close(cl.done)

	return cl.val, cl.err
}

// GetOrCompute is the typed wrapper services use.
func GetOrCompute[T any](ctx context.Context, c *Cache, key string, class TTLClass, compute func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.GetOrCompute(ctx, key, class, func(ctx context.Context) (any, error) {
		return compute(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Delete drops a key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
