// Package cache holds the process-wide read-through cache for listing and
// statistics reads. It stores whole-collection snapshots keyed by aggregate
// type with a TTL, and is invalidated wholesale by every write touching the
// aggregate. The billing engine's authoritative reads never go through it.
package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

// Aggregate identifies one cached collection. Eviction is all-or-nothing per
// aggregate; there is no per-record eviction.
type Aggregate string

const (
	Students Aggregate = "students"
	Teachers Aggregate = "teachers"
	Classes  Aggregate = "classes"
	Payments Aggregate = "payments"
)

// Config holds the cache settings. The capacity only needs to cover one
// snapshot per aggregate, so the defaults are tiny.
type Config struct {
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
}

// DefaultConfig returns the settings used in production: four snapshot slots
// and a five minute TTL.
func DefaultConfig() Config {
	return Config{
		Capacity:           64,
		NumShards:          2,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// Service is the read-through snapshot cache. Early refresh stays disabled on
// purpose: a snapshot is served until the TTL elapses or a write invalidates
// it, nothing refreshes in the background.
type Service struct {
	client *sturdyc.Client[any]
}

func New(cfg Config) *Service {
	return &Service{
		client: sturdyc.New[any](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage),
	}
}

// GetOrFetch returns the cached snapshot for an aggregate, or runs fetch
// against the store, caches the result wholesale and returns it.
func GetOrFetch[T any](ctx context.Context, s *Service, agg Aggregate, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := s.client.GetOrFetch(ctx, string(agg), func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

// Invalidate drops the snapshot for an aggregate so the next read fetches
// fresh data regardless of TTL.
func (s *Service) Invalidate(agg Aggregate) {
	s.client.Delete(string(agg))
}

// InvalidatePayments satisfies the billing engine's Invalidator.
func (s *Service) InvalidatePayments() {
	s.Invalidate(Payments)
}
