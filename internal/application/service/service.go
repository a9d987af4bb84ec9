package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deliverytech/delivery/internal/cache"
	"github.com/deliverytech/delivery/internal/domain"
	"github.com/deliverytech/delivery/internal/observability"
)

//go:generate mockgen -destination=mocks_test.go -package=service github.com/deliverytech/delivery/internal/domain CustomerRepository,RestaurantRepository,ProductRepository,OrderRepository

// Caches bundles the shared cache store with the policy table and absorbs
// every cache failure: a broken cache degrades reads to the database and
// leaves writes untouched. domain.ErrCacheUnavailable never crosses a
// service boundary.
type Caches struct {
	store   cache.Store
	table   cache.Table
	logger  *zap.Logger
	metrics observability.Metrics
}

func NewCaches(store cache.Store, table cache.Table, logger *zap.Logger, metrics observability.Metrics) *Caches {
	return &Caches{
		store:   store,
		table:   table,
		logger:  logger,
		metrics: metrics,
	}
}

// lookup returns (value, hit). Errors count as a miss.
func lookup[T any](ctx context.Context, c *Caches, name, key string) (T, bool) {
	v, ok, err := cache.Lookup[T](ctx, c.store, name, key)
	if err != nil {
		c.metrics.IncCacheError(name)
		c.logger.Warn("cache read failed, falling through to store",
			zap.String("cache", name),
			zap.String("key", key),
			zap.Error(err),
		)
		return v, false
	}
	if ok {
		c.metrics.IncCacheHit(name)
	} else {
		c.metrics.IncCacheMiss(name)
	}
	return v, ok
}

func put[T any](ctx context.Context, c *Caches, name, key string, v T) {
	if err := cache.Put(ctx, c.store, name, key, v, c.table.TTL(name)); err != nil {
		c.metrics.IncCacheError(name)
		c.logger.Warn("cache populate failed, entry will self-heal on TTL",
			zap.String("cache", name),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func (c *Caches) evict(ctx context.Context, name string, keys ...string) {
	if err := c.store.Evict(ctx, name, keys...); err != nil {
		c.metrics.IncCacheError(name)
		c.logger.Warn("cache evict failed, entries will self-heal on TTL",
			zap.String("cache", name),
			zap.Error(err),
		)
	}
}

func (c *Caches) evictAll(ctx context.Context, name string) {
	if err := c.store.EvictAll(ctx, name); err != nil {
		c.metrics.IncCacheError(name)
		c.logger.Warn("cache evict-all failed, entries will self-heal on TTL",
			zap.String("cache", name),
			zap.Error(err),
		)
	}
}

// EventPublisher receives order lifecycle events after the store commit.
// Delivery is best effort.
type EventPublisher interface {
	OrderCreated(ctx context.Context, o *domain.Order)
	OrderStatusChanged(ctx context.Context, o *domain.Order, from domain.OrderStatus)
}

func convertToMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
