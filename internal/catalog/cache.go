package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// Source provides the authoritative product catalog.
type Source interface {
	GetAll(ctx context.Context) ([]model.Product, error)
}

// Cache is an explicitly refreshed snapshot of the product catalog for
// client-side display. A snapshot older than the configured TTL is stale:
// the next read goes back to the source. If the source is unavailable a
// stale snapshot is served rather than nothing, so consumers must treat
// prices and stock levels here as advisory.
type Cache struct {
	source Source
	ttl    time.Duration
	logger zerolog.Logger

	mu        sync.RWMutex
	products  []model.Product
	fetchedAt time.Time
}

// DefaultTTL is the staleness window used when none is configured.
const DefaultTTL = 30 * time.Second

// NewCache creates a catalog cache over the given source.
func NewCache(source Source, ttl time.Duration, logger zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source: source,
		ttl:    ttl,
		logger: logger.With().Str("component", "catalog-cache").Logger(),
	}
}

// Products returns the cached snapshot while it is fresh and non-empty,
// refreshing from the source otherwise. When a refresh fails but an older
// snapshot exists, the stale snapshot is returned.
func (c *Cache) Products(ctx context.Context) ([]model.Product, error) {
	c.mu.RLock()
	if len(c.products) > 0 && time.Since(c.fetchedAt) < c.ttl {
		snapshot := c.snapshotLocked()
		c.mu.RUnlock()
		return snapshot, nil
	}
	c.mu.RUnlock()

	if err := c.Refresh(ctx); err != nil {
		c.mu.RLock()
		defer c.mu.RUnlock()
		if len(c.products) > 0 {
			c.logger.Warn().
				Err(err).
				Dur("age", time.Since(c.fetchedAt)).
				Msg("refresh failed, serving stale catalog snapshot")
			return c.snapshotLocked(), nil
		}
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked(), nil
}

// Refresh replaces the snapshot with the current catalog state.
func (c *Cache) Refresh(ctx context.Context) error {
	products, err := c.source.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	c.mu.Lock()
	c.products = products
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	c.logger.Debug().
		Int("count", len(products)).
		Msg("catalog snapshot refreshed")

	return nil
}

// Find looks up a product by id, refreshing the snapshot if it is stale.
func (c *Cache) Find(ctx context.Context, productID int64) (model.Product, bool, error) {
	products, err := c.Products(ctx)
	if err != nil {
		return model.Product{}, false, err
	}

	for _, p := range products {
		if p.ID == productID {
			return p, true, nil
		}
	}
	return model.Product{}, false, nil
}

func (c *Cache) snapshotLocked() []model.Product {
	snapshot := make([]model.Product, len(c.products))
	copy(snapshot, c.products)
	return snapshot
}
