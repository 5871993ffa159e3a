package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/postad/postad-api/internal/catalog"
	"github.com/postad/postad-api/pkg/logger"
	"github.com/postad/postad-api/pkg/metrics"
	"github.com/postad/postad-api/pkg/retry"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	catalogCacheKey  = "catalog"
	catalogCacheName = "catalog"
	catalogCacheTTL  = 24 * time.Hour
)

// CatalogSource loads the reference data behind the cascading selects
type CatalogSource interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// CatalogCache keeps the loaded catalog in memory and reloads it once a day
type CatalogCache struct {
	cache  *gocache.Cache
	source CatalogSource
	retry  retry.Config
	mu     sync.RWMutex
	ready  bool
}

// NewCatalogCache creates a catalog cache over source
func NewCatalogCache(source CatalogSource) *CatalogCache {
	return &CatalogCache{
		cache:  gocache.New(catalogCacheTTL, time.Hour),
		source: source,
		retry:  retry.DefaultConfig(),
	}
}

// Initialize loads the catalog, blocking until done. Call it before serving.
func (cc *CatalogCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing catalog cache...")

	c, err := retry.DoWithResult(ctx, cc.retry, "catalog.load", func() (*catalog.Catalog, error) {
		return cc.refresh(ctx)
	})
	if err != nil {
		logger.Error("Failed to initialize catalog cache", zap.Error(err))
		return err
	}

	cc.mu.Lock()
	cc.ready = true
	cc.mu.Unlock()

	logger.Info("Catalog cache initialized successfully",
		zap.Int("brands", len(c.Brands)),
		zap.Int("regions", len(c.Regions)))
	return nil
}

// IsReady returns true once the first load has succeeded
func (cc *CatalogCache) IsReady() bool {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.ready
}

// Get returns the cached catalog, reloading it after expiry
func (cc *CatalogCache) Get(ctx context.Context) (*catalog.Catalog, error) {
	if !cc.IsReady() {
		return nil, fmt.Errorf("catalog cache not initialized")
	}

	if data, found := cc.cache.Get(catalogCacheKey); found {
		if c, ok := data.(*catalog.Catalog); ok {
			metrics.CacheHits.WithLabelValues(catalogCacheName).Inc()
			return c, nil
		}
		logger.Error("Invalid catalog cache data type")
		cc.cache.Delete(catalogCacheKey)
	}

	metrics.CacheMisses.WithLabelValues(catalogCacheName).Inc()
	logger.Info("Catalog cache miss, reloading")
	return cc.refresh(ctx)
}

func (cc *CatalogCache) refresh(ctx context.Context) (*catalog.Catalog, error) {
	c, err := cc.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	cc.cache.Set(catalogCacheKey, c, catalogCacheTTL)
	metrics.CacheSize.WithLabelValues(catalogCacheName).Set(float64(len(c.Brands)))

	return c, nil
}
