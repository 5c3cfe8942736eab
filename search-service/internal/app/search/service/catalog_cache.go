package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"miniecom/pkg/catalog"
	"miniecom/pkg/logger"
	"miniecom/pkg/metrics"
	"miniecom/search-service/internal/app/search/repository"
	"miniecom/search-service/internal/app/search/util"
)

const (
	SourceFile   = "file"
	SourceMemory = "memory"
	SourceRedis  = "redis"
	SourceEmpty  = "empty"
)

type snapshot struct {
	items       []catalog.Product
	source      string
	fingerprint string
	loadedAt    time.Time
}

// CatalogCache держит последний прочитанный снимок каталога.
//
// Порядок источников при Load:
//  1. локальный файл, если его отпечаток изменился с прошлого чтения;
//  2. снимок в памяти, пока не истёк ttl и не было Invalidate;
//  3. копия в Redis;
//  4. устаревший снимок в памяти;
//  5. пустой каталог.
//
// Возвращаемый срез разделяется между запросами и не должен изменяться.
type CatalogCache struct {
	local  repository.LocalCatalogRepository
	remote util.RemoteCatalog
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	current *snapshot
	stale   bool
}

func NewCatalogCache(local repository.LocalCatalogRepository, remote util.RemoteCatalog, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		local:  local,
		remote: remote,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (c *CatalogCache) Load(ctx context.Context) []catalog.Product {
	items, source := c.load(ctx)
	metrics.RecordCatalogCacheLoad(source)
	return items
}

func (c *CatalogCache) load(ctx context.Context) ([]catalog.Product, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fingerprint, err := c.local.Fingerprint(ctx)
	switch {
	case err == nil:
		if c.current != nil && !c.stale && c.current.source == SourceFile && c.current.fingerprint == fingerprint {
			return c.current.items, SourceMemory
		}
		payload, loadErr := c.local.Load(ctx)
		if loadErr == nil {
			c.store(payload.Items, SourceFile, fingerprint)
			logger.Debug().Int("items", len(payload.Items)).Str("fingerprint", fingerprint).Msg("Catalog loaded from file")
			return c.current.items, SourceFile
		}
		logger.Warn().Err(loadErr).Msg("Failed to load catalog file")
	case !errors.Is(err, repository.ErrCatalogNotFound):
		logger.Warn().Err(err).Msg("Failed to stat catalog file")
	}

	if c.current != nil && !c.stale && c.now().Sub(c.current.loadedAt) < c.ttl {
		return c.current.items, SourceMemory
	}

	if c.remote != nil {
		payload, err := c.remote.GetCatalog(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to load catalog from redis")
		} else if payload != nil {
			c.store(payload.Items, SourceRedis, "")
			logger.Debug().Int("items", len(payload.Items)).Msg("Catalog loaded from redis")
			return c.current.items, SourceRedis
		}
	}

	if c.current != nil {
		logger.Warn().
			Str("source", c.current.source).
			Time("loaded_at", c.current.loadedAt).
			Msg("Serving stale catalog snapshot")
		return c.current.items, SourceMemory
	}

	logger.Warn().Msg("No catalog available, serving empty corpus")
	return []catalog.Product{}, SourceEmpty
}

func (c *CatalogCache) store(items []catalog.Product, source, fingerprint string) {
	if items == nil {
		items = []catalog.Product{}
	}
	c.current = &snapshot{
		items:       items,
		source:      source,
		fingerprint: fingerprint,
		loadedAt:    c.now(),
	}
	c.stale = false
}

// Invalidate заставляет следующий Load перечитать источники.
// Старый снимок остаётся запасным вариантом, если источники недоступны.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stale = true
}
