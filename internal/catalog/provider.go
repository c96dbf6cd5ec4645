package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"ualz-service/internal/models"
	"ualz-service/pkg/sl"
)

// Provider combines the loader with a cache keyed by file identity.
// Reloading from the same file is idempotent, so cache failures only
// cost a re-read of the workbook and are never fatal.
type Provider struct {
	log    *slog.Logger
	loader *Loader
	cache  Cache
	path   string
}

func NewProvider(log *slog.Logger, loader *Loader, cache Cache, path string) *Provider {
	return &Provider{log: log, loader: loader, cache: cache, path: path}
}

// Catalog returns the normalized catalog, loading the workbook when
// the cache has no entry for the file's current identity.
func (p *Provider) Catalog(ctx context.Context) ([]models.CourseRecord, error) {
	const op = "catalog.Provider.Catalog"

	key, err := FileKey(p.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if records, ok, err := p.cache.Get(ctx, key); err != nil {
		p.log.Warn("Catalog cache lookup failed", sl.Err(err))
	} else if ok {
		return records, nil
	}

	return p.load(ctx, key)
}

// Reload bypasses the cache and re-reads the workbook.
func (p *Provider) Reload(ctx context.Context) ([]models.CourseRecord, error) {
	const op = "catalog.Provider.Reload"

	key, err := FileKey(p.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p.load(ctx, key)
}

func (p *Provider) load(ctx context.Context, key string) ([]models.CourseRecord, error) {
	const op = "catalog.Provider.load"

	records, err := p.loader.Load(p.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := p.cache.Set(ctx, key, records); err != nil {
		p.log.Warn("Failed to cache catalog", sl.Err(err))
	}

	p.log.Info("Catalog loaded",
		slog.String("path", p.path),
		slog.String("variant", string(p.loader.Variant())),
		slog.Int("courses", len(records)),
	)

	return records, nil
}
