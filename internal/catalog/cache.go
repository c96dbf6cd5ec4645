package catalog

import (
	"context"
	"fmt"
	"os"
	"sync"

	"ualz-service/internal/models"
	"ualz-service/pkg/response"
)

// Cache stores loaded catalogs keyed by source file identity. The key
// changes whenever the file does, so stale entries are simply never
// looked up again; entries themselves are immutable once set.
type Cache interface {
	Get(ctx context.Context, key string) ([]models.CourseRecord, bool, error)
	Set(ctx context.Context, key string, records []models.CourseRecord) error
}

// FileKey derives the cache key for a catalog file from its path,
// modification time and size.
func FileKey(path string) (string, error) {
	const op = "catalog.FileKey"

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, response.ErrLoad, err)
	}

	return fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size()), nil
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]models.CourseRecord
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]models.CourseRecord)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]models.CourseRecord, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records, ok := c.entries[key]
	return records, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, records []models.CourseRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// One catalog file per service instance; drop superseded keys.
	for k := range c.entries {
		if k != key {
			delete(c.entries, k)
		}
	}
	c.entries[key] = records

	return nil
}
