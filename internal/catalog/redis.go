package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ualz-service/internal/models"
)

// RedisCache shares the loaded catalog between service instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(redisAddr string, ttl time.Duration) (*RedisCache, error) {
	const op = "catalog.NewRedisCache"

	client := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]models.CourseRecord, bool, error) {
	const op = "catalog.RedisCache.Get"

	data, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var records []models.CourseRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return records, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, records []models.CourseRecord) error {
	const op = "catalog.RedisCache.Set"

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.client.Set(ctx, cacheKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func cacheKey(key string) string {
	return fmt.Sprintf("catalog:%s", key)
}
