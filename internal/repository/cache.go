package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/shenikar/school_gunfire_dashboard/internal/service"
)

// DatasetCacheKey - фиксированный ключ кэша: в каждый момент хранится одна загрузка
const DatasetCacheKey = "dataset:school_incidents"

// MemoryDatasetCache хранит последнюю загрузку в памяти процесса до истечения TTL
type MemoryDatasetCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	now       func() time.Time
	dataset   *models.Dataset
	expiresAt time.Time
}

// NewMemoryDatasetCache создает кэш в памяти. now позволяет тестам управлять временем.
func NewMemoryDatasetCache(ttl time.Duration, now func() time.Time) *MemoryDatasetCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryDatasetCache{ttl: ttl, now: now}
}

var _ service.DatasetCache = (*MemoryDatasetCache)(nil)

// Get возвращает загрузку или nil, если кэш пуст или устарел
func (c *MemoryDatasetCache) Get(_ context.Context) (*models.Dataset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.dataset == nil || !c.now().Before(c.expiresAt) {
		return nil, nil
	}
	return c.dataset, nil
}

// Set сохраняет загрузку и отсчитывает TTL от текущего момента
func (c *MemoryDatasetCache) Set(_ context.Context, dataset *models.Dataset) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dataset = dataset
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

// Invalidate сбрасывает кэш
func (c *MemoryDatasetCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dataset = nil
	c.expiresAt = time.Time{}
	return nil
}

// RedisDatasetCache хранит загрузку в Redis в JSON, срок жизни задается TTL ключа.
// Позволяет нескольким экземплярам сервиса делить одну загрузку.
type RedisDatasetCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	key         string
}

// NewRedisDatasetCache создает кэш поверх клиента Redis
func NewRedisDatasetCache(redisClient *redis.Client, ttl time.Duration) service.DatasetCache {
	return &RedisDatasetCache{
		redisClient: redisClient,
		ttl:         ttl,
		key:         DatasetCacheKey,
	}
}

// Get пытается получить загрузку из Redis
func (r *RedisDatasetCache) Get(ctx context.Context) (*models.Dataset, error) {
	val, err := r.redisClient.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dataset from cache: %w", err)
	}

	dataset := &models.Dataset{}
	if err := json.Unmarshal(val, dataset); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset from cache: %w", err)
	}
	return dataset, nil
}

// Set сохраняет загрузку в Redis
func (r *RedisDatasetCache) Set(ctx context.Context, dataset *models.Dataset) error {
	val, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("failed to marshal dataset for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, r.key, val, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set dataset in cache: %w", err)
	}
	return nil
}

// Invalidate удаляет загрузку из Redis
func (r *RedisDatasetCache) Invalidate(ctx context.Context) error {
	if err := r.redisClient.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dataset cache: %w", err)
	}
	return nil
}
