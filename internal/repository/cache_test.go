package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/school_gunfire_dashboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDatasetCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryDatasetCache(time.Hour, func() time.Time { return now })

	dataset, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, dataset, "empty cache is a miss")

	stored := &models.Dataset{LoadID: uuid.New()}
	require.NoError(t, cache.Set(ctx, stored))

	dataset, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, stored, dataset)

	now = now.Add(time.Hour)
	dataset, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, dataset, "entry expires after TTL")

	require.NoError(t, cache.Set(ctx, stored))
	require.NoError(t, cache.Invalidate(ctx))
	dataset, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, dataset)
}

func TestRedisDatasetCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	cache := NewRedisDatasetCache(client, time.Minute)
	require.NoError(t, cache.Invalidate(ctx))

	dataset, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, dataset)

	date := time.Date(2020, time.June, 10, 0, 0, 0, 0, time.UTC)
	stored := &models.Dataset{
		LoadID:    uuid.New(),
		LoadedAt:  time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
		Incidents: []models.Incident{{IncidentDate: &date, RegionCode: "CA", SchoolName: "Hoover High"}},
		Quality:   models.QualityMetrics{InitialRows: 1, FinalRows: 1, CompletenessScore: 66.7},
	}
	require.NoError(t, cache.Set(ctx, stored))

	dataset, err = cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, dataset)
	assert.Equal(t, stored.LoadID, dataset.LoadID)
	assert.Equal(t, "Hoover High", dataset.Incidents[0].SchoolName)
	assert.True(t, date.Equal(*dataset.Incidents[0].IncidentDate))

	ttl, err := client.TTL(ctx, DatasetCacheKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, cache.Invalidate(ctx))
}
