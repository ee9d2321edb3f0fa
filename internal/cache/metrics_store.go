package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"fraudwatch/internal/models"
)

const metricsKey = "fraudwatch:dashboard:metrics"

// MetricsStore caches the computed dashboard metrics payload with a short TTL
// so repeated dashboard polls do not hit the fraud view on every request.
type MetricsStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMetricsStore returns redis-backed metrics cache.
func NewMetricsStore(client *redis.Client, ttl time.Duration) *MetricsStore {
	return &MetricsStore{client: client, ttl: ttl}
}

// Get returns the cached metrics, or redis.Nil when absent.
func (s *MetricsStore) Get(ctx context.Context) (*models.DashboardMetrics, error) {
	result, err := s.client.Get(ctx, metricsKey).Result()
	if err != nil {
		return nil, err
	}
	var metrics models.DashboardMetrics
	if err := json.Unmarshal([]byte(result), &metrics); err != nil {
		return nil, err
	}
	return &metrics, nil
}

// Save caches metrics for the configured TTL.
func (s *MetricsStore) Save(ctx context.Context, metrics models.DashboardMetrics) error {
	data, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, metricsKey, data, s.ttl).Err()
}

// Invalidate drops the cached metrics after a write changed the underlying data.
func (s *MetricsStore) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, metricsKey).Err()
}
