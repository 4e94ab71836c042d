package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/pkg/metrics"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GeocodeKey - ключ кеша ответа геокодера: страны, лимит, запрос в нижнем регистре
func GeocodeKey(query string, opts domain.GeocodeOptions) string {
	return fmt.Sprintf("geocode:%s:%d:%s",
		strings.ToLower(opts.CountryCodes),
		opts.Limit,
		strings.ToLower(strings.TrimSpace(query)))
}

// GetGeocode получает ответ геокодера из кеша, (nil, nil) при промахе
func (r *cacheRepository) GetGeocode(ctx context.Context, query string, opts domain.GeocodeOptions) ([]domain.GeocodeResult, error) {
	data, err := r.Get(ctx, GeocodeKey(query, opts))
	if err != nil {
		return nil, err
	}
	if data == nil {
		metrics.GeocodeCacheMissesTotal.Inc()
		return nil, nil // Cache miss
	}

	var results []domain.GeocodeResult
	if err := json.Unmarshal(data, &results); err != nil {
		r.logger.Error("Failed to unmarshal geocode results from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal geocode results: %w", err)
	}
	if results == nil {
		results = []domain.GeocodeResult{}
	}

	metrics.GeocodeCacheHitsTotal.Inc()
	return results, nil
}

// SetGeocode сохраняет ответ геокодера
func (r *cacheRepository) SetGeocode(ctx context.Context, query string, opts domain.GeocodeOptions, results []domain.GeocodeResult, ttl time.Duration) error {
	if results == nil {
		results = []domain.GeocodeResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		r.logger.Error("Failed to marshal geocode results", zap.Error(err))
		return fmt.Errorf("marshal geocode results: %w", err)
	}

	return r.Set(ctx, GeocodeKey(query, opts), data, ttl)
}
