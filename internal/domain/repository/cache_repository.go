package repository

import (
	"context"
	"time"

	"github.com/doleances-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, (nil, nil) при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetGeocode получает закешированный ответ геокодера, nil при промахе
	GetGeocode(ctx context.Context, query string, opts domain.GeocodeOptions) ([]domain.GeocodeResult, error)

	// SetGeocode сохраняет ответ геокодера
	SetGeocode(ctx context.Context, query string, opts domain.GeocodeOptions, results []domain.GeocodeResult, ttl time.Duration) error
}
