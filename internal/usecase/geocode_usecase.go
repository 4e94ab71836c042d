package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/locationsearch"
)

const (
	// DefaultGeocodeLimit - limit прокси по умолчанию
	DefaultGeocodeLimit = 10
	// MaxGeocodeLimit - верхняя граница limit
	MaxGeocodeLimit = 50
)

// GeocodeUseCase - геокодер с кешем в Redis.
// Сам реализует GeocodeRepository, поэтому серверный поиск места тоже идёт через кеш.
type GeocodeUseCase struct {
	geocoder            repository.GeocodeRepository
	cacheRepo           repository.CacheRepository
	cacheTTL            time.Duration
	defaultCountryCodes string
	logger              *zap.Logger
}

var _ repository.GeocodeRepository = (*GeocodeUseCase)(nil)

// NewGeocodeUseCase - создание нового GeocodeUseCase. cacheRepo может быть nil.
func NewGeocodeUseCase(
	geocoder repository.GeocodeRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	defaultCountryCodes string,
	logger *zap.Logger,
) *GeocodeUseCase {
	if defaultCountryCodes == "" {
		defaultCountryCodes = "mg"
	}
	return &GeocodeUseCase{
		geocoder:            geocoder,
		cacheRepo:           cacheRepo,
		cacheTTL:            cacheTTL,
		defaultCountryCodes: defaultCountryCodes,
		logger:              logger,
	}
}

// ClampGeocodeLimit приводит limit к диапазону 1..MaxGeocodeLimit
func ClampGeocodeLimit(limit int) int {
	if limit <= 0 {
		return DefaultGeocodeLimit
	}
	return min(limit, MaxGeocodeLimit)
}

// Search ищет место с учётом кеша. Ошибка геокодера возвращается и не кешируется.
func (uc *GeocodeUseCase) Search(ctx context.Context, query string, opts domain.GeocodeOptions) ([]domain.GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if locationsearch.TooShort(query) {
		return []domain.GeocodeResult{}, nil
	}
	if opts.CountryCodes == "" {
		opts.CountryCodes = uc.defaultCountryCodes
	}
	opts.Limit = ClampGeocodeLimit(opts.Limit)

	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetGeocode(ctx, query, opts)
		if err != nil {
			uc.logger.Warn("Geocode cache read failed", zap.Error(err))
		} else if cached != nil {
			uc.logger.Debug("Geocode cache hit", zap.String("query", query))
			return cached, nil
		}
	}

	results, err := uc.geocoder.Search(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []domain.GeocodeResult{}
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetGeocode(ctx, query, opts, results, uc.cacheTTL); err != nil {
			uc.logger.Warn("Geocode cache write failed", zap.Error(err))
		}
	}

	return results, nil
}

// Proxy - поведение /api/nominatim/search: любая ошибка даёт пустой список
func (uc *GeocodeUseCase) Proxy(ctx context.Context, query, countryCodes string, limit int) []domain.GeocodeResult {
	results, err := uc.Search(ctx, query, domain.GeocodeOptions{
		CountryCodes: countryCodes,
		Limit:        limit,
	})
	if err != nil {
		uc.logger.Warn("Geocoder unavailable, returning empty list",
			zap.String("query", strings.TrimSpace(query)),
			zap.Error(err))
		return []domain.GeocodeResult{}
	}
	return results
}
