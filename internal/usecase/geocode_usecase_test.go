package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/usecase"
)

func TestGeocodeUseCase_Proxy(t *testing.T) {
	ctx := context.Background()
	ttl := time.Hour
	defaults := domain.GeocodeOptions{CountryCodes: "mg", Limit: 10}
	places := []domain.GeocodeResult{{ID: 1, DisplayName: "Antsirabe, Vakinankaratra, Madagascar"}}

	t.Run("cache miss queries geocoder and stores result", func(t *testing.T) {
		geocoder := &MockGeocodeRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetGeocode", ctx, "Antsirabe", defaults).Return(nil, nil)
		geocoder.On("Search", ctx, "Antsirabe", defaults).Return(places, nil)
		cache.On("SetGeocode", ctx, "Antsirabe", defaults, places, ttl).Return(nil)

		uc := usecase.NewGeocodeUseCase(geocoder, cache, ttl, "mg", zap.NewNop())
		results := uc.Proxy(ctx, "  Antsirabe ", "", 0)

		assert.Equal(t, places, results)
		geocoder.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips geocoder", func(t *testing.T) {
		geocoder := &MockGeocodeRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetGeocode", ctx, "Antsirabe", defaults).Return(places, nil)

		uc := usecase.NewGeocodeUseCase(geocoder, cache, ttl, "mg", zap.NewNop())
		results := uc.Proxy(ctx, "Antsirabe", "", 0)

		assert.Equal(t, places, results)
		geocoder.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("short query never reaches upstream", func(t *testing.T) {
		geocoder := &MockGeocodeRepository{}
		cache := &MockCacheRepository{}

		uc := usecase.NewGeocodeUseCase(geocoder, cache, ttl, "mg", zap.NewNop())

		for _, q := range []string{"", " ", "A", " b "} {
			results := uc.Proxy(ctx, q, "", 0)
			assert.NotNil(t, results)
			assert.Empty(t, results)
		}
		geocoder.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "GetGeocode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upstream failure yields empty list and is not cached", func(t *testing.T) {
		geocoder := &MockGeocodeRepository{}
		cache := &MockCacheRepository{}
		opts := domain.GeocodeOptions{CountryCodes: "mg,re", Limit: 50}
		cache.On("GetGeocode", ctx, "Toamasina", opts).Return(nil, nil)
		geocoder.On("Search", ctx, "Toamasina", opts).Return(nil, errors.New("status 503"))

		uc := usecase.NewGeocodeUseCase(geocoder, cache, ttl, "mg", zap.NewNop())
		results := uc.Proxy(ctx, "Toamasina", "mg,re", 500)

		assert.NotNil(t, results)
		assert.Empty(t, results)
		cache.AssertNotCalled(t, "SetGeocode", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache errors are ignored", func(t *testing.T) {
		geocoder := &MockGeocodeRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetGeocode", ctx, "Antsirabe", defaults).Return(nil, errors.New("connection refused"))
		geocoder.On("Search", ctx, "Antsirabe", defaults).Return(places, nil)
		cache.On("SetGeocode", ctx, "Antsirabe", defaults, places, ttl).Return(errors.New("connection refused"))

		uc := usecase.NewGeocodeUseCase(geocoder, cache, ttl, "mg", zap.NewNop())
		assert.Equal(t, places, uc.Proxy(ctx, "Antsirabe", "", 0))
	})

	t.Run("works without cache", func(t *testing.T) {
		geocoder := &MockGeocodeRepository{}
		geocoder.On("Search", ctx, "Antsirabe", defaults).Return(nil, nil)

		uc := usecase.NewGeocodeUseCase(geocoder, nil, ttl, "", zap.NewNop())
		results, err := uc.Search(ctx, "Antsirabe", domain.GeocodeOptions{})

		require.NoError(t, err)
		assert.NotNil(t, results)
	})
}

func TestClampGeocodeLimit(t *testing.T) {
	assert.Equal(t, 10, usecase.ClampGeocodeLimit(0))
	assert.Equal(t, 10, usecase.ClampGeocodeLimit(-3))
	assert.Equal(t, 1, usecase.ClampGeocodeLimit(1))
	assert.Equal(t, 50, usecase.ClampGeocodeLimit(51))
}
