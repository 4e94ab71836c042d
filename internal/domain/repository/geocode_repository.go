package repository

import (
	"context"

	"github.com/doleances-service/internal/domain"
)

// GeocodeRepository - внешний геокодер (Nominatim напрямую или через прокси)
type GeocodeRepository interface {
	Search(ctx context.Context, query string, opts domain.GeocodeOptions) ([]domain.GeocodeResult, error)
}
