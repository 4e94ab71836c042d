package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/doleances-service/internal/locationsearch"
	"github.com/doleances-service/internal/usecase/dto"
)

// LocationSearchUseCase - серверный поиск места: локальный справочник плюс геокодер
type LocationSearchUseCase struct {
	searcher *locationsearch.Searcher
	logger   *zap.Logger
}

// NewLocationSearchUseCase - создание нового LocationSearchUseCase
func NewLocationSearchUseCase(searcher *locationsearch.Searcher, logger *zap.Logger) *LocationSearchUseCase {
	return &LocationSearchUseCase{
		searcher: searcher,
		logger:   logger,
	}
}

// Search возвращает объединённую выдачу; limit > 0 дополнительно её обрезает
func (uc *LocationSearchUseCase) Search(ctx context.Context, req dto.LocationSearchRequest) *dto.LocationSearchResponse {
	query := strings.TrimSpace(req.Query)
	results := uc.searcher.Search(ctx, query)
	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}

	items := dto.ConvertSearchResults(results)
	return &dto.LocationSearchResponse{
		Query:   query,
		Results: items,
		Total:   len(items),
	}
}
