package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/pkg/errors"
)

// AreaStore - справочник единиц с фильтром по родителю (geodata.Store)
type AreaStore interface {
	repository.AreaRepository
	ByParent(ctx context.Context, level domain.AdminLevel, parentCode string) ([]domain.AdminArea, error)
}

// GeoUseCase - справочники административного деления и опции фильтра формы
type GeoUseCase struct {
	store  AreaStore
	logger *zap.Logger
}

// NewGeoUseCase - создание нового GeoUseCase
func NewGeoUseCase(store AreaStore, logger *zap.Logger) *GeoUseCase {
	return &GeoUseCase{
		store:  store,
		logger: logger,
	}
}

// Areas возвращает единицы уровня; parentCode сужает выдачу до детей одной единицы
func (uc *GeoUseCase) Areas(ctx context.Context, level domain.AdminLevel, parentCode string) ([]domain.AdminArea, error) {
	areas, err := uc.store.ByParent(ctx, level, parentCode)
	if err != nil {
		uc.logger.Error("Failed to load admin areas",
			zap.String("level", string(level)),
			zap.Error(err))
		return nil, errors.ErrGeodataUnavailable.WithDetails(map[string]interface{}{
			"details": err.Error(),
		})
	}
	if areas == nil {
		areas = []domain.AdminArea{}
	}
	return areas, nil
}

// FilterOptions возвращает варианты для выпадающего списка: commune, region, district или zone
func (uc *GeoUseCase) FilterOptions(ctx context.Context, filterType string) ([]domain.FilterOption, error) {
	if filterType == "zone" || filterType == "zones" {
		out := make([]domain.FilterOption, len(domain.Zones))
		copy(out, domain.Zones)
		return out, nil
	}

	level, err := domain.ParseAdminLevel(filterType)
	if err != nil {
		return nil, errors.ErrUnknownAdminLevel.WithDetails(map[string]interface{}{
			"type": filterType,
		})
	}

	areas, err := uc.Areas(ctx, level, "")
	if err != nil {
		return nil, err
	}

	options := make([]domain.FilterOption, 0, len(areas))
	for _, a := range areas {
		options = append(options, domain.FilterOption{Value: a.Code, Label: a.Name})
	}
	return options, nil
}
