package repository

import (
	"context"

	"github.com/doleances-service/internal/domain"
)

// AreaRepository отдаёт справочник одного административного уровня
type AreaRepository interface {
	// Areas возвращает все единицы уровня, отсортированные по названию
	Areas(ctx context.Context, level domain.AdminLevel) ([]domain.AdminArea, error)
}
