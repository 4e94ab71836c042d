package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/doleances-service/internal/domain"
)

// ReportRepository - хранилище отчётов
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	Count(ctx context.Context) (int64, error)
}
