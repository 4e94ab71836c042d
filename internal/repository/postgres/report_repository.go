package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain"
	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/pkg/errors"
)

type reportRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewReportRepository(db *DB) repository.ReportRepository {
	return &reportRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const reportColumns = `
	id, search_query, filter_value, filter_label,
	location_name, location_city, location_region, location_commune,
	location_lat, location_lon, location_display_name,
	content_html, content_text,
	attachment_name, attachment_type, attachment_size, attachment_url,
	submitted_by, created_at`

// Create сохраняет отчёт; пустые ID и CreatedAt заполняются
func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES (
			:id, :search_query, :filter_value, :filter_label,
			:location_name, :location_city, :location_region, :location_commune,
			:location_lat, :location_lon, :location_display_name,
			:content_html, :content_text,
			:attachment_name, :attachment_type, :attachment_size, :attachment_url,
			:submitted_by, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		r.logger.Error("Failed to insert report",
			zap.String("id", report.ID.String()),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Debug("Report inserted", zap.String("id", report.ID.String()))
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`

	var report domain.Report
	err := r.db.GetContext(ctx, &report, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrReportNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get report by ID", zap.String("id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &report, nil
}

func (r *reportRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM reports`); err != nil {
		r.logger.Error("Failed to count reports", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return total, nil
}
