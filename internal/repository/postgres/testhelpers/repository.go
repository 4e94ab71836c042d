package testhelpers

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/doleances-service/internal/domain/repository"
	"github.com/doleances-service/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewMigratedDB применяет миграции и очищает таблицы
func NewMigratedDB(t *testing.T, tdb *TestDB) *postgres.DB {
	t.Helper()
	ctx := context.Background()

	pgDB := NewDBForTest(tdb.DB, tdb.Logger)
	if err := pgDB.Migrate(ctx); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
	if err := tdb.Cleanup(ctx); err != nil {
		t.Fatalf("Failed to clean tables: %v", err)
	}
	return pgDB
}

// NewReportRepositoryForTest creates a report repository with migrated test database
func NewReportRepositoryForTest(t *testing.T, tdb *TestDB) repository.ReportRepository {
	t.Helper()
	return postgres.NewReportRepository(NewMigratedDB(t, tdb))
}
